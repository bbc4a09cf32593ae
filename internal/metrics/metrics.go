// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRegistration()
	RecordLogin(success bool)
	RecordChatSuccess()
	RecordChatFailure(reason string)
	RecordChatLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus    *prometheus.CounterVec
	registrations prometheus.Counter
	loginSuccess  prometheus.Counter
	loginFail     prometheus.Counter
	chatSuccess   prometheus.Counter
	chatFail      *prometheus.CounterVec
	chatLatency   prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cuidaia_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuidaia_registrations_total",
			Help: "ユーザー登録成功の合計数",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuidaia_login_success_total",
			Help: "ログイン成功の合計数",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuidaia_login_fail_total",
			Help: "ログイン失敗の合計数",
		}),
		chatSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cuidaia_chat_success_total",
			Help: "チャット応答成功の合計数",
		}),
		chatFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cuidaia_chat_fail_total",
			Help: "チャット応答失敗の理由別合計数",
		}, []string{"reason"}),
		chatLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cuidaia_chat_latency_seconds",
			Help:    "テキスト生成API呼び出しのレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.registrations,
		c.loginSuccess,
		c.loginFail,
		c.chatSuccess,
		c.chatFail,
		c.chatLatency,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRegistration はユーザー登録成功を記録する。
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordLogin はログイン試行の結果を記録する。
func (c *Collector) RecordLogin(success bool) {
	if success {
		c.loginSuccess.Inc()
	} else {
		c.loginFail.Inc()
	}
}

// RecordChatSuccess はチャット応答成功を記録する。
func (c *Collector) RecordChatSuccess() {
	c.chatSuccess.Inc()
}

// RecordChatFailure はチャット応答失敗を理由付きで記録する。
func (c *Collector) RecordChatFailure(reason string) {
	c.chatFail.WithLabelValues(reason).Inc()
}

// RecordChatLatency はテキスト生成API呼び出しのレイテンシを記録する。
func (c *Collector) RecordChatLatency(duration time.Duration) {
	c.chatLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
