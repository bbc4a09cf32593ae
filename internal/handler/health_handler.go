package handler

import (
	"context"
	"net/http"
	"time"
)

// StorePinger はストア疎通確認のインターフェース。
// PostgreSQLモードでは*sql.DBのPingContext、メモリモードではnilを渡す。
type StorePinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	pinger StorePinger
}

// NewHealthHandler はHealthHandlerを生成する。pingerはnil可。
func NewHealthHandler(pinger StorePinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

// Health はヘルスチェックを処理する。
// GET /health
// ストア疎通に失敗した場合は503を返す。
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	store := "ok"

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"store":  "unreachable",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  store,
	})
}
