package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/cuidaia/backend/internal/metrics"
	"github.com/cuidaia/backend/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	RequestLogger     func(next http.Handler) http.Handler // nil可

	// サービス
	AuthService      AuthServiceInterface
	AssistantService AssistantServiceInterface
	ReminderService  ReminderServiceInterface
	MetricService    HealthMetricServiceInterface
	MedicalService   MedicalServiceInterface

	// 運用
	AuthMetrics AuthMetrics
	HTTPMetrics middleware.HTTPStatusRecorder // nil可
	StorePinger StorePinger
	Gatherer    prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → SecurityHeaders → [HTTPMetrics] → [RequestLog] →
//	  公開ルート: そのまま（/chatのみIP単位レート制限）
//	  保護ルート: Auth → RateLimit(General)
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	if deps.HTTPMetrics != nil {
		r.Use(middleware.NewHTTPMetricsMiddleware(deps.HTTPMetrics))
	}
	if deps.RequestLogger != nil {
		r.Use(deps.RequestLogger)
	}

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthMetrics)
	chatHandler := NewChatHandler(deps.AssistantService)
	reminderHandler := NewReminderHandler(deps.ReminderService)
	metricHandler := NewMetricHandler(deps.MetricService)
	medicalHandler := NewMedicalHandler(deps.MedicalService)
	healthHandler := NewHealthHandler(deps.StorePinger)

	// --- 認証不要のルート ---

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// チャットはIP単位のレート制限付き
	r.With(deps.RateLimiter.ChatMiddleware()).Post("/chat", chatHandler.Chat)

	r.Get("/health", healthHandler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	// 読み取りを含む全リソース操作が検証済みクレームにバインドされる。
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// リマインダー
		r.Post("/reminders", reminderHandler.CreateReminder)
		r.Delete("/reminders/{reminderId}", reminderHandler.DeleteReminder)
		r.Get("/users/{userId}/reminders", reminderHandler.ListReminders)

		// 健康記録
		r.Post("/health-metrics", metricHandler.CreateMetric)
		r.Get("/health-metrics/{userId}", metricHandler.ListMetrics)

		// 医療プロフィール
		r.Post("/medical-profile", medicalHandler.SaveMedicalProfile)
		r.Get("/medical-profile/{userId}", medicalHandler.GetMedicalProfile)
		r.Get("/emergency-contacts/{userId}", medicalHandler.ListEmergencyContacts)
	})

	return r
}
