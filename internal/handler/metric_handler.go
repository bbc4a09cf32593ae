package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuidaia/backend/internal/model"
)

// HealthMetricServiceInterface は健康記録ハンドラーが必要とするサービスインターフェース。
type HealthMetricServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.HealthMetric, error)
	Create(ctx context.Context, userID string, metric *model.HealthMetric) (*model.HealthMetric, error)
}

// MetricHandler は健康記録管理のHTTPハンドラー。
// すべての操作は検証済みトークンのユーザーIDにバインドされる。
type MetricHandler struct {
	service HealthMetricServiceInterface
}

// NewMetricHandler はMetricHandlerを生成する。
func NewMetricHandler(service HealthMetricServiceInterface) *MetricHandler {
	return &MetricHandler{service: service}
}

// createMetricRequest は健康記録作成リクエストのボディ。
type createMetricRequest struct {
	UserID string              `json:"userId,omitempty"`
	Metric *model.HealthMetric `json:"metric"`
}

// CreateMetric は健康記録作成を処理する。
// POST /health-metrics
func (h *MetricHandler) CreateMetric(w http.ResponseWriter, r *http.Request) {
	var req createMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	userID, ok := claimUserID(w, r, req.UserID)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), userID, req.Metric)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Métrica de salud registrada exitosamente",
		"metric":  created,
	})
}

// ListMetrics は健康記録一覧取得を処理する。
// GET /health-metrics/{userId}
func (h *MetricHandler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimUserID(w, r, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	metrics, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if metrics == nil {
		metrics = []*model.HealthMetric{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": metrics,
	})
}
