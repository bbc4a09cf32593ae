// Package healthmetric は健康記録管理のドメインロジックを提供する。
package healthmetric

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cuidaia/backend/internal/model"
	"github.com/cuidaia/backend/internal/repository"
)

// Service は健康記録のサービス層。
// すべての操作は検証済みトークンのユーザーIDにスコープされる。
type Service struct {
	repo repository.HealthMetricRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.HealthMetricRepository) *Service {
	return &Service{repo: repo}
}

// List は指定ユーザーの健康記録をRecordedAt降順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.HealthMetric, error) {
	metrics, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	return metrics, nil
}

// Create は健康記録を作成する。
// 所有者はリクエストボディではなく検証済みユーザーIDで決まる。
// 血圧の"120/80"のような複合値を許容するため、値の形式は検証しない。
func (s *Service) Create(ctx context.Context, userID string, metric *model.HealthMetric) (*model.HealthMetric, error) {
	if metric == nil || strings.TrimSpace(metric.MetricType) == "" || strings.TrimSpace(metric.Value) == "" {
		return nil, model.NewValidationError("metricType y value son obligatorios")
	}

	metric.UserID = userID

	created, err := s.repo.Create(ctx, metric)
	if err != nil {
		return nil, fmt.Errorf("failed to create health metric: %w", err)
	}

	slog.Info("health metric recorded",
		slog.String("user_id", userID),
		slog.String("metric_id", created.ID),
		slog.String("metric_type", created.MetricType),
	)

	return created, nil
}
