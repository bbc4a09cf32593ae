package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaia/backend/internal/model"
)

// PostgresHealthMetricRepo はPostgreSQLを使用した健康記録リポジトリ。
type PostgresHealthMetricRepo struct {
	db *sql.DB
}

// NewPostgresHealthMetricRepo はPostgresHealthMetricRepoを生成する。
func NewPostgresHealthMetricRepo(db *sql.DB) *PostgresHealthMetricRepo {
	return &PostgresHealthMetricRepo{db: db}
}

// ListByUser は指定ユーザーの健康記録をRecordedAt降順で返す。
func (r *PostgresHealthMetricRepo) ListByUser(ctx context.Context, userID string) ([]*model.HealthMetric, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, metric_type, value, unit, notes, recorded_at, created_at
		 FROM health_metrics WHERE user_id = $1 ORDER BY recorded_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list health metrics: %w", err)
	}
	defer rows.Close()

	metrics := []*model.HealthMetric{}
	for rows.Next() {
		m := &model.HealthMetric{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.MetricType, &m.Value, &m.Unit,
			&m.Notes, &m.RecordedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan health metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate health metrics: %w", err)
	}

	return metrics, nil
}

// Create は健康記録を作成する。
// ID未指定の場合はUUIDを採番し、RecordedAt未指定の場合は現在時刻を刻印する。
func (r *PostgresHealthMetricRepo) Create(ctx context.Context, metric *model.HealthMetric) (*model.HealthMetric, error) {
	stored := *metric
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now()
	if stored.RecordedAt.IsZero() {
		stored.RecordedAt = now
	}
	stored.CreatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO health_metrics (id, user_id, metric_type, value, unit, notes, recorded_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		stored.ID, stored.UserID, stored.MetricType, stored.Value, stored.Unit,
		stored.Notes, stored.RecordedAt, stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert health metric: %w", err)
	}

	return &stored, nil
}

var _ HealthMetricRepository = (*PostgresHealthMetricRepo)(nil)
