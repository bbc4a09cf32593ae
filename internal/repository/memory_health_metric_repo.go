package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaia/backend/internal/model"
)

// MemoryHealthMetricRepo はプロセス内メモリを使用した健康記録リポジトリ。
type MemoryHealthMetricRepo struct {
	mu      sync.RWMutex
	byOwner map[string][]*model.HealthMetric
}

// NewMemoryHealthMetricRepo はMemoryHealthMetricRepoを生成する。
func NewMemoryHealthMetricRepo() *MemoryHealthMetricRepo {
	return &MemoryHealthMetricRepo{
		byOwner: make(map[string][]*model.HealthMetric),
	}
}

// ListByUser は指定ユーザーの健康記録をRecordedAt降順で返す。
// 同時刻の記録同士の相対順序は保持される（安定ソート）。
func (r *MemoryHealthMetricRepo) ListByUser(ctx context.Context, userID string) ([]*model.HealthMetric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byOwner[userID]
	result := make([]*model.HealthMetric, len(stored))
	for i, m := range stored {
		clone := *m
		result[i] = &clone
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})

	return result, nil
}

// Create は健康記録を作成する。
// ID未指定の場合はUUIDを採番し、RecordedAt未指定の場合は現在時刻を刻印する。
func (r *MemoryHealthMetricRepo) Create(ctx context.Context, metric *model.HealthMetric) (*model.HealthMetric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *metric
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now()
	if stored.RecordedAt.IsZero() {
		stored.RecordedAt = now
	}
	stored.CreatedAt = now

	r.byOwner[stored.UserID] = append(r.byOwner[stored.UserID], &stored)

	clone := stored
	return &clone, nil
}

var _ HealthMetricRepository = (*MemoryHealthMetricRepo)(nil)
