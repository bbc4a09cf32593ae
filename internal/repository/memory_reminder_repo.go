package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaia/backend/internal/model"
)

// MemoryReminderRepo はプロセス内メモリを使用したリマインダーリポジトリ。
// 所有者IDをキーとした挿入順のコレクションをmutexで保護する。
type MemoryReminderRepo struct {
	mu      sync.RWMutex
	byOwner map[string][]*model.Reminder
}

// NewMemoryReminderRepo はMemoryReminderRepoを生成する。
func NewMemoryReminderRepo() *MemoryReminderRepo {
	return &MemoryReminderRepo{
		byOwner: make(map[string][]*model.Reminder),
	}
}

// ListByUser は指定ユーザーのリマインダー一覧を挿入順で返す。
func (r *MemoryReminderRepo) ListByUser(ctx context.Context, userID string) ([]*model.Reminder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.byOwner[userID]
	result := make([]*model.Reminder, len(stored))
	for i, rem := range stored {
		clone := *rem
		result[i] = &clone
	}
	return result, nil
}

// Create はリマインダーを作成する。
// ID未指定の場合はUUIDを採番する。呼び出し側が指定したIDは保持する。
func (r *MemoryReminderRepo) Create(ctx context.Context, reminder *model.Reminder) (*model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *reminder
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = &now

	r.byOwner[stored.UserID] = append(r.byOwner[stored.UserID], &stored)

	clone := stored
	return &clone, nil
}

// Delete は指定所有者のリマインダーを削除する。
// 他の所有者のコレクションは走査しない。見つからない場合はfalseを返す。
func (r *MemoryReminderRepo) Delete(ctx context.Context, userID, reminderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.byOwner[userID]
	for i, rem := range stored {
		if rem.ID == reminderID {
			r.byOwner[userID] = append(stored[:i], stored[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

var _ ReminderRepository = (*MemoryReminderRepo)(nil)
