package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/cuidaia/backend/internal/model"
)

// MemoryUserRepo はプロセス内メモリを使用したユーザーリポジトリ。
// 全操作をmutexで保護し、並行リクエスト間の共有状態を安全に扱う。
// プロセス再起動で内容は失われる。
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users []*model.User
}

// NewMemoryUserRepo はMemoryUserRepoを生成する。
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{}
}

// FindByEmail はメールアドレスでユーザーを検索する（大文字小文字を区別しない）。
func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

// EmailExists はメールアドレスの登録有無を返す。
func (r *MemoryUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// Create はユーザーを追加する。
// 重複チェックは書き込みロック内で再実行し、ハンドラー側の事前チェックとの
// 競合ウィンドウを閉じる。
func (r *MemoryUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return model.NewEmailTakenError()
		}
	}

	clone := *user
	r.users = append(r.users, &clone)
	return nil
}

var _ UserRepository = (*MemoryUserRepo)(nil)
