// Package reminder はリマインダー管理のドメインロジックを提供する。
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cuidaia/backend/internal/model"
	"github.com/cuidaia/backend/internal/repository"
)

// Service はリマインダーのサービス層。
// すべての操作は検証済みトークンのユーザーIDにスコープされる。
type Service struct {
	repo repository.ReminderRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.ReminderRepository) *Service {
	return &Service{repo: repo}
}

// List は指定ユーザーのリマインダー一覧を挿入順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Reminder, error) {
	reminders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// Create はリマインダーを作成する。
// 所有者はリクエストボディではなく検証済みユーザーIDで決まる。
func (s *Service) Create(ctx context.Context, userID string, reminder *model.Reminder) (*model.Reminder, error) {
	if reminder == nil || strings.TrimSpace(reminder.Title) == "" {
		return nil, model.NewValidationError("el título del recordatorio es obligatorio")
	}

	reminder.UserID = userID

	created, err := s.repo.Create(ctx, reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}

	slog.Info("reminder created",
		slog.String("user_id", userID),
		slog.String("reminder_id", created.ID),
	)

	return created, nil
}

// Delete は指定所有者のリマインダーを削除する。
// 他ユーザーのリマインダーIDは存在しないものとして扱い、NOT_FOUNDエラーを返す。
func (s *Service) Delete(ctx context.Context, userID, reminderID string) error {
	if strings.TrimSpace(reminderID) == "" {
		return model.NewValidationError("el identificador del recordatorio es obligatorio")
	}

	deleted, err := s.repo.Delete(ctx, userID, reminderID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if !deleted {
		return model.NewReminderNotFoundError(reminderID)
	}

	slog.Info("reminder deleted",
		slog.String("user_id", userID),
		slog.String("reminder_id", reminderID),
	)

	return nil
}
