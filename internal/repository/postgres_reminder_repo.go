package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaia/backend/internal/model"
)

// PostgresReminderRepo はPostgreSQLを使用したリマインダーリポジトリ。
type PostgresReminderRepo struct {
	db *sql.DB
}

// NewPostgresReminderRepo はPostgresReminderRepoを生成する。
func NewPostgresReminderRepo(db *sql.DB) *PostgresReminderRepo {
	return &PostgresReminderRepo{db: db}
}

// ListByUser は指定ユーザーのリマインダー一覧を挿入順で返す。
// seqは挿入順を保持するための連番カラム。
func (r *PostgresReminderRepo) ListByUser(ctx context.Context, userID string) ([]*model.Reminder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, reminder_type, scheduled_time, scheduled_days,
		        is_active, created_at, updated_at
		 FROM reminders WHERE user_id = $1 ORDER BY seq ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	reminders := []*model.Reminder{}
	for rows.Next() {
		rem := &model.Reminder{}
		var updatedAt sql.NullTime
		if err := rows.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.Description,
			&rem.ReminderType, &rem.ScheduledTime, &rem.ScheduledDays,
			&rem.IsActive, &rem.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			rem.UpdatedAt = &t
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}

// Create はリマインダーを作成する。ID未指定の場合はUUIDを採番する。
func (r *PostgresReminderRepo) Create(ctx context.Context, reminder *model.Reminder) (*model.Reminder, error) {
	stored := *reminder
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = &now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (id, user_id, title, description, reminder_type, scheduled_time,
		                        scheduled_days, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		stored.ID, stored.UserID, stored.Title, stored.Description, stored.ReminderType,
		stored.ScheduledTime, stored.ScheduledDays, stored.IsActive, stored.CreatedAt, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert reminder: %w", err)
	}

	return &stored, nil
}

// Delete は指定所有者のリマインダーを削除する。
// WHERE句でuser_idを束縛し、他の所有者のレコードには決して到達しない。
func (r *PostgresReminderRepo) Delete(ctx context.Context, userID, reminderID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reminders WHERE id = $1 AND user_id = $2`,
		reminderID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete reminder: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

var _ ReminderRepository = (*PostgresReminderRepo)(nil)
