// Package repository はデータ永続化のインターフェースを定義する。
// ストア契約が抽象境界であり、メモリ実装とPostgreSQL実装を差し替えられる。
package repository

import (
	"context"

	"github.com/cuidaia/backend/internal/model"
)

// UserRepository はアカウントデータの永続化インターフェース。
type UserRepository interface {
	// FindByEmail はメールアドレスでユーザーを検索する（大文字小文字を区別しない）。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// EmailExists はメールアドレスの登録有無を返す。照合規則はFindByEmailと同一。
	EmailExists(ctx context.Context, email string) (bool, error)

	// Create はユーザーを作成する。
	// メールアドレスが既に存在する場合は*model.APIError（EMAIL_TAKEN）を返す。
	// 事前のEmailExistsチェックとの間の競合はストア自身が防ぐ。
	Create(ctx context.Context, user *model.User) error
}

// ReminderRepository はリマインダーの永続化インターフェース。
type ReminderRepository interface {
	// ListByUser は指定ユーザーのリマインダー一覧を挿入順で返す。
	ListByUser(ctx context.Context, userID string) ([]*model.Reminder, error)

	// Create はリマインダーを作成する。IDが空の場合はUUIDを採番し、
	// CreatedAtを刻印して所有者のコレクション末尾に追加する。
	Create(ctx context.Context, reminder *model.Reminder) (*model.Reminder, error)

	// Delete は指定所有者のリマインダーを削除する。
	// 所有者スコープ外のIDは存在しないものとして扱い、falseを返す。
	Delete(ctx context.Context, userID, reminderID string) (bool, error)
}

// HealthMetricRepository は健康記録の永続化インターフェース。
type HealthMetricRepository interface {
	// ListByUser は指定ユーザーの健康記録をRecordedAt降順で返す。
	ListByUser(ctx context.Context, userID string) ([]*model.HealthMetric, error)

	// Create は健康記録を作成する。IDが空の場合はUUIDを採番し、
	// RecordedAtが未指定（ゼロ値）の場合は現在時刻を刻印する。
	Create(ctx context.Context, metric *model.HealthMetric) (*model.HealthMetric, error)
}

// MedicalProfileRepository は医療プロフィール・処方薬・緊急連絡先の永続化インターフェース。
// プロフィールはユーザー1人につき1件、処方薬と緊急連絡先は保存のたびに一括置換される。
type MedicalProfileRepository interface {
	// Find は指定ユーザーの医療プロフィール一式を返す。
	// プロフィール未登録の場合はnilと空スライスを返す。
	Find(ctx context.Context, userID string) (*model.MedicalProfile, []*model.Medication, []*model.EmergencyContact, error)

	// Save は医療プロフィール一式を保存する。処方薬と緊急連絡先は
	// IDが空の要素にUUIDを採番し、所有者のコレクション全体を置き換える。
	// 置換は呼び出し側から見て原子的に行われる。
	Save(ctx context.Context, userID string, profile *model.MedicalProfile, medications []*model.Medication, contacts []*model.EmergencyContact) error

	// ListEmergencyContacts は指定ユーザーの緊急連絡先のみを返す。
	ListEmergencyContacts(ctx context.Context, userID string) ([]*model.EmergencyContact, error)
}
