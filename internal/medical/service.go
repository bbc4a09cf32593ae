// Package medical は医療プロフィール管理のドメインロジックを提供する。
package medical

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuidaia/backend/internal/model"
	"github.com/cuidaia/backend/internal/repository"
)

// Profile は医療プロフィール一式。プロフィール本体・処方薬・緊急連絡先を束ねる。
type Profile struct {
	Profile           *model.MedicalProfile
	Medications       []*model.Medication
	EmergencyContacts []*model.EmergencyContact
}

// Service は医療プロフィールのサービス層。
// すべての操作は検証済みトークンのユーザーIDにスコープされる。
type Service struct {
	repo repository.MedicalProfileRepository
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(repo repository.MedicalProfileRepository) *Service {
	return &Service{repo: repo}
}

// Get は指定ユーザーの医療プロフィール一式を返す。
// 未登録の場合はProfileフィールドがnil、各スライスは空になる。
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	profile, medications, contacts, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find medical profile: %w", err)
	}

	return &Profile{
		Profile:           profile,
		Medications:       medications,
		EmergencyContacts: contacts,
	}, nil
}

// Save は医療プロフィール一式を保存する。
// 処方薬と緊急連絡先は所有者のコレクション全体を置き換える。
// 所有者はリクエストボディではなく検証済みユーザーIDで決まる。
func (s *Service) Save(ctx context.Context, userID string, input *Profile) (*Profile, error) {
	if input == nil || input.Profile == nil {
		return nil, model.NewValidationError("el perfil médico es obligatorio")
	}

	input.Profile.UserID = userID
	for _, m := range input.Medications {
		if m == nil {
			return nil, model.NewValidationError("la lista de medicamentos contiene entradas vacías")
		}
		m.UserID = userID
	}
	for _, c := range input.EmergencyContacts {
		if c == nil {
			return nil, model.NewValidationError("la lista de contactos de emergencia contiene entradas vacías")
		}
		c.UserID = userID
	}

	if err := s.repo.Save(ctx, userID, input.Profile, input.Medications, input.EmergencyContacts); err != nil {
		return nil, fmt.Errorf("failed to save medical profile: %w", err)
	}

	slog.Info("medical profile saved",
		slog.String("user_id", userID),
		slog.Int("medications", len(input.Medications)),
		slog.Int("emergency_contacts", len(input.EmergencyContacts)),
	)

	// 採番済みIDと刻印済みタイムスタンプを含む保存後の状態を返す
	return s.Get(ctx, userID)
}

// ListEmergencyContacts は指定ユーザーの緊急連絡先のみを返す。
func (s *Service) ListEmergencyContacts(ctx context.Context, userID string) ([]*model.EmergencyContact, error) {
	contacts, err := s.repo.ListEmergencyContacts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	return contacts, nil
}
