package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaia/backend/internal/model"
)

// MemoryMedicalProfileRepo はプロセス内メモリを使用した医療プロフィールリポジトリ。
// プロフィール・処方薬・緊急連絡先の3コレクションを単一のmutexで保護し、
// Saveによる一括置換を原子的に行う。
type MemoryMedicalProfileRepo struct {
	mu          sync.RWMutex
	profiles    map[string]*model.MedicalProfile
	medications map[string][]*model.Medication
	contacts    map[string][]*model.EmergencyContact
}

// NewMemoryMedicalProfileRepo はMemoryMedicalProfileRepoを生成する。
func NewMemoryMedicalProfileRepo() *MemoryMedicalProfileRepo {
	return &MemoryMedicalProfileRepo{
		profiles:    make(map[string]*model.MedicalProfile),
		medications: make(map[string][]*model.Medication),
		contacts:    make(map[string][]*model.EmergencyContact),
	}
}

// Find は指定ユーザーの医療プロフィール一式を返す。
func (r *MemoryMedicalProfileRepo) Find(ctx context.Context, userID string) (*model.MedicalProfile, []*model.Medication, []*model.EmergencyContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profile *model.MedicalProfile
	if p, ok := r.profiles[userID]; ok {
		clone := *p
		profile = &clone
	}

	return profile, cloneMedications(r.medications[userID]), cloneContacts(r.contacts[userID]), nil
}

// Save は医療プロフィール一式を保存する。
// 処方薬と緊急連絡先はIDが空の要素にUUIDを採番し、コレクション全体を置き換える。
func (r *MemoryMedicalProfileRepo) Save(ctx context.Context, userID string, profile *model.MedicalProfile, medications []*model.Medication, contacts []*model.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()

	p := *profile
	p.UserID = userID
	p.UpdatedAt = now
	r.profiles[userID] = &p

	meds := make([]*model.Medication, len(medications))
	for i, m := range medications {
		clone := *m
		if clone.ID == "" {
			clone.ID = uuid.New().String()
		}
		clone.UserID = userID
		clone.UpdatedAt = now
		meds[i] = &clone
	}
	r.medications[userID] = meds

	cts := make([]*model.EmergencyContact, len(contacts))
	for i, c := range contacts {
		clone := *c
		if clone.ID == "" {
			clone.ID = uuid.New().String()
		}
		clone.UserID = userID
		clone.UpdatedAt = now
		cts[i] = &clone
	}
	r.contacts[userID] = cts

	return nil
}

// ListEmergencyContacts は指定ユーザーの緊急連絡先のみを返す。
func (r *MemoryMedicalProfileRepo) ListEmergencyContacts(ctx context.Context, userID string) ([]*model.EmergencyContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneContacts(r.contacts[userID]), nil
}

func cloneMedications(src []*model.Medication) []*model.Medication {
	result := make([]*model.Medication, len(src))
	for i, m := range src {
		clone := *m
		result[i] = &clone
	}
	return result
}

func cloneContacts(src []*model.EmergencyContact) []*model.EmergencyContact {
	result := make([]*model.EmergencyContact, len(src))
	for i, c := range src {
		clone := *c
		result[i] = &clone
	}
	return result
}

var _ MedicalProfileRepository = (*MemoryMedicalProfileRepo)(nil)
