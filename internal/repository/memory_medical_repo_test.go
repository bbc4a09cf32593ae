package repository

import (
	"context"
	"testing"

	"github.com/cuidaia/backend/internal/model"
)

// 未登録ユーザーのFindがnilプロフィールと空スライスを返すことを検証する。
func TestMemoryMedicalProfileRepo_Find_Empty(t *testing.T) {
	repo := NewMemoryMedicalProfileRepo()

	profile, medications, contacts, err := repo.Find(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil", profile)
	}
	if len(medications) != 0 || len(contacts) != 0 {
		t.Errorf("medications = %d, contacts = %d, want empty", len(medications), len(contacts))
	}
}

// Saveでプロフィール一式が保存され、ID未指定の要素にIDが採番されることを検証する。
func TestMemoryMedicalProfileRepo_Save_AssignsIDs(t *testing.T) {
	repo := NewMemoryMedicalProfileRepo()
	ctx := context.Background()

	err := repo.Save(ctx, "user-1",
		&model.MedicalProfile{BloodType: "O+", Allergies: "Penicilina"},
		[]*model.Medication{
			{Name: "Metformina", Dosage: "500mg", IsActive: true},
			{ID: "med-existing", Name: "Losartán", Dosage: "50mg", IsActive: true},
		},
		[]*model.EmergencyContact{
			{Name: "Ana González", Phone: "+52 555 987 6543", Relationship: "Hija", IsPrimary: true},
		},
	)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	profile, medications, contacts, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if profile == nil || profile.BloodType != "O+" {
		t.Fatalf("profile = %+v, want blood type O+", profile)
	}
	if profile.UpdatedAt.IsZero() {
		t.Error("Save() should stamp profile UpdatedAt")
	}
	if len(medications) != 2 {
		t.Fatalf("medications = %d, want 2", len(medications))
	}
	if medications[0].ID == "" {
		t.Error("Save() should assign an ID to medication without one")
	}
	if medications[1].ID != "med-existing" {
		t.Errorf("medications[1].ID = %q, want preserved %q", medications[1].ID, "med-existing")
	}
	if len(contacts) != 1 || contacts[0].ID == "" {
		t.Errorf("contacts = %+v, want 1 contact with assigned ID", contacts)
	}
	if contacts[0].UserID != "user-1" {
		t.Errorf("contact.UserID = %q, want owner binding", contacts[0].UserID)
	}
}

// 再Saveで処方薬と緊急連絡先のコレクション全体が置き換わることを検証する。
func TestMemoryMedicalProfileRepo_Save_ReplacesAll(t *testing.T) {
	repo := NewMemoryMedicalProfileRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, "user-1",
		&model.MedicalProfile{BloodType: "O+"},
		[]*model.Medication{{Name: "Metformina"}, {Name: "Losartán"}},
		[]*model.EmergencyContact{{Name: "Ana"}, {Name: "Carlos"}},
	); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.Save(ctx, "user-1",
		&model.MedicalProfile{BloodType: "A-"},
		[]*model.Medication{{Name: "Paracetamol"}},
		[]*model.EmergencyContact{},
	); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	profile, medications, contacts, err := repo.Find(ctx, "user-1")
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if profile.BloodType != "A-" {
		t.Errorf("BloodType = %q, want replaced value A-", profile.BloodType)
	}
	if len(medications) != 1 || medications[0].Name != "Paracetamol" {
		t.Errorf("medications = %+v, want single replaced entry", medications)
	}
	if len(contacts) != 0 {
		t.Errorf("contacts = %d, want wholesale replacement with empty list", len(contacts))
	}
}

// Saveが所有者ごとに独立していることを検証する。
func TestMemoryMedicalProfileRepo_Save_OwnerScoped(t *testing.T) {
	repo := NewMemoryMedicalProfileRepo()
	ctx := context.Background()

	if err := repo.Save(ctx, "user-1", &model.MedicalProfile{BloodType: "O+"},
		nil, []*model.EmergencyContact{{Name: "Ana"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := repo.Save(ctx, "user-2", &model.MedicalProfile{BloodType: "B+"},
		nil, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	contacts, err := repo.ListEmergencyContacts(ctx, "user-2")
	if err != nil {
		t.Fatalf("ListEmergencyContacts() error = %v", err)
	}
	if len(contacts) != 0 {
		t.Errorf("user-2 contacts = %d, want 0", len(contacts))
	}

	contacts, _ = repo.ListEmergencyContacts(ctx, "user-1")
	if len(contacts) != 1 {
		t.Errorf("user-1 contacts = %d, want 1", len(contacts))
	}
}
