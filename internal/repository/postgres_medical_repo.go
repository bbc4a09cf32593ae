package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cuidaia/backend/internal/model"
)

// PostgresMedicalProfileRepo はPostgreSQLを使用した医療プロフィールリポジトリ。
// Saveは単一トランザクションでプロフィールをUPSERTし、
// 処方薬と緊急連絡先をDELETE+INSERTで一括置換する。
type PostgresMedicalProfileRepo struct {
	db *sql.DB
}

// NewPostgresMedicalProfileRepo はPostgresMedicalProfileRepoを生成する。
func NewPostgresMedicalProfileRepo(db *sql.DB) *PostgresMedicalProfileRepo {
	return &PostgresMedicalProfileRepo{db: db}
}

// Find は指定ユーザーの医療プロフィール一式を返す。
func (r *PostgresMedicalProfileRepo) Find(ctx context.Context, userID string) (*model.MedicalProfile, []*model.Medication, []*model.EmergencyContact, error) {
	profile := &model.MedicalProfile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, blood_type, allergies, chronic_conditions, current_medications,
		        medical_notes, primary_doctor_name, primary_doctor_phone,
		        insurance_provider, insurance_number, updated_at
		 FROM medical_profiles WHERE user_id = $1`,
		userID,
	).Scan(&profile.UserID, &profile.BloodType, &profile.Allergies, &profile.ChronicConditions,
		&profile.CurrentMedications, &profile.MedicalNotes, &profile.PrimaryDoctorName,
		&profile.PrimaryDoctorPhone, &profile.InsuranceProvider, &profile.InsuranceNumber,
		&profile.UpdatedAt)
	if err == sql.ErrNoRows {
		profile = nil
	} else if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to find medical profile: %w", err)
	}

	medications, err := r.listMedications(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	contacts, err := r.ListEmergencyContacts(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}

	return profile, medications, contacts, nil
}

// Save は医療プロフィール一式を単一トランザクションで保存する。
func (r *PostgresMedicalProfileRepo) Save(ctx context.Context, userID string, profile *model.MedicalProfile, medications []*model.Medication, contacts []*model.EmergencyContact) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO medical_profiles (user_id, blood_type, allergies, chronic_conditions,
		        current_medications, medical_notes, primary_doctor_name, primary_doctor_phone,
		        insurance_provider, insurance_number, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (user_id) DO UPDATE SET
		        blood_type = EXCLUDED.blood_type,
		        allergies = EXCLUDED.allergies,
		        chronic_conditions = EXCLUDED.chronic_conditions,
		        current_medications = EXCLUDED.current_medications,
		        medical_notes = EXCLUDED.medical_notes,
		        primary_doctor_name = EXCLUDED.primary_doctor_name,
		        primary_doctor_phone = EXCLUDED.primary_doctor_phone,
		        insurance_provider = EXCLUDED.insurance_provider,
		        insurance_number = EXCLUDED.insurance_number,
		        updated_at = EXCLUDED.updated_at`,
		userID, profile.BloodType, profile.Allergies, profile.ChronicConditions,
		profile.CurrentMedications, profile.MedicalNotes, profile.PrimaryDoctorName,
		profile.PrimaryDoctorPhone, profile.InsuranceProvider, profile.InsuranceNumber, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert medical profile: %w", err)
	}

	// 処方薬の一括置換
	if _, err := tx.ExecContext(ctx, `DELETE FROM medications WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear medications: %w", err)
	}
	for _, m := range medications {
		id := m.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO medications (id, user_id, name, dosage, frequency, instructions, start_date, is_active, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, userID, m.Name, m.Dosage, m.Frequency, m.Instructions, m.StartDate, m.IsActive, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert medication: %w", err)
		}
	}

	// 緊急連絡先の一括置換
	if _, err := tx.ExecContext(ctx, `DELETE FROM emergency_contacts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear emergency contacts: %w", err)
	}
	for _, c := range contacts {
		id := c.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO emergency_contacts (id, user_id, name, phone, relationship, is_primary, notes, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			id, userID, c.Name, c.Phone, c.Relationship, c.IsPrimary, c.Notes, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert emergency contact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListEmergencyContacts は指定ユーザーの緊急連絡先のみを返す。
func (r *PostgresMedicalProfileRepo) ListEmergencyContacts(ctx context.Context, userID string) ([]*model.EmergencyContact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, phone, relationship, is_primary, notes, updated_at
		 FROM emergency_contacts WHERE user_id = $1 ORDER BY is_primary DESC, name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list emergency contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*model.EmergencyContact{}
	for rows.Next() {
		c := &model.EmergencyContact{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Phone, &c.Relationship,
			&c.IsPrimary, &c.Notes, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan emergency contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate emergency contacts: %w", err)
	}

	return contacts, nil
}

// listMedications は指定ユーザーの処方薬一覧を返す。
func (r *PostgresMedicalProfileRepo) listMedications(ctx context.Context, userID string) ([]*model.Medication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, dosage, frequency, instructions, start_date, is_active, updated_at
		 FROM medications WHERE user_id = $1 ORDER BY name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	defer rows.Close()

	medications := []*model.Medication{}
	for rows.Next() {
		m := &model.Medication{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Dosage, &m.Frequency,
			&m.Instructions, &m.StartDate, &m.IsActive, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		medications = append(medications, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medications: %w", err)
	}

	return medications, nil
}

var _ MedicalProfileRepository = (*PostgresMedicalProfileRepo)(nil)
