// Package model はドメインモデルを定義する。
package model

import "time"

// Reminder は服薬・通院・運動などのリマインダーを表す。
type Reminder struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	ReminderType  string     `json:"reminderType"`
	ScheduledTime string     `json:"scheduledTime"`
	ScheduledDays string     `json:"scheduledDays"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// HealthMetric は血圧・心拍数・体重などの健康記録1件を表す。
// Valueは"120/80"のような複合値を許容するため文字列で保持する。
type HealthMetric struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MetricType string    `json:"metricType"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MedicalProfile はユーザー1人につき1件の医療プロフィールを表す。
type MedicalProfile struct {
	UserID             string    `json:"userId"`
	BloodType          string    `json:"bloodType,omitempty"`
	Allergies          string    `json:"allergies,omitempty"`
	ChronicConditions  string    `json:"chronicConditions,omitempty"`
	CurrentMedications string    `json:"currentMedications,omitempty"`
	MedicalNotes       string    `json:"medicalNotes,omitempty"`
	PrimaryDoctorName  string    `json:"primaryDoctorName,omitempty"`
	PrimaryDoctorPhone string    `json:"primaryDoctorPhone,omitempty"`
	InsuranceProvider  string    `json:"insuranceProvider,omitempty"`
	InsuranceNumber    string    `json:"insuranceNumber,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Medication は処方薬1件を表す。医療プロフィール保存時に一括置換される。
type Medication struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Dosage       string    `json:"dosage,omitempty"`
	Frequency    string    `json:"frequency,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	StartDate    string    `json:"startDate,omitempty"`
	IsActive     bool      `json:"isActive"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EmergencyContact は緊急連絡先1件を表す。医療プロフィール保存時に一括置換される。
type EmergencyContact struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Relationship string    `json:"relationship,omitempty"`
	IsPrimary    bool      `json:"isPrimary"`
	Notes        string    `json:"notes,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
