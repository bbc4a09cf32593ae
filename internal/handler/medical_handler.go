package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuidaia/backend/internal/medical"
	"github.com/cuidaia/backend/internal/model"
)

// MedicalServiceInterface は医療プロフィールハンドラーが必要とするサービスインターフェース。
type MedicalServiceInterface interface {
	Get(ctx context.Context, userID string) (*medical.Profile, error)
	Save(ctx context.Context, userID string, input *medical.Profile) (*medical.Profile, error)
	ListEmergencyContacts(ctx context.Context, userID string) ([]*model.EmergencyContact, error)
}

// MedicalHandler は医療プロフィール管理のHTTPハンドラー。
// すべての操作は検証済みトークンのユーザーIDにバインドされる。
type MedicalHandler struct {
	service MedicalServiceInterface
}

// NewMedicalHandler はMedicalHandlerを生成する。
func NewMedicalHandler(service MedicalServiceInterface) *MedicalHandler {
	return &MedicalHandler{service: service}
}

// saveMedicalProfileRequest は医療プロフィール保存リクエストのボディ。
// 処方薬と緊急連絡先はコレクション全体を置き換える。
type saveMedicalProfileRequest struct {
	UserID            string                    `json:"userId,omitempty"`
	Profile           *model.MedicalProfile     `json:"profile"`
	Medications       []*model.Medication       `json:"medications"`
	EmergencyContacts []*model.EmergencyContact `json:"emergencyContacts"`
}

// medicalProfileResponse は医療プロフィール一式のレスポンス。
type medicalProfileResponse struct {
	Profile           *model.MedicalProfile     `json:"profile"`
	Medications       []*model.Medication       `json:"medications"`
	EmergencyContacts []*model.EmergencyContact `json:"emergencyContacts"`
}

func toMedicalProfileResponse(p *medical.Profile) medicalProfileResponse {
	resp := medicalProfileResponse{
		Profile:           p.Profile,
		Medications:       p.Medications,
		EmergencyContacts: p.EmergencyContacts,
	}
	if resp.Medications == nil {
		resp.Medications = []*model.Medication{}
	}
	if resp.EmergencyContacts == nil {
		resp.EmergencyContacts = []*model.EmergencyContact{}
	}
	return resp
}

// SaveMedicalProfile は医療プロフィール保存を処理する。
// POST /medical-profile
func (h *MedicalHandler) SaveMedicalProfile(w http.ResponseWriter, r *http.Request) {
	var req saveMedicalProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	userID, ok := claimUserID(w, r, req.UserID)
	if !ok {
		return
	}

	saved, err := h.service.Save(r.Context(), userID, &medical.Profile{
		Profile:           req.Profile,
		Medications:       req.Medications,
		EmergencyContacts: req.EmergencyContacts,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	resp := toMedicalProfileResponse(saved)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Perfil médico guardado exitosamente",
		"profile":           resp.Profile,
		"medications":       resp.Medications,
		"emergencyContacts": resp.EmergencyContacts,
	})
}

// GetMedicalProfile は医療プロフィール取得を処理する。
// GET /medical-profile/{userId}
func (h *MedicalHandler) GetMedicalProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimUserID(w, r, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	profile, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMedicalProfileResponse(profile))
}

// ListEmergencyContacts は緊急連絡先一覧取得を処理する。
// GET /emergency-contacts/{userId}
func (h *MedicalHandler) ListEmergencyContacts(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimUserID(w, r, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	contacts, err := h.service.ListEmergencyContacts(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*model.EmergencyContact{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": contacts,
	})
}
