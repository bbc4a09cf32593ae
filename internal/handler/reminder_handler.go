package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cuidaia/backend/internal/middleware"
	"github.com/cuidaia/backend/internal/model"
)

// ReminderServiceInterface はリマインダーハンドラーが必要とするサービスインターフェース。
type ReminderServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Reminder, error)
	Create(ctx context.Context, userID string, reminder *model.Reminder) (*model.Reminder, error)
	Delete(ctx context.Context, userID, reminderID string) error
}

// ReminderHandler はリマインダー管理のHTTPハンドラー。
// すべての操作は検証済みトークンのユーザーIDにバインドされる。
type ReminderHandler struct {
	service ReminderServiceInterface
}

// NewReminderHandler はReminderHandlerを生成する。
func NewReminderHandler(service ReminderServiceInterface) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// createReminderRequest はリマインダー作成リクエストのボディ。
// userIdは後方互換のため受け付けるが、検証済みクレームと一致しない場合は拒否する。
type createReminderRequest struct {
	UserID   string          `json:"userId,omitempty"`
	Reminder *model.Reminder `json:"reminder"`
}

// claimUserID はコンテキストの検証済みユーザーIDを取得する。
// suppliedが空でなくクレームと一致しない場合は空文字列とfalseを返す。
func claimUserID(w http.ResponseWriter, r *http.Request, supplied string) (string, bool) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return "", false
	}
	if supplied != "" && supplied != userID {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return "", false
	}
	return userID, true
}

// CreateReminder はリマインダー作成を処理する。
// POST /reminders
func (h *ReminderHandler) CreateReminder(w http.ResponseWriter, r *http.Request) {
	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	userID, ok := claimUserID(w, r, req.UserID)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), userID, req.Reminder)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "Recordatorio creado exitosamente",
		"reminder": created,
	})
}

// DeleteReminder はリマインダー削除を処理する。
// DELETE /reminders/{reminderId}
func (h *ReminderHandler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimUserID(w, r, "")
	if !ok {
		return
	}

	reminderID := chi.URLParam(r, "reminderId")

	if err := h.service.Delete(r.Context(), userID, reminderID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Recordatorio eliminado exitosamente",
	})
}

// ListReminders はリマインダー一覧取得を処理する。
// GET /users/{userId}/reminders
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	userID, ok := claimUserID(w, r, chi.URLParam(r, "userId"))
	if !ok {
		return
	}

	reminders, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if reminders == nil {
		reminders = []*model.Reminder{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"reminders": reminders,
	})
}
