package handler

import (
	"context"
	"encoding/json"
	"net/http"
)

// AssistantServiceInterface はチャットハンドラーが必要とするサービスインターフェース。
type AssistantServiceInterface interface {
	// Respond はユーザーメッセージに対するアシスタント応答を生成する。
	Respond(ctx context.Context, message, userContext string) (string, error)
}

// ChatHandler はチャットアシスタントのHTTPハンドラー。
type ChatHandler struct {
	service AssistantServiceInterface
}

// NewChatHandler はChatHandlerを生成する。
func NewChatHandler(service AssistantServiceInterface) *ChatHandler {
	return &ChatHandler{service: service}
}

// chatRequest はチャットリクエストのボディ。
type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// Chat はチャットメッセージを処理する。
// POST /chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBodyResponse(w)
		return
	}

	response, err := h.service.Respond(r.Context(), req.Message, req.Context)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": response,
	})
}
