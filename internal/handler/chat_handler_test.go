package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cuidaia/backend/internal/model"
)

// mockAssistantService はテスト用のアシスタントサービス。
type mockAssistantService struct {
	respondFunc func(ctx context.Context, message, userContext string) (string, error)
}

func (m *mockAssistantService) Respond(ctx context.Context, message, userContext string) (string, error) {
	return m.respondFunc(ctx, message, userContext)
}

func TestChat_Success(t *testing.T) {
	service := &mockAssistantService{
		respondFunc: func(ctx context.Context, message, userContext string) (string, error) {
			if message != "¿Cómo estás?" {
				t.Errorf("message = %q", message)
			}
			if userContext != "78 años" {
				t.Errorf("context = %q", userContext)
			}
			return "Muy bien, gracias por preguntar. ¿Y tú?", nil
		},
	}
	h := NewChatHandler(service)

	body := `{"message":"¿Cómo estás?","context":"78 años"}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["response"] != "Muy bien, gracias por preguntar. ¿Y tú?" {
		t.Errorf("response = %q", resp["response"])
	}
}

func TestChat_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "空メッセージは400",
			serviceErr: model.NewValidationError("el mensaje es obligatorio"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "上流障害は502",
			serviceErr: model.NewUpstreamError(),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "資格情報未設定は500",
			serviceErr: model.NewMissingCredentialError(),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockAssistantService{
				respondFunc: func(ctx context.Context, message, userContext string) (string, error) {
					return "", tt.serviceErr
				},
			}
			h := NewChatHandler(service)

			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"hola"}`))
			rec := httptest.NewRecorder()

			h.Chat(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestChat_MalformedBody(t *testing.T) {
	h := NewChatHandler(&mockAssistantService{
		respondFunc: func(ctx context.Context, message, userContext string) (string, error) {
			t.Error("service should not be called for malformed body")
			return "", nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	h.Chat(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
