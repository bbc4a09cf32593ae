package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/cuidaia/backend/internal/model"
)

// mockCompleter はテスト用のチャット補完器。
type mockCompleter struct {
	completeFunc func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
	return m.completeFunc(ctx, systemPrompt, userMessage, maxTokens, temperature)
}

// passthroughSanitizer は入力をそのまま返すサニタイザー。
type passthroughSanitizer struct{}

func (passthroughSanitizer) Sanitize(raw string) string { return raw }

// recordingMetrics はメトリクス呼び出しを記録するモック。
type recordingMetrics struct {
	successes int
	failures  []string
	latencies int
}

func (m *recordingMetrics) RecordChatSuccess()                       { m.successes++ }
func (m *recordingMetrics) RecordChatFailure(reason string)          { m.failures = append(m.failures, reason) }
func (m *recordingMetrics) RecordChatLatency(duration time.Duration) { m.latencies++ }

func TestRespond_Success(t *testing.T) {
	var gotSystem, gotMessage string
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
			gotSystem = systemPrompt
			gotMessage = userMessage
			if maxTokens != 300 {
				t.Errorf("maxTokens = %d, want 300", maxTokens)
			}
			if temperature != 0.7 {
				t.Errorf("temperature = %f, want 0.7", temperature)
			}
			return "Claro, te lo recuerdo cada mañana.", nil
		},
	}
	metrics := &recordingMetrics{}
	svc := NewService(completer, passthroughSanitizer{}, metrics, true)

	text, err := svc.Respond(context.Background(), "Recuérdame tomar la pastilla", "Vive solo, 78 años")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if text != "Claro, te lo recuerdo cada mañana." {
		t.Errorf("text = %q", text)
	}
	if gotMessage != "Recuérdame tomar la pastilla" {
		t.Errorf("user message = %q", gotMessage)
	}
	if !strings.Contains(gotSystem, "Eres CuidaIA") {
		t.Error("system prompt should carry the persona")
	}
	if !strings.Contains(gotSystem, "Vive solo, 78 años") {
		t.Error("system prompt should interpolate the user context")
	}
	if metrics.successes != 1 || metrics.latencies != 1 {
		t.Errorf("metrics = %+v, want 1 success and 1 latency", metrics)
	}
}

func TestRespond_DefaultContext(t *testing.T) {
	var gotSystem string
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
			gotSystem = systemPrompt
			return "ok", nil
		},
	}
	svc := NewService(completer, passthroughSanitizer{}, &recordingMetrics{}, true)

	if _, err := svc.Respond(context.Background(), "Hola", ""); err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if !strings.Contains(gotSystem, "Usuario adulto mayor que busca apoyo diario") {
		t.Error("empty context should fall back to the default")
	}
}

func TestRespond_EmptyMessage(t *testing.T) {
	svc := NewService(&mockCompleter{
		completeFunc: func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
			t.Error("completer should not be called for empty message")
			return "", nil
		},
	}, passthroughSanitizer{}, &recordingMetrics{}, true)

	_, err := svc.Respond(context.Background(), "   ", "")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeValidation {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
	}
}

func TestRespond_MissingCredential(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := NewService(&mockCompleter{
		completeFunc: func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
			t.Error("completer should not be called without a credential")
			return "", nil
		},
	}, passthroughSanitizer{}, metrics, false)

	_, err := svc.Respond(context.Background(), "Hola", "")

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeMissingCredential {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeMissingCredential)
	}
	if len(metrics.failures) != 1 || metrics.failures[0] != "missing_credential" {
		t.Errorf("failures = %v, want [missing_credential]", metrics.failures)
	}
}

func TestRespond_UpstreamFailure(t *testing.T) {
	metrics := &recordingMetrics{}
	svc := NewService(&mockCompleter{
		completeFunc: func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
			return "", fmt.Errorf("connection refused")
		},
	}, passthroughSanitizer{}, metrics, true)

	_, err := svc.Respond(context.Background(), "Hola", "")

	// 呼び出し元には構造化エラーのみ。診断詳細は漏れない。
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != model.ErrCodeUpstream {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeUpstream)
	}
	if strings.Contains(apiErr.Message, "connection refused") {
		t.Error("diagnostic detail should not leak to the caller")
	}
	if len(metrics.failures) != 1 || metrics.failures[0] != "upstream" {
		t.Errorf("failures = %v, want [upstream]", metrics.failures)
	}
}

func TestRespond_SanitizesReply(t *testing.T) {
	completer := &mockCompleter{
		completeFunc: func(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error) {
			return `Hola <script>alert(1)</script>María`, nil
		},
	}

	upper := sanitizerFunc(func(raw string) string {
		return strings.ReplaceAll(raw, "<script>alert(1)</script>", "")
	})
	svc := NewService(completer, upper, &recordingMetrics{}, true)

	text, err := svc.Respond(context.Background(), "Hola", "")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}
	if strings.Contains(text, "<script>") {
		t.Errorf("reply should pass through the sanitizer: %q", text)
	}
}

// sanitizerFunc は関数をSanitizerとして使うためのアダプター。
type sanitizerFunc func(string) string

func (f sanitizerFunc) Sanitize(raw string) string { return f(raw) }
