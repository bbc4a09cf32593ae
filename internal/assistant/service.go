package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cuidaia/backend/internal/model"
)

const (
	// maxResponseTokens は生成テキストの上限トークン数。
	maxResponseTokens = 300
	// samplingTemperature は生成時のサンプリング温度。
	samplingTemperature = 0.7
	// defaultUserContext はコンテキスト未指定時に使用する既定値。
	defaultUserContext = "Usuario adulto mayor que busca apoyo diario"
)

// personaPromptTemplate はアシスタントの固定ペルソナプロンプト。
// 末尾にユーザーコンテキストを補間する。
const personaPromptTemplate = `Eres CuidaIA, un asistente de inteligencia artificial especializado en el cuidado y acompañamiento de adultos mayores.

PERSONALIDAD Y TONO:
- Cálido, empático y paciente
- Usa un lenguaje claro y sencillo
- Evita tecnicismos médicos complejos
- Siempre positivo y alentador
- Respetuoso con la experiencia y sabiduría del usuario

CAPACIDADES PRINCIPALES:
1. Recordatorios médicos personalizados
2. Apoyo emocional y conversación
3. Consejos de salud y bienestar
4. Ayuda con tareas diarias
5. Información sobre citas médicas

PAUTAS DE RESPUESTA:
- Responde en español
- Mantén respuestas concisas pero completas
- Siempre pregunta por el bienestar del usuario
- Ofrece ayuda práctica cuando sea apropiado
- Si detectas preocupaciones de salud, recomienda consultar con un médico
- Nunca proporciones diagnósticos médicos específicos

CONTEXTO DEL USUARIO: %s`

// Completer はチャット補完のインターフェース。Clientの部分集合として定義する。
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userMessage string, maxTokens int, temperature float64) (string, error)
}

// Sanitizer はテキストサニタイズのインターフェース。
type Sanitizer interface {
	Sanitize(raw string) string
}

// ChatMetrics はチャット関連メトリクス記録のインターフェース。
type ChatMetrics interface {
	RecordChatSuccess()
	RecordChatFailure(reason string)
	RecordChatLatency(duration time.Duration)
}

// Service はチャットアシスタントのサービス層。
// ユーザーメッセージ1件を固定ペルソナ付きで外部APIに中継する。
// サーバー側に会話履歴は保持しない。リトライも行わない。
type Service struct {
	client    Completer
	sanitizer Sanitizer
	metrics   ChatMetrics
	hasAPIKey bool
}

// NewService はServiceの新しいインスタンスを生成する。
// hasAPIKeyがfalseの場合、Respondは外部呼び出しを行わず
// MISSING_CREDENTIALエラーを返す。
func NewService(client Completer, sanitizer Sanitizer, metrics ChatMetrics, hasAPIKey bool) *Service {
	return &Service{
		client:    client,
		sanitizer: sanitizer,
		metrics:   metrics,
		hasAPIKey: hasAPIKey,
	}
}

// Respond はユーザーメッセージに対するアシスタント応答を生成する。
// userContextが空の場合は既定のコンテキストを補間する。
// 応答はHTMLサニタイズ後に返される。
func (s *Service) Respond(ctx context.Context, message, userContext string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", model.NewValidationError("el mensaje es obligatorio")
	}

	if !s.hasAPIKey {
		slog.Error("text generation credential is not configured")
		s.metrics.RecordChatFailure("missing_credential")
		return "", model.NewMissingCredentialError()
	}

	if strings.TrimSpace(userContext) == "" {
		userContext = defaultUserContext
	}
	systemPrompt := fmt.Sprintf(personaPromptTemplate, userContext)

	start := time.Now()
	text, err := s.client.Complete(ctx, systemPrompt, message, maxResponseTokens, samplingTemperature)
	s.metrics.RecordChatLatency(time.Since(start))

	if err != nil {
		// 診断詳細はログのみ。呼び出し元には構造化エラーだけを返す。
		slog.Error("assistant response failed",
			slog.String("error", err.Error()),
		)
		s.metrics.RecordChatFailure("upstream")
		return "", model.NewUpstreamError()
	}

	s.metrics.RecordChatSuccess()

	return s.sanitizer.Sanitize(text), nil
}
