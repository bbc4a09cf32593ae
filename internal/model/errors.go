// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ（ユーザー向け、スペイン語）
	Category string // カテゴリ: auth, validation, resource, upstream, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeInvalidCreds      = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeWeakPassword      = "WEAK_PASSWORD"
	ErrCodeReminderNotFound  = "REMINDER_NOT_FOUND"
	ErrCodeUpstream          = "UPSTREAM_ERROR"
	ErrCodeMissingCredential = "MISSING_CREDENTIAL"
	ErrCodeInternal          = "INTERNAL_ERROR"
)

// NewValidationError は入力不備エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("Datos de entrada inválidos: %s", reason),
		Category: "validation",
		Action:   "Verifica los campos del formulario e inténtalo de nuevo.",
	}
}

// NewUnauthorizedError は認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Token de autorización requerido o inválido.",
		Category: "auth",
		Action:   "Inicia sesión de nuevo para continuar.",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メール未登録とパスワード不一致を区別しない（列挙攻撃対策）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCreds,
		Message:  "Credenciales inválidas.",
		Category: "auth",
		Action:   "Verifica tu email y contraseña.",
	}
}

// NewEmailTakenError はメール重複エラーを生成する。
func NewEmailTakenError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  "Este email ya está registrado.",
		Category: "validation",
		Action:   "Inicia sesión o usa otro email.",
	}
}

// NewWeakPasswordError はパスワード長不足エラーを生成する。
func NewWeakPasswordError() *APIError {
	return &APIError{
		Code:     ErrCodeWeakPassword,
		Message:  "La contraseña debe tener al menos 6 caracteres.",
		Category: "validation",
		Action:   "Elige una contraseña más larga.",
	}
}

// NewReminderNotFoundError はリマインダー未検出エラーを生成する。
// 所有者スコープ外のリマインダーも「見つからない」として扱う。
func NewReminderNotFoundError(reminderID string) *APIError {
	return &APIError{
		Code:     ErrCodeReminderNotFound,
		Message:  fmt.Sprintf("Recordatorio no encontrado: %s", reminderID),
		Category: "resource",
		Action:   "Verifica el identificador del recordatorio.",
	}
}

// NewUpstreamError は外部テキスト生成APIの呼び出し失敗エラーを生成する。
// 診断詳細はサーバーログのみに記録し、ユーザーには定型文を返す。
func NewUpstreamError() *APIError {
	return &APIError{
		Code:     ErrCodeUpstream,
		Message:  "Lo siento, no pude procesar tu mensaje en este momento.",
		Category: "upstream",
		Action:   "Espera unos segundos e inténtalo de nuevo.",
	}
}

// NewMissingCredentialError はAPI資格情報未設定エラーを生成する。
func NewMissingCredentialError() *APIError {
	return &APIError{
		Code:     ErrCodeMissingCredential,
		Message:  "El asistente no está disponible por un error de configuración.",
		Category: "system",
		Action:   "Contacta al administrador del servicio.",
	}
}

// NewInternalError は内部エラーを生成する。
func NewInternalError() *APIError {
	return &APIError{
		Code:     ErrCodeInternal,
		Message:  "Error interno del servidor.",
		Category: "system",
		Action:   "Espera un momento e inténtalo de nuevo.",
	}
}
