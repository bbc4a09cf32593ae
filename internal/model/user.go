// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザーを表す。
// PasswordHashにはbcryptハッシュを保持し、APIレスポンスには決して含めない。
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	DateOfBirth  string
	CreatedAt    time.Time
}

// TokenClaims は署名付きトークンに含まれる認証情報を表す。
// トークン検証に成功したリクエストでのみ利用できる。
type TokenClaims struct {
	UserID string
	Email  string
}
