// Package token は署名付きセッショントークンの発行と検証を提供する。
// トークンはステートレスで、サーバー側に失効リストは持たない。
// ログアウトはクライアント側でのトークン破棄のみで実現される。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cuidaia/backend/internal/model"
)

// ErrInvalidToken は署名不一致・構造不正・期限切れのいずれかを表す。
// 呼び出し側はこれらを区別せず、一律に401として扱う。
var ErrInvalidToken = errors.New("invalid token")

// claims はJWTに埋め込むクレーム構造。
type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Service はHS256署名によるトークンの発行と検証を行う。
type Service struct {
	secret   []byte
	validity time.Duration
}

// NewService はServiceを生成する。
// secretが空の場合の動作は未定義。configが起動時に必須チェックを行う。
func NewService(secret string, validity time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Issue はユーザーIDとメールアドレスを含む署名付きトークンを発行する。
// 有効期限は発行時刻からvalidity（デフォルト7日）後。
func (s *Service) Issue(userID, email string) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID: userID,
		Email:  email,
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンを検証し、含まれるクレームを返す。
// 署名不一致・構造不正・期限切れのいずれでもErrInvalidTokenを返す。
// 部分的な有効状態（ソフト期限切れ等）は存在しない。
func (s *Service) Verify(tokenString string) (*model.TokenClaims, error) {
	c := &claims{}

	t, err := jwt.ParseWithClaims(tokenString, c, func(t *jwt.Token) (interface{}, error) {
		// alg none攻撃やRS256へのすり替えを拒否する
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !t.Valid || c.UserID == "" {
		return nil, ErrInvalidToken
	}

	return &model.TokenClaims{
		UserID: c.UserID,
		Email:  c.Email,
	}, nil
}
