// Package auth はユーザー登録・ログインのドメインロジックを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuidaia/backend/internal/model"
	"github.com/cuidaia/backend/internal/repository"
)

// bcryptCost はパスワードハッシュの計算コスト。
const bcryptCost = 10

// minPasswordLength はパスワードの最小文字数。
const minPasswordLength = 6

// TokenIssuer はセッショントークン発行のインターフェース。
// token.Serviceの部分集合として定義する。
type TokenIssuer interface {
	Issue(userID, email string) (string, error)
}

// RegisterInput は登録リクエストの入力。
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Phone       string
	DateOfBirth string
}

// Result は登録・ログイン成功時の結果。
// トークンとパスワードハッシュを除いたユーザー情報を保持する。
type Result struct {
	Token string
	User  *model.User
}

// Service は認証のサービス層。
// 登録とログインのビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

// Register は新規ユーザーを登録し、セッショントークンを発行する。
// 必須フィールドの欠落・短すぎるパスワードはVALIDATION系エラー、
// 登録済みメールアドレスはEMAIL_TAKENエラーを返す。
// メールアドレスは小文字に正規化して保存する。
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if email == "" || input.Password == "" || strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, model.NewValidationError("email, password, firstName y lastName son obligatorios")
	}
	if !strings.Contains(email, "@") {
		return nil, model.NewValidationError("el formato del email no es válido")
	}
	if len(input.Password) < minPasswordLength {
		return nil, model.NewWeakPasswordError()
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, model.NewEmailTakenError()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Phone:        strings.TrimSpace(input.Phone),
		DateOfBirth:  strings.TrimSpace(input.DateOfBirth),
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// 事前チェックと挿入の間に同一メールが登録された場合、
		// リポジトリはEMAIL_TAKENエラーを返す。
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
	)

	return &Result{Token: token, User: user}, nil
}

// Login はメールアドレスとパスワードを検証し、セッショントークンを発行する。
// ユーザーが存在しない場合とパスワード不一致の場合は同一の
// INVALID_CREDENTIALSエラーを返し、アカウントの存在有無を漏らさない。
func (s *Service) Login(ctx context.Context, email, password string) (*Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, model.NewValidationError("email y password son obligatorios")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	return &Result{Token: token, User: user}, nil
}

// SeedDemoUser はデモユーザーを登録する。
// 起動時の初期データ投入専用で、設定で明示的に有効化された場合のみ呼ばれる。
// すでに同一メールのユーザーが存在する場合は何もしない。
func (s *Service) SeedDemoUser(ctx context.Context, password string) error {
	const demoEmail = "maria.gonzalez@email.com"

	exists, err := s.userRepo.EmailExists(ctx, demoEmail)
	if err != nil {
		return fmt.Errorf("failed to check demo user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &model.User{
		ID:           "550e8400-e29b-41d4-a716-446655440000",
		Email:        demoEmail,
		PasswordHash: string(hash),
		FirstName:    "María",
		LastName:     "González",
		Phone:        "+34 612 345 678",
		DateOfBirth:  "1955-03-15",
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	slog.Info("demo user seeded",
		slog.String("user_id", user.ID),
	)

	return nil
}
