package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/cuidaia/backend/internal/model"
)

func testRateLimiter(generalBurst, chatBurst int) *RateLimiter {
	return NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(0.001), // 補充をほぼ無効化してバーストのみで検証
		GeneralBurst:    generalBurst,
		ChatRate:        rate.Limit(0.001),
		ChatBurst:       chatBurst,
		CleanupInterval: time.Hour,
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := testRateLimiter(3, 1)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())
	ctx := ContextWithClaims(context.Background(), &model.TokenClaims{UserID: "user-1"})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/users/user-1/reminders", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, rec.Code, http.StatusOK)
		}
	}
}

func TestGeneralMiddleware_RejectsOverBurst(t *testing.T) {
	rl := testRateLimiter(2, 1)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())
	ctx := ContextWithClaims(context.Background(), &model.TokenClaims{UserID: "user-1"})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health-metrics/user-1", nil).WithContext(ctx)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/health-metrics/user-1", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be set on 429")
	}
}

func TestGeneralMiddleware_IsolatesUsers(t *testing.T) {
	rl := testRateLimiter(1, 1)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	// user-1がバーストを使い切る
	ctx1 := ContextWithClaims(context.Background(), &model.TokenClaims{UserID: "user-1"})
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/reminders", nil).WithContext(ctx1))

	// user-2には影響しない
	ctx2 := ContextWithClaims(context.Background(), &model.TokenClaims{UserID: "user-2"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reminders", nil).WithContext(ctx2))

	if rec.Code != http.StatusOK {
		t.Errorf("user-2 status = %d, want %d", rec.Code, http.StatusOK)
	}

	if count := rl.GeneralLimiterCount(); count != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", count)
	}
}

func TestGeneralMiddleware_RequiresAuthContext(t *testing.T) {
	rl := testRateLimiter(5, 1)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestChatMiddleware_KeyedByClientIP(t *testing.T) {
	rl := testRateLimiter(1, 1)
	defer rl.Stop()

	handler := rl.ChatMiddleware()(okHandler())

	// 同一IPからの2回目は拒否される
	req1 := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req1.RemoteAddr = "10.0.0.1:40001"
	handler.ServeHTTP(httptest.NewRecorder(), req1)

	req2 := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req2.RemoteAddr = "10.0.0.1:40002"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req2)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("same IP second request: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}

	// 別IPは独立してカウントされる
	req3 := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req3.RemoteAddr = "10.0.0.2:40001"
	rec3 := httptest.NewRecorder()
	handler.ServeHTTP(rec3, req3)

	if rec3.Code != http.StatusOK {
		t.Errorf("different IP: status = %d, want %d", rec3.Code, http.StatusOK)
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(1),
		GeneralBurst:    1,
		ChatRate:        rate.Limit(1),
		ChatBurst:       1,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer rl.Stop()

	rl.getOrCreate(&rl.generalMu, rl.generalLimiters, "user-old", rl.config.GeneralRate, rl.config.GeneralBurst)

	// lastAccessを過去に巻き戻してクリーンアップ対象にする
	rl.generalMu.Lock()
	rl.generalLimiters["user-old"].lastAccess = time.Now().Add(-time.Hour)
	rl.generalMu.Unlock()

	rl.cleanup()

	if count := rl.GeneralLimiterCount(); count != 0 {
		t.Errorf("GeneralLimiterCount after cleanup = %d, want 0", count)
	}
}

func TestNewRateLimiterConfig(t *testing.T) {
	cfg := NewRateLimiterConfig(120, 20)

	if cfg.GeneralBurst != 120 {
		t.Errorf("GeneralBurst = %d, want 120", cfg.GeneralBurst)
	}
	if cfg.ChatBurst != 20 {
		t.Errorf("ChatBurst = %d, want 20", cfg.ChatBurst)
	}
	if cfg.GeneralRate != rate.Limit(2.0) {
		t.Errorf("GeneralRate = %v, want 2.0", cfg.GeneralRate)
	}
}
