package healthmetric

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuidaia/backend/internal/model"
	"github.com/cuidaia/backend/internal/repository"
)

func newTestService() *Service {
	return NewService(repository.NewMemoryHealthMetricRepo())
}

func TestCreate_AssignsOwnerFromClaim(t *testing.T) {
	svc := newTestService()

	created, err := svc.Create(context.Background(), "user-1", &model.HealthMetric{
		UserID:     "otra-persona",
		MetricType: "blood_pressure",
		Value:      "120/80",
		Unit:       "mmHg",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", created.UserID)
	}
	if created.ID == "" {
		t.Error("ID should be assigned")
	}
	if created.RecordedAt.IsZero() {
		t.Error("RecordedAt should be stamped")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name   string
		metric *model.HealthMetric
	}{
		{name: "metricType欠落", metric: &model.HealthMetric{Value: "72"}},
		{name: "value欠落", metric: &model.HealthMetric{MetricType: "heart_rate"}},
		{name: "nil", metric: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tt.metric)

			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.Code != model.ErrCodeValidation {
				t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeValidation)
			}
		})
	}
}

func TestList_NewestFirst(t *testing.T) {
	svc := newTestService()

	base := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), "user-1", &model.HealthMetric{
			MetricType: "weight",
			Value:      "68.5",
			Unit:       "kg",
			RecordedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	metrics, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metrics) != 3 {
		t.Fatalf("len(metrics) = %d, want 3", len(metrics))
	}

	for i := 1; i < len(metrics); i++ {
		if metrics[i].RecordedAt.After(metrics[i-1].RecordedAt) {
			t.Errorf("metrics[%d] recorded after metrics[%d]: order should be non-increasing", i, i-1)
		}
	}
}

func TestList_IsolatesUsers(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Create(context.Background(), "user-1", &model.HealthMetric{
		MetricType: "heart_rate",
		Value:      "72",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	metrics, err := svc.List(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("user-2 metrics = %d, want 0", len(metrics))
	}
}
