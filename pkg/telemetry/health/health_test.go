package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"default timeout", 0, DefaultCheckTimeout},
		{"negative timeout", -time.Second, DefaultCheckTimeout},
		{"custom timeout", 10 * time.Second, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(tt.timeout)
			if checker.checkTimeout != tt.want {
				t.Errorf("checkTimeout = %v, want %v", checker.checkTimeout, tt.want)
			}
			if len(checker.Checks()) != 0 {
				t.Errorf("expected no checks, got %v", checker.Checks())
			}
		})
	}
}

func TestRegisterCheck(t *testing.T) {
	checker := New(time.Second)
	checker.RegisterCheck("parse", func(ctx context.Context) error { return errors.New("first") })
	checker.RegisterCheck("history", func(ctx context.Context) error { return nil })
	checker.RegisterCheck("parse", func(ctx context.Context) error { return nil })

	if diff := cmp.Diff([]string{"history", "parse"}, checker.Checks()); diff != "" {
		t.Errorf("Checks() mismatch (-want +got):\n%s", diff)
	}

	status := checker.CheckReadiness(context.Background())
	if status.Status != StatusReady {
		t.Errorf("replaced check still fails: %+v", status)
	}
}

func TestCheckReadiness(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]CheckFunc
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:       "no checks",
			wantStatus: StatusReady,
			wantChecks: map[string]string{},
		},
		{
			name: "all healthy",
			checks: map[string]CheckFunc{
				"parse":   func(ctx context.Context) error { return nil },
				"history": func(ctx context.Context) error { return nil },
			},
			wantStatus: StatusReady,
			wantChecks: map[string]string{"parse": StatusOK, "history": StatusOK},
		},
		{
			name: "one failing",
			checks: map[string]CheckFunc{
				"parse":   func(ctx context.Context) error { return errors.New("2 errors") },
				"history": func(ctx context.Context) error { return nil },
			},
			wantStatus: StatusDegraded,
			wantChecks: map[string]string{"parse": StatusUnhealthy, "history": StatusOK},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := New(time.Second)
			for name, check := range tt.checks {
				checker.RegisterCheck(name, check)
			}

			status := checker.CheckReadiness(context.Background())
			if status.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", status.Status, tt.wantStatus)
			}

			got := make(map[string]string, len(status.Checks))
			for name, result := range status.Checks {
				got[name] = result.Status
			}
			if diff := cmp.Diff(tt.wantChecks, got); diff != "" {
				t.Errorf("check statuses mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckReadiness_Timeout(t *testing.T) {
	checker := New(20 * time.Millisecond)
	checker.RegisterCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		time.Sleep(50 * time.Millisecond)
		return nil
	})

	status := checker.CheckReadiness(context.Background())
	result := status.Checks["slow"]
	if result.Status != StatusUnhealthy || result.Message != "health check timeout" {
		t.Errorf("slow check = %+v, want timeout", result)
	}
}

func TestHandlers(t *testing.T) {
	checker := New(time.Second)
	healthy := true
	checker.RegisterCheck("parse", func(ctx context.Context) error {
		if !healthy {
			return errors.New("last parse failed")
		}
		return nil
	})

	mux := http.NewServeMux()
	Register(mux, checker, "1.2.3", "abc123", "2026-01-01")

	get := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	if rec := get(http.MethodGet, LivenessPath); rec.Code != http.StatusOK {
		t.Errorf("liveness code = %d, want 200", rec.Code)
	}

	rec := get(http.MethodGet, ReadinessPath)
	if rec.Code != http.StatusOK {
		t.Errorf("readiness code = %d, want 200", rec.Code)
	}

	healthy = false
	rec = get(http.MethodGet, ReadinessPath)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness code = %d, want 503", rec.Code)
	}
	var status Status
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode readiness: %v", err)
	}
	if got := status.Checks["parse"].Message; got != "last parse failed" {
		t.Errorf("parse message = %q", got)
	}

	rec = get(http.MethodGet, VersionPath)
	var info VersionInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info.Version != "1.2.3" || info.Commit != "abc123" || info.GoVersion == "" {
		t.Errorf("version info = %+v", info)
	}

	if rec := get(http.MethodPost, LivenessPath); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST code = %d, want 405", rec.Code)
	}
	if rec := get(http.MethodHead, LivenessPath); rec.Body.Len() != 0 {
		t.Errorf("HEAD returned a body: %q", rec.Body.String())
	}
}
