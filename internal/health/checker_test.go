package health

import (
	"context"
	"testing"
	"time"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.String(); got != tt.expected {
				t.Errorf("Status.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewResult(t *testing.T) {
	result := NewResult(StatusHealthy, "test message")

	if result.Status != StatusHealthy {
		t.Errorf("Status = %v, want %v", result.Status, StatusHealthy)
	}
	if result.Message != "test message" {
		t.Errorf("Message = %q, want %q", result.Message, "test message")
	}
	if result.Details == nil {
		t.Error("Details should be initialized, got nil")
	}
}

func TestResultChaining(t *testing.T) {
	result := Healthy("ok").
		WithDetail("key", "value").
		WithLatency(42 * time.Millisecond)

	if result.Details["key"] != "value" {
		t.Errorf("Details[key] = %v, want %q", result.Details["key"], "value")
	}
	if result.Latency != 42*time.Millisecond {
		t.Errorf("Latency = %v, want %v", result.Latency, 42*time.Millisecond)
	}
}

// stubChecker is a fixed-result checker for manager tests.
type stubChecker struct {
	name   string
	result *Result
	delay  time.Duration
}

func (c *stubChecker) Name() string { return c.name }

func (c *stubChecker) Check(ctx context.Context) *Result {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return Unhealthy("check timed out")
		}
	}
	return c.result
}

func TestManagerCheckRunsAllCheckers(t *testing.T) {
	manager := NewManager()
	manager.AddChecker(&stubChecker{name: "a", result: Healthy("ok")})
	manager.AddChecker(&stubChecker{name: "b", result: Degraded("meh")})
	manager.AddChecker(&stubChecker{name: "c", result: Unhealthy("bad")})

	results := manager.Check(context.Background())

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results["a"].Status != StatusHealthy {
		t.Errorf("a = %v, want healthy", results["a"].Status)
	}
	if results["b"].Status != StatusDegraded {
		t.Errorf("b = %v, want degraded", results["b"].Status)
	}
	if results["c"].Status != StatusUnhealthy {
		t.Errorf("c = %v, want unhealthy", results["c"].Status)
	}
	if results["a"].Latency <= 0 {
		t.Error("latency should be recorded")
	}
}

func TestManagerCheckTimeout(t *testing.T) {
	manager := NewManager().WithTimeout(50 * time.Millisecond)
	manager.AddChecker(&stubChecker{name: "slow", result: Healthy("ok"), delay: 5 * time.Second})

	start := time.Now()
	results := manager.Check(context.Background())
	elapsed := time.Since(start)

	if elapsed > 2*time.Second {
		t.Fatalf("check took %v, timeout did not apply", elapsed)
	}
	if results["slow"].Status != StatusUnhealthy {
		t.Errorf("slow = %v, want unhealthy after timeout", results["slow"].Status)
	}
}

func TestManagerOverallStatus(t *testing.T) {
	manager := NewManager()

	tests := []struct {
		name     string
		results  map[string]*Result
		expected Status
	}{
		{"empty", map[string]*Result{}, StatusHealthy},
		{"all healthy", map[string]*Result{
			"a": Healthy("ok"), "b": Healthy("ok"),
		}, StatusHealthy},
		{"one degraded", map[string]*Result{
			"a": Healthy("ok"), "b": Degraded("meh"),
		}, StatusDegraded},
		{"unhealthy wins", map[string]*Result{
			"a": Degraded("meh"), "b": Unhealthy("bad"),
		}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := manager.OverallStatus(tt.results); got != tt.expected {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestManagerCheckNames(t *testing.T) {
	manager := NewManager()
	manager.AddChecker(&stubChecker{name: "backend-api", result: Healthy("ok")})
	manager.AddChecker(&stubChecker{name: "state-dir", result: Healthy("ok")})

	names := manager.CheckNames()
	if len(names) != 2 || names[0] != "backend-api" || names[1] != "state-dir" {
		t.Errorf("CheckNames() = %v", names)
	}
}
