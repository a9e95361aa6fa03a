package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/event"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SECONDS", "30")
	t.Setenv("TEST_EMPTY", "")

	if got := GetEnvAsInt("TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvAsInt = %d, want 42", got)
	}
	if got := GetEnvAsInt64("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvAsInt64 with invalid value = %d, want default 7", got)
	}
	if got := GetEnvAsUint64("TEST_MISSING", 9); got != 9 {
		t.Errorf("GetEnvAsUint64 unset = %d, want 9", got)
	}
	if got := GetEnvAsBool("TEST_BOOL", false); !got {
		t.Error("GetEnvAsBool = false, want true")
	}
	if got := GetEnvAsDuration("TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("GetEnvAsDuration = %v, want 90s", got)
	}
	if got := GetEnvAsDuration("TEST_SECONDS", time.Second); got != 30*time.Second {
		t.Errorf("GetEnvAsDuration bare seconds = %v, want 30s", got)
	}
	if got := GetEnvAsString("TEST_EMPTY", "fallback"); got != "fallback" {
		t.Errorf("GetEnvAsString empty = %q, want fallback", got)
	}
}

func TestClientLabel(t *testing.T) {
	tests := []struct {
		userAgent string
		expected  string
	}{
		{"", "Unknown Browser on Unknown OS (Unknown)"},
		{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
			"Firefox on Windows (Desktop)",
		},
	}

	for _, tt := range tests {
		if got := ClientLabel(tt.userAgent); got != tt.expected {
			t.Errorf("ClientLabel(%q) = %q, want %q", tt.userAgent, got, tt.expected)
		}
	}
}

func TestPoolMonitor(t *testing.T) {
	before := GetMongoMetrics()
	monitor := NewPoolMonitor()

	monitor.Event(&event.PoolEvent{Type: event.ConnectionCreated})
	monitor.Event(&event.PoolEvent{Type: event.GetSucceeded})
	monitor.Event(&event.PoolEvent{Type: event.GetSucceeded})
	monitor.Event(&event.PoolEvent{Type: event.ConnectionReturned})
	monitor.Event(&event.PoolEvent{Type: event.ConnectionClosed})

	after := GetMongoMetrics()
	if got := after.CreatedConnections - before.CreatedConnections; got != 1 {
		t.Errorf("created delta = %d, want 1", got)
	}
	if got := after.ActiveConnections - before.ActiveConnections; got != 1 {
		t.Errorf("active delta = %d, want 1", got)
	}
	if got := after.ClosedConnections - before.ClosedConnections; got != 1 {
		t.Errorf("closed delta = %d, want 1", got)
	}
	if after.LastCheckTime.IsZero() {
		t.Error("expected LastCheckTime to be set")
	}
}
