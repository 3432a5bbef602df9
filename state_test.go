package vista

import "testing"

func TestLifecycle_String_Idle(t *testing.T) {
	if s := LifecycleIdle.String(); s != "idle" {
		t.Errorf("expected 'idle', got %q", s)
	}
}

func TestLifecycle_String_Running(t *testing.T) {
	if s := LifecycleRunning.String(); s != "running" {
		t.Errorf("expected 'running', got %q", s)
	}
}

func TestLifecycle_String_Stopped(t *testing.T) {
	if s := LifecycleStopped.String(); s != "stopped" {
		t.Errorf("expected 'stopped', got %q", s)
	}
}

func TestLifecycle_String_Unknown(t *testing.T) {
	if s := Lifecycle(999).String(); s != "unknown" {
		t.Errorf("expected 'unknown', got %q", s)
	}
}

func TestLifecycle_Values(t *testing.T) {
	if LifecycleIdle != 0 {
		t.Errorf("expected LifecycleIdle=0, got %d", LifecycleIdle)
	}
	if LifecycleRunning != 1 {
		t.Errorf("expected LifecycleRunning=1, got %d", LifecycleRunning)
	}
	if LifecycleStopped != 2 {
		t.Errorf("expected LifecycleStopped=2, got %d", LifecycleStopped)
	}
}
