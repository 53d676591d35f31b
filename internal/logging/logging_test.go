package logging

import "testing"

func TestNew(t *testing.T) {
	logger, err := New("info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger == nil {
		t.Fatalf("expected logger instance")
	}
	_ = logger.Sync()
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
