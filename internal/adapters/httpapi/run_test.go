package httpapi

import (
	"context"
	"testing"
	"time"

	"studytrack/internal/adapters/postgres"
)

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, postgres.Unconfigured{}, "127.0.0.1:0", "")
	}()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_ListenError(t *testing.T) {
	err := Run(context.Background(), postgres.Unconfigured{}, "127.0.0.1:-1", "")
	if err == nil {
		t.Error("expected an error for an invalid listen address")
	}
}
