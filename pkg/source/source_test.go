package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExecSource_MissingBinary(t *testing.T) {
	src := NewExec(time.Second, nil)

	got := src.Output(context.Background(), "definitely-not-a-real-binary-4f9a")
	if got != "" {
		t.Errorf("Output() for a missing binary = %q, want empty", got)
	}
}

func TestExecSource_CancelledContext(t *testing.T) {
	src := NewExec(time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := src.Output(ctx, "definitely-not-a-real-binary-4f9a")
	if got != "" {
		t.Errorf("Output() with a cancelled context = %q, want empty", got)
	}
}

func TestNewExec_Defaults(t *testing.T) {
	src := NewExec(0, nil)
	if src.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", src.timeout, DefaultTimeout)
	}
	if src.logger == nil {
		t.Error("logger must never be nil")
	}
}

func TestExecSource_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fact")
	if err := os.WriteFile(path, []byte("  hello world \n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewExec(time.Second, nil)
	if got, want := src.ReadFile(path), "hello world"; got != want {
		t.Errorf("ReadFile() = %q, want %q", got, want)
	}

	if got := src.ReadFile(filepath.Join(t.TempDir(), "absent")); got != "" {
		t.Errorf("ReadFile() for a missing file = %q, want empty", got)
	}
}
