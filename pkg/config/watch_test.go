package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spyglass.yaml")
	initial := "service:\n  base_url: https://search.example.org\n"
	if err := os.WriteFile(path, []byte(initial), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	reloaded := make(chan *Config, 1)
	w := NewWatcher(path, 20*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(cfg *Config) error {
			select {
			case reloaded <- cfg:
			default:
			}
			return nil
		})
	}()

	// Give the watcher time to register before modifying the file.
	time.Sleep(100 * time.Millisecond)

	updated := "service:\n  base_url: https://changed.example.org\n"
	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		t.Fatalf("failed to update config: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Service.BaseURL != "https://changed.example.org" {
			t.Errorf("expected reloaded base URL, got %q", cfg.Service.BaseURL)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("watch returned error: %v", err)
	}
}

func TestWatcherSkipsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spyglass.yaml")
	if err := os.WriteFile(path, []byte("service:\n  base_url: https://search.example.org\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	calls := make(chan struct{}, 4)
	w := NewWatcher(path, 20*time.Millisecond)
	go func() {
		_ = w.Watch(ctx, func(cfg *Config) error {
			calls <- struct{}{}
			return nil
		})
	}()

	time.Sleep(100 * time.Millisecond)

	// Unparseable contents must not reach the handler.
	if err := os.WriteFile(path, []byte("service: [broken"), 0o600); err != nil {
		t.Fatalf("failed to update config: %v", err)
	}

	select {
	case <-calls:
		t.Error("expected invalid config to be skipped")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherDoubleStart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spyglass.yaml")
	if err := os.WriteFile(path, []byte("service:\n  base_url: https://search.example.org\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := NewWatcher(path, 20*time.Millisecond)
	started := make(chan struct{})
	go func() {
		close(started)
		_ = w.Watch(ctx, func(*Config) error { return nil })
	}()

	<-started
	time.Sleep(50 * time.Millisecond)

	if err := w.Watch(ctx, func(*Config) error { return nil }); err == nil {
		t.Error("expected error for second concurrent watch")
	}
}
