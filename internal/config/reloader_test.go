package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestReloaderReloadSwapsConfigAndNotifiesListeners(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	write := func(maxWorkers int) {
		content := `{"supervisor": {"max_workers": ` + strconv.Itoa(maxWorkers) + `}}`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write(3)
	initial, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r := NewReloader(path, initial)
	notified := 0
	r.OnReload(func(cfg *Config) { notified++ })

	write(7)
	if err := r.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if r.Current().Supervisor.MaxWorkers != 7 {
		t.Fatalf("expected reloaded max workers 7, got %d", r.Current().Supervisor.MaxWorkers)
	}
	if notified != 1 {
		t.Fatalf("expected 1 listener notification, got %d", notified)
	}
}
