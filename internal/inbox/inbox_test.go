package inbox

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("Rechnung"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.md", ".hidden.txt", "scan.bin", "notes.CSV"} {
		touch(t, filepath.Join(dir, name))
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	touch(t, filepath.Join(dir, "sub.txt", "nested.txt"))

	got, err := NewScanner(dir).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.txt"), filepath.Join(dir, "notes.CSV")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

func TestScanner_Errors(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() context.Context
		dir  string
	}{
		{name: "missing folder", ctx: context.Background, dir: filepath.Join(t.TempDir(), "missing")},
		{name: "cancelled", ctx: func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}, dir: t.TempDir()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewScanner(tt.dir).Scan(tt.ctx()); err == nil {
				t.Error("Scan() error = nil, want error")
			}
		})
	}
}

func TestWatcher_BatchesChanges(t *testing.T) {
	dir := t.TempDir()
	batches := make(chan []string, 4)
	removed := make(chan string, 4)
	w := NewWatcher(dir, func(paths []string) { batches <- paths },
		WithDebounce(50*time.Millisecond),
		WithOnRemove(func(p string) { removed <- p }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	// Give fsnotify time to register the directory
	time.Sleep(50 * time.Millisecond)

	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.md")
	touch(t, a)
	touch(t, b)
	touch(t, filepath.Join(dir, "ignored.bin"))

	select {
	case got := <-batches:
		if !reflect.DeepEqual(got, []string{a, b}) {
			t.Errorf("batch = %v, want [%s %s]", got, a, b)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no batch reported")
	}

	if err := os.Remove(a); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	select {
	case got := <-removed:
		if got != a {
			t.Errorf("removed = %q, want %q", got, a)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("removal not reported")
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, func([]string) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)

	if err := w.Run(context.Background()); err != ErrAlreadyRunning {
		t.Errorf("second Run() error = %v, want ErrAlreadyRunning", err)
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestWatcher_MissingFolder(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing"), func([]string) {})
	if err := w.Run(context.Background()); err == nil {
		t.Error("Run() on missing folder error = nil, want error")
	}
}
