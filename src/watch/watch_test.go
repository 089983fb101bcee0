package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherFiresAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("x\ty1\n0\t1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w, err := New(path, 50*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("x\ty1\n0\t1\n1\t2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not fire after write")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("x\n0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var count atomic.Int32
	w, err := New(path, 150*time.Millisecond, func() { count.Add(1) }, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	// Several quick writes must settle into a single callback.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("x\n0\n1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Fatalf("expected 1 debounced callback, got %d", got)
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("x\n0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var count atomic.Int32
	w, err := New(path, 50*time.Millisecond, func() { count.Add(1) }, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x\n0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := count.Load(); got != 0 {
		t.Fatalf("sibling write should not fire, got %d callbacks", got)
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(path, []byte("x\n0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, 0, func() {}, nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if w.Path() != path {
		t.Fatalf("Path() = %q, want %q", w.Path(), path)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
