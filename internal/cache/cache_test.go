package cache

import (
	"bytes"
	"path/filepath"
	"testing"

	"strata/internal/logging"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	logger := logging.NewLogger(logging.Config{Format: logging.HumanFormat, Level: logging.ErrorLevel})
	c, err := Open(filepath.Join(t.TempDir(), ".strata", "cache.db"), logger)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPutGetRoundtrip(t *testing.T) {
	c := openTestCache(t)

	payload := []byte(`[{"kind":"cohort","item":"2019","count":42}]`)
	if err := c.Put("abc123", "main.go", payload); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := c.Get("abc123", "main.go")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatalf("Expected cache hit")
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Payload mismatch: got %s", got)
	}
}

func TestGetMiss(t *testing.T) {
	c := openTestCache(t)

	_, ok, err := c.Get("missing", "main.go")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Errorf("Expected cache miss")
	}
}

func TestPutOverwrites(t *testing.T) {
	c := openTestCache(t)

	if err := c.Put("abc", "f.go", []byte("old")); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("abc", "f.go", []byte("new")); err != nil {
		t.Fatal(err)
	}

	got, ok, _ := c.Get("abc", "f.go")
	if !ok || string(got) != "new" {
		t.Errorf("Expected overwritten value, got %q (hit=%v)", got, ok)
	}
}

func TestStatusAndClear(t *testing.T) {
	c := openTestCache(t)

	_ = c.Put("a", "1.go", []byte("x"))
	_ = c.Put("a", "2.go", []byte("y"))

	status, err := c.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Entries != 2 {
		t.Errorf("Expected 2 entries, got %d", status.Entries)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	status, err = c.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if status.Entries != 0 {
		t.Errorf("Expected 0 entries after clear, got %d", status.Entries)
	}
}
