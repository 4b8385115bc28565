package db

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	if err := db.Init(); err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subdir", "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Should create parent directories
	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("failed to get default path: %v", err)
	}

	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %q", path)
	}

	if !strings.HasSuffix(path, filepath.Join(".launchboard", "launchboard.db")) {
		t.Errorf("expected path to end with .launchboard/launchboard.db, got %q", path)
	}
}

func TestInit_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Init(); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
}

func TestGet_Absent(t *testing.T) {
	db := setupTestDB(t)

	value, ok, err := db.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Errorf("expected absent key, got %q", value)
	}
}

func TestPutGet(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Put(ctx, "k", `[{"id":"a"}]`); err != nil {
		t.Fatalf("put: %v", err)
	}

	value, ok, err := db.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != `[{"id":"a"}]` {
		t.Errorf("got (%q, %v)", value, ok)
	}
}

func TestPut_Overwrites(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Put(ctx, "k", "one"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.Put(ctx, "k", "two"); err != nil {
		t.Fatalf("put: %v", err)
	}

	value, _, err := db.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "two" {
		t.Errorf("value = %q, want two", value)
	}

	keys, err := db.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("expected a single row, got %v", keys)
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.Put(ctx, "k", "v"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := db.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := db.Get(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}

	// Deleting again is fine
	if err := db.Delete(ctx, "k"); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := first.Put(ctx, "k", "durable"); err != nil {
		t.Fatalf("put: %v", err)
	}
	_ = first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = second.Close() }()
	if err := second.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	value, ok, err := second.Get(ctx, "k")
	if err != nil || !ok || value != "durable" {
		t.Errorf("got (%q, %v, %v)", value, ok, err)
	}
}
