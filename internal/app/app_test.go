package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveToolUsesFileAsIs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := resolveTool(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}
}

func TestResolveToolSearchesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, toolBinary)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := resolveTool(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}
}

func TestResolveToolMissingFromDirectory(t *testing.T) {
	if _, err := resolveTool(t.TempDir()); err == nil {
		t.Fatalf("expected an error when the binary is absent")
	}
}
