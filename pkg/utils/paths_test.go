package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeJournal(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("config: {}\n"), 0o644); err != nil {
		t.Fatalf("Failed to write journal: %v", err)
	}
	return path
}

func TestGetDefaultJournalPath_Env(t *testing.T) {
	t.Setenv(JournalEnv, "/tmp/elsewhere.yaml")
	if got := GetDefaultJournalPath(); got != "/tmp/elsewhere.yaml" {
		t.Errorf("Expected the environment override, got %s", got)
	}

	t.Setenv(JournalEnv, "")
	if got := GetDefaultJournalPath(); filepath.Base(got) != "journal.yaml" {
		t.Errorf("Expected a journal.yaml default, got %s", got)
	}
}

func TestResolveJournalPath(t *testing.T) {
	dir := t.TempDir()
	first := writeJournal(t, dir, "first.yaml")
	second := writeJournal(t, dir, "second.yaml")

	got, err := ResolveJournalPath("", first, second)
	if err != nil {
		t.Fatalf("ResolveJournalPath failed: %v", err)
	}
	if got != first {
		t.Errorf("Expected the first non-empty candidate %s, got %s", first, got)
	}

	t.Setenv(JournalEnv, second)
	got, err = ResolveJournalPath("", "")
	if err != nil {
		t.Fatalf("ResolveJournalPath failed: %v", err)
	}
	if got != second {
		t.Errorf("Expected the environment path %s, got %s", second, got)
	}
}

func TestResolveJournalPath_Home(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	want := writeJournal(t, home, "log.yaml")

	got, err := ResolveJournalPath("~/log.yaml")
	if err != nil {
		t.Fatalf("ResolveJournalPath failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestResolveJournalPath_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolveJournalPath(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrJournalNotFound) {
		t.Errorf("Expected ErrJournalNotFound, got: %v", err)
	}

	if _, err := ResolveJournalPath(dir); err == nil {
		t.Errorf("Expected an error for a directory")
	}
}
