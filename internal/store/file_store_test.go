package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStore_MissingFileMeansEmptyCollection(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var docs []document
	if err := s.Read(context.Background(), KeyLeads, &docs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected empty collection, got %d items", len(docs))
	}
}

func TestFileStore_WriteReadRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := []document{{ID: "a", Name: "first"}, {ID: "b", Name: "second"}}
	if err := s.Write(context.Background(), KeyTemplates, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out []document
	if err := s.Read(context.Background(), KeyTemplates, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].ID != "a" || out[1].Name != "second" {
		t.Errorf("unexpected content after round trip: %+v", out)
	}
}

func TestFileStore_WriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Write(context.Background(), KeyPortfolio, []document{{ID: "p"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind after write", e.Name())
		}
	}
}

func TestFileStore_WriteIsPrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Write(context.Background(), KeyLeads, []document{{ID: "x", Name: "y"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, KeyLeads+".json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Errorf("expected indented JSON, got %q", string(data))
	}
}

// Две перекрывающиеся последовательности read-modify-write: вторая запись
// затирает первую. Блокировок нет, побеждает последняя запись.
func TestFileStore_InterleavedWritesLoseFirstUpdate(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if err := s.Write(ctx, KeyLeads, []document{{ID: "base"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var first, second []document
	if err := s.Read(ctx, KeyLeads, &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Read(ctx, KeyLeads, &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first = append(first, document{ID: "from-first"})
	second = append(second, document{ID: "from-second"})

	if err := s.Write(ctx, KeyLeads, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Write(ctx, KeyLeads, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var final []document
	if err := s.Read(ctx, KeyLeads, &final); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(final) != 2 {
		t.Fatalf("expected 2 items after last write, got %d", len(final))
	}
	if final[1].ID != "from-second" {
		t.Errorf("expected last write to win, got %+v", final)
	}
}

func TestFileStore_CorruptFileReturnsError(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, KeyLeads+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var docs []document
	if err := s.Read(context.Background(), KeyLeads, &docs); err == nil {
		t.Fatal("expected error for corrupt collection, got nil")
	}
}
