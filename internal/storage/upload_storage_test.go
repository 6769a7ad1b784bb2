package storage

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

func newTestStorage(t *testing.T, maxMB int64) *UploadStorage {
	t.Helper()
	s, err := NewUploadStorage(t.TempDir(), maxMB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestUploadStorage_SaveGeneratesName(t *testing.T) {
	s := newTestStorage(t, 1)

	relPath, written, err := s.Save(context.Background(), "бриф.pdf", bytes.NewReader([]byte("%PDF-1.4 data")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written == 0 {
		t.Error("expected non-zero size")
	}
	if !strings.HasPrefix(relPath, "uploads/inquiry-") || !strings.HasSuffix(relPath, ".pdf") {
		t.Errorf("unexpected relative path %s", relPath)
	}

	abs, err := s.Resolve(relPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Errorf("expected saved file to exist: %v", err)
	}
}

func TestUploadStorage_SaveRejectsOversize(t *testing.T) {
	s := newTestStorage(t, 1)

	big := bytes.Repeat([]byte("a"), 1024*1024+1)
	if _, _, err := s.Save(context.Background(), "big.csv", bytes.NewReader(big)); err == nil {
		t.Fatal("expected oversize upload rejected")
	}
}

func TestUploadStorage_ResolveRejectsTraversal(t *testing.T) {
	s := newTestStorage(t, 1)

	for _, path := range []string{
		"../../etc/passwd",
		"uploads/../../etc/passwd",
		"..\\secret",
		"uploads\\..\\..\\etc\\passwd",
		"safe\\..\\..\\outside",
	} {
		if _, err := s.Resolve(path); err == nil {
			t.Errorf("expected traversal path %q rejected", path)
		}
	}
}

func TestUploadStorage_ResolveForbiddenError(t *testing.T) {
	s := newTestStorage(t, 1)

	_, err := s.Resolve("../outside.txt")
	if err != apperror.ErrForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestUploadStorage_ContentType(t *testing.T) {
	s := newTestStorage(t, 1)

	cases := map[string]string{
		"file.pdf":  "application/pdf",
		"file.PNG":  "image/png",
		"file.jpeg": "image/jpeg",
		"file.csv":  "text/csv",
		"file.xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"file.bin":  "application/octet-stream",
	}
	for path, expected := range cases {
		if got := s.ContentType(path); got != expected {
			t.Errorf("content type for %s: expected %s, got %s", path, expected, got)
		}
	}
}

func TestUploadStorage_Delete(t *testing.T) {
	s := newTestStorage(t, 1)
	ctx := context.Background()

	relPath, _, err := s.Save(ctx, "doc.pdf", bytes.NewReader([]byte("data")))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Delete(ctx, relPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	abs, _ := s.Resolve(relPath)
	if _, err := os.Stat(abs); !os.IsNotExist(err) {
		t.Error("expected file removed")
	}

	// Повторное удаление не считается ошибкой.
	if err := s.Delete(ctx, relPath); err != nil {
		t.Errorf("unexpected error on repeated delete: %v", err)
	}
}
