package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

// Таблица content-type по расширению приложенных файлов.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xls":  "application/vnd.ms-excel",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
}

// UploadStorage отвечает за файлы, приложенные к заявкам.
type UploadStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewUploadStorage создаёт файловое хранилище загрузок.
func NewUploadStorage(rootPath string, maxUploadMB int64) (*UploadStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось разрешить каталог %s: %w", rootPath, err)
	}

	return &UploadStorage{
		rootPath:       abs,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save сохраняет файл под сгенерированным именем и возвращает относительный путь.
func (s *UploadStorage) Save(ctx context.Context, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("inquiry-%d%s", time.Now().UnixMilli(), filepath.Ext(safeName))

	targetPath := filepath.Join(s.rootPath, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return filepath.Join("uploads", fileName), written, nil
}

// Resolve превращает относительный путь в абсолютный внутри каталога загрузок.
// Путь, выходящий за каталог, отклоняется. Обратный слэш в относительном
// пути отклоняется всегда: на Linux это обычный байт имени файла, и
// Windows-стиль обхода вроде "..\secret" прошёл бы проверку вложенности.
func (s *UploadStorage) Resolve(relativePath string) (string, error) {
	relativePath = strings.TrimPrefix(relativePath, "uploads/")
	if strings.ContainsRune(relativePath, '\\') {
		return "", apperror.ErrForbidden
	}

	full := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))
	normalized := filepath.Clean(full)

	if normalized != s.rootPath && !strings.HasPrefix(normalized, s.rootPath+string(filepath.Separator)) {
		return "", apperror.ErrForbidden
	}
	return normalized, nil
}

// ContentType возвращает content-type по расширению файла.
func (s *UploadStorage) ContentType(path string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Delete удаляет файл из хранилища.
func (s *UploadStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.Resolve(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "attachment"
	}
	return name
}
