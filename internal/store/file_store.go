package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore хранит каждую коллекцию в файле <dir>/<key>.json.
// Используется в development.
type FileStore struct {
	dir string
}

// NewFileStore создаёт файловое хранилище и каталог под него.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: не удалось создать каталог %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Read читает коллекцию из файла. Отсутствующий файл означает пустую
// коллекцию — на это завязано поведение первого запуска.
func (s *FileStore) Read(ctx context.Context, key string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return json.Unmarshal([]byte("[]"), out)
		}
		return fmt.Errorf("store: не удалось прочитать коллекцию %s: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("store: повреждённая коллекция %s: %w", key, err)
	}
	return nil
}

// Write сохраняет коллекцию через временный файл и атомарный rename:
// читатель никогда не видит наполовину записанный файл, а при падении
// процесса предыдущая версия остаётся нетронутой.
func (s *FileStore) Write(ctx context.Context, key string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: не удалось сериализовать коллекцию %s: %w", key, err)
	}

	target := s.path(key)
	tmp := target + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("store: не удалось записать временный файл %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: не удалось переименовать %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
