package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ignatzorin/fits-backend/internal/logger"
)

// SeedSource отдаёт вшитые стартовые данные коллекции из файлов
// <dir>/seed.<key>.json. Отсутствующий seed-файл — пустая коллекция.
type SeedSource struct {
	dir string
}

// NewSeedSource создаёт источник seed-данных.
func NewSeedSource(dir string) *SeedSource {
	return &SeedSource{dir: dir}
}

// Read десериализует seed-данные коллекции key в out.
func (s *SeedSource) Read(key string, out any) error {
	path := filepath.Join(s.dir, fmt.Sprintf("seed.%s.json", key))

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.WithComponent("store").WithField("key", key).
				Warnf("seed-файл недоступен: %v", err)
		}
		return json.Unmarshal([]byte("[]"), out)
	}

	if err := json.Unmarshal(data, out); err != nil {
		logger.WithComponent("store").WithField("key", key).
			Warnf("seed-файл повреждён: %v", err)
		return json.Unmarshal([]byte("[]"), out)
	}
	return nil
}
