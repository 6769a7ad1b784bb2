package handlers

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/fits-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
	"github.com/ignatzorin/fits-backend/internal/storage"
)

// FileHandler отдаёт вложения заявок администратору.
type FileHandler struct {
	uploads *storage.UploadStorage
}

// NewFileHandler создаёт хэндлер.
func NewFileHandler(uploads *storage.UploadStorage) *FileHandler {
	return &FileHandler{uploads: uploads}
}

// Download обрабатывает GET /api/admin/files/*path.
// Путь за пределами каталога загрузок отклоняется.
func (h *FileHandler) Download(c *gin.Context) {
	relPath := strings.TrimPrefix(c.Param("path"), "/")

	absPath, err := h.uploads.Resolve(relPath)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		common.RespondAppError(c, apperror.New(apperror.ErrCodeNotFound, "файл не найден"))
		return
	}

	c.Header("Content-Type", h.uploads.ContentType(absPath))
	c.File(absPath)
}
