package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/fits-backend/internal/goroutine"
	"github.com/ignatzorin/fits-backend/internal/http/handlers/common"
	"github.com/ignatzorin/fits-backend/internal/logger"
	"github.com/ignatzorin/fits-backend/internal/models"
	"github.com/ignatzorin/fits-backend/internal/repository"
	"github.com/ignatzorin/fits-backend/internal/service"
	"github.com/ignatzorin/fits-backend/internal/storage"
)

// Разрешённые расширения приложенных к заявке файлов.
var allowedAttachmentExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".csv":  true,
	".xlsx": true,
	".xls":  true,
	".ods":  true,
}

var (
	errBadBudget     = errors.New("бюджет должен быть числом")
	errBadAttachment = errors.New("файл не прошёл проверку типа")
)

// InquiryHandler обслуживает публичную форму заявки и админский CRUD.
type InquiryHandler struct {
	repo    *repository.InquiryRepository
	uploads *storage.UploadStorage
	mail    *service.MailService
}

// NewInquiryHandler создаёт хэндлер.
func NewInquiryHandler(repo *repository.InquiryRepository, uploads *storage.UploadStorage, mail *service.MailService) *InquiryHandler {
	return &InquiryHandler{repo: repo, uploads: uploads, mail: mail}
}

type inquiryRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Company           *string  `json:"company"`
	Phone             *string  `json:"phone"`
	Services          []string `json:"services"`
	Description       string   `json:"description"`
	HasExistingSystem bool     `json:"hasExistingSystem"`
	BudgetLow         *float64 `json:"budgetLow"`
	BudgetHigh        *float64 `json:"budgetHigh"`
	DesiredDate       *string  `json:"desiredDate"`
	TemplateID        *string  `json:"templateId"`
}

// Submit обрабатывает POST /api/inquire: JSON либо multipart с вложением.
func (h *InquiryHandler) Submit(c *gin.Context) {
	var in models.Inquiry

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		parsed, err := h.parseMultipart(c)
		if err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
		in = *parsed
	} else {
		var req inquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondBadRequest(c, "некорректное тело запроса")
			return
		}
		in = req.toModel()
	}

	created, err := h.repo.Create(c.Request.Context(), &in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	// Уведомление best-effort: сбой почты не влияет на ответ клиенту.
	inquiry := *created
	goroutine.SafeGo(func() {
		if err := h.mail.NotifyNewInquiry(&inquiry); err != nil {
			logger.WithComponent("mail").Errorf("уведомление о заявке %s не отправлено: %v", inquiry.ID, err)
		}
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "заявка принята",
		"inquiryId": created.ID,
	})
}

// List обрабатывает GET /api/admin/inquiries с опциональным поиском.
func (h *InquiryHandler) List(c *gin.Context) {
	term := c.Query("q")
	status := c.Query("status")

	var (
		inquiries []models.Inquiry
		err       error
	)
	if term != "" || status != "" {
		inquiries, err = h.repo.Search(c.Request.Context(), term, status)
	} else {
		inquiries, err = h.repo.GetAll(c.Request.Context())
	}
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, inquiries)
}

// Create обрабатывает POST /api/admin/inquiries.
func (h *InquiryHandler) Create(c *gin.Context) {
	var req inquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	in := req.toModel()
	created, err := h.repo.Create(c.Request.Context(), &in)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Get обрабатывает GET /api/admin/inquiries/:id.
func (h *InquiryHandler) Get(c *gin.Context) {
	inquiry, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, inquiry)
}

// Update обрабатывает PATCH /api/admin/inquiries/:id.
func (h *InquiryHandler) Update(c *gin.Context) {
	var patch models.InquiryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		common.RespondBadRequest(c, "некорректное тело запроса")
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UpdateStatus обрабатывает PATCH /api/admin/inquiries/:id/status —
// быстрый перевод заявки в checked/dropped.
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "статус обязателен")
		return
	}

	patch := models.InquiryPatch{Status: &req.Status}
	updated, err := h.repo.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete обрабатывает DELETE /api/admin/inquiries/:id.
// Вложение удаляется вместе с заявкой; сбой удаления файла логируется
// и не отменяет удаление записи.
func (h *InquiryHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	inquiry, err := h.repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	if err := h.repo.Delete(ctx, inquiry.ID); err != nil {
		common.RespondAppError(c, err)
		return
	}

	if inquiry.FilePath != nil && *inquiry.FilePath != "" {
		if err := h.uploads.Delete(ctx, *inquiry.FilePath); err != nil {
			logger.WithComponent("storage").Warnf("файл заявки %s не удалён: %v", inquiry.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "заявка удалена"})
}

func (r *inquiryRequest) toModel() models.Inquiry {
	return models.Inquiry{
		Name:              r.Name,
		Email:             r.Email,
		Company:           r.Company,
		Phone:             r.Phone,
		Services:          r.Services,
		Description:       r.Description,
		HasExistingSystem: r.HasExistingSystem,
		BudgetLow:         r.BudgetLow,
		BudgetHigh:        r.BudgetHigh,
		DesiredDate:       r.DesiredDate,
		TemplateID:        r.TemplateID,
	}
}

// parseMultipart собирает заявку из формы и сохраняет вложение, если оно есть.
func (h *InquiryHandler) parseMultipart(c *gin.Context) (*models.Inquiry, error) {
	in := models.Inquiry{
		Name:              c.PostForm("name"),
		Email:             c.PostForm("email"),
		Services:          c.PostFormArray("services"),
		Description:       c.PostForm("description"),
		HasExistingSystem: c.PostForm("hasExistingSystem") == "on",
	}

	if v := c.PostForm("company"); v != "" {
		in.Company = &v
	}
	if v := c.PostForm("phone"); v != "" {
		in.Phone = &v
	}
	if v := c.PostForm("desiredDate"); v != "" {
		in.DesiredDate = &v
	}
	if v := c.PostForm("templateId"); v != "" {
		in.TemplateID = &v
	}
	if v := c.PostForm("budgetLow"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errBadBudget
		}
		in.BudgetLow = &parsed
	}
	if v := c.PostForm("budgetHigh"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errBadBudget
		}
		in.BudgetHigh = &parsed
	}

	file, err := c.FormFile("file")
	if err != nil {
		// Вложение опционально.
		return &in, nil
	}

	relPath, err := h.saveAttachment(c, file)
	if err != nil {
		return nil, err
	}
	in.FilePath = &relPath

	return &in, nil
}

// saveAttachment проверяет расширение и сигнатуру файла, затем кладёт его
// в хранилище загрузок и возвращает относительный путь вида uploads/<имя>.
func (h *InquiryHandler) saveAttachment(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedAttachmentExtensions[ext] {
		return "", errBadAttachment
	}

	src, err := file.Open()
	if err != nil {
		return "", errBadAttachment
	}
	defer src.Close()

	head := make([]byte, 261)
	n, err := io.ReadFull(src, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", errBadAttachment
	}
	head = head[:n]

	// Текстовые форматы (csv, ods) сигнатурой не определяются; для остальных
	// расширение должно совпадать с тем, что говорят магические байты.
	if kind, _ := filetype.Match(head); kind != filetype.Unknown {
		if !extensionMatchesKind(ext, kind.Extension) {
			return "", errBadAttachment
		}
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", errBadAttachment
	}

	relPath, _, err := h.uploads.Save(c.Request.Context(), file.Filename, src)
	return relPath, err
}

func extensionMatchesKind(ext, detected string) bool {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "jpeg" {
		ext = "jpg"
	}
	// xlsx и ods — zip-контейнеры, сигнатура различает только сам zip.
	if detected == "zip" {
		return ext == "xlsx" || ext == "ods"
	}
	return ext == detected
}
