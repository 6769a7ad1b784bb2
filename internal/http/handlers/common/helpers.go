package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/fits-backend/internal/logger"
	"github.com/ignatzorin/fits-backend/internal/pkg/apperror"
)

// RespondAppError переводит ошибку приложения в структурированный JSON-ответ.
// Ошибки валидации дополняются списком полей, внутренние ошибки маскируются.
func RespondAppError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			logRequestError(c, err)
			c.JSON(appErr.HTTPStatus, gin.H{"error": "внутренняя ошибка сервера"})
			return
		}

		body := gin.H{"error": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		c.JSON(appErr.HTTPStatus, body)
		return
	}

	logRequestError(c, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка сервера"})
}

// RespondBadRequest отправляет 400 с сообщением.
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "некорректный запрос"
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// RespondNotFound отправляет 404 с сообщением.
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "ресурс не найден"
	}
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

// ParseBoolQuery читает опциональный булев query-параметр.
func ParseBoolQuery(c *gin.Context, key string) *bool {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &parsed
}

func logRequestError(c *gin.Context, err error) {
	logger.WithComponent("http").WithFields(logrus.Fields{
		"error":  err.Error(),
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}).Error("ошибка обработки запроса")
}
