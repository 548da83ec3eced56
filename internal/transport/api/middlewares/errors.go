package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fsdevblog/escrow-ledger/internal/domain"
	"github.com/gin-gonic/gin"
)

func statusErrorText(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusPaymentRequired:
		return "payment required"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not found"
	case http.StatusUnprocessableEntity:
		return "unprocessable entity"
	case http.StatusConflict:
		return "conflict"
	default:
		return "internal server error"
	}
}

// StatusFromError http статус для ошибки сервисного слоя.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrKycRequired), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Errors отрисовывает первую ошибку запроса. Если обработчик не выставил статус, он выводится из ошибки
// через StatusFromError. Текст публичных ошибок уходит клиенту, для остальных - общий текст статуса.
func Errors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// обрабатываем только первую ошибку
		firstErr := c.Errors[0]
		status := c.Writer.Status()
		if !c.Writer.Written() {
			status = StatusFromError(firstErr.Err)
		}

		var msg string
		if firstErr.IsType(gin.ErrorTypePublic) && status != http.StatusInternalServerError {
			msg = firstErr.Error()
		} else {
			msg = statusErrorText(status)
		}

		if c.Writer.Written() && c.Writer.Size() > 0 {
			// тело уже отдано обработчиком
			c.Abort()
			return
		}

		accept := c.GetHeader("Accept")
		contentType := c.GetHeader("Content-Type")
		switch {
		case strings.Contains(accept, "application/json"),
			strings.Contains(contentType, "application/json"):
			c.JSON(status, gin.H{"error": msg})
		default:
			c.String(status, msg)
		}
		c.Abort()
	}
}
