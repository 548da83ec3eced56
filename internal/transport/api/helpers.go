package api

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/escrow-ledger/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// getAccountFromContext берет из контекста gin счет текущего участника. Счет устанавливается в
// middlewares.AuthRequired. Если значения в контексте нет - вернется пустая строка.
func getAccountFromContext(c *gin.Context) string {
	account, exist := c.Get(middlewares.CurrentAccountKey)
	if !exist {
		return ""
	}
	str, ok := account.(string)
	if !ok {
		return ""
	}
	return str
}

// abortWithServiceError прерывает запрос ошибкой сервиса. Статус выбирает middlewares.Errors.
func abortWithServiceError(c *gin.Context, err error) {
	c.Abort()
	errType := gin.ErrorTypePublic
	if middlewares.StatusFromError(err) == http.StatusInternalServerError {
		errType = gin.ErrorTypePrivate
	}
	_ = c.Error(err).SetType(errType)
}

// abortWithBindError 422 для ошибок валидации, 400 для прочих ошибок разбора тела.
func abortWithBindError(c *gin.Context, bindErr error) {
	var valErrs validator.ValidationErrors
	if errors.As(bindErr, &valErrs) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": valErrs.Error()})
		return
	}
	_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
}

// bindOptionalJSON разбирает тело, только если оно передано.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj) //nolint:wrapcheck
}
