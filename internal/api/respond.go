package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/service"
	"taskboard/pkg/apierrors"
)

// respondServiceError maps typed domain errors onto HTTP responses.
// Anything unrecognized is a 500 with the handler's fallback message.
func respondServiceError(c *gin.Context, err error, fallbackKey string) {
	lang := GetLang(c)

	switch {
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrNameRequired),
		errors.Is(err, service.ErrInvalidPriority),
		errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
	case errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgProjectNotFound, lang))
	case errors.Is(err, service.ErrTaskNotFound), errors.Is(err, service.ErrReminderNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(http.StatusNotFound, apierrors.MsgUserNotFound, lang))
	case errors.Is(err, service.ErrProjectNotPublic):
		c.JSON(http.StatusForbidden, apierrors.CreateErrorWithReason(
			http.StatusForbidden, apierrors.MsgProjectNotPublic, apierrors.CodeProjectNotPublic, lang))
	case errors.Is(err, service.ErrBadProjectRef):
		c.JSON(http.StatusUnprocessableEntity, apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgBadProjectReference, lang))
	case errors.Is(err, service.ErrBadUserRef):
		c.JSON(http.StatusUnprocessableEntity, apierrors.CreateError(http.StatusUnprocessableEntity, apierrors.MsgBadUserReference, lang))
	case errors.Is(err, service.ErrPhoneTaken):
		c.JSON(http.StatusConflict, apierrors.CreateError(http.StatusConflict, apierrors.MsgPhoneTaken, lang))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidCredentials, lang))
	default:
		zap.L().Error("unhandled service error", zap.String("fallback", fallbackKey), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang))
	}
}
