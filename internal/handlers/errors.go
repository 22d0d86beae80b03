// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// respondError maps a service error onto the envelope. resource names the
// i18n prefix used for not-found messages.
func respondError(c *gin.Context, err error, resource string) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, resource)
	case errors.Is(err, services.ErrMissingProductFields):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductMissingFields), nil)
	case errors.Is(err, services.ErrInvalidDiscount):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyProductInvalidDiscount), nil)
	case errors.Is(err, services.ErrCategoryNameRequired):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCategoryNameRequired), nil)
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrCategoryExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryExists))
	case errors.Is(err, services.ErrCategoryInUse):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyCategoryInUse))
	case errors.Is(err, services.ErrUserExists):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyUserExists))
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrNoFiles):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUploadNoFiles), nil)
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

// requireID reads the ?id= query parameter, answering 400 when absent.
func requireID(c *gin.Context) (string, bool) {
	id := c.Query("id")
	if id == "" {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyIDRequired), nil)
		return "", false
	}
	return id, true
}
