// internal/handlers/upload.go
package handlers

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
	"github.com/javajoker/storefront/internal/services"
	"github.com/javajoker/storefront/internal/utils"
)

// Multipart field names accepted for uploaded files.
var uploadFields = []string{"file", "files", "files[]"}

type UploadHandler struct {
	storageService *services.StorageService
	maxFileMB      int
}

func NewUploadHandler(storageService *services.StorageService, maxFileMB int) *UploadHandler {
	return &UploadHandler{storageService: storageService, maxFileMB: maxFileMB}
}

// POST /api/upload[?filename=]
func (h *UploadHandler) Upload(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		for _, field := range uploadFields {
			headers = append(headers, form.File[field]...)
		}
	}

	urls, err := h.storageService.UploadFiles(c.Request.Context(), headers, c.Query("filename"))
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) {
			utils.PayloadTooLargeResponse(c, i18n.T(lang, i18n.KeyUploadTooLarge, h.maxFileMB))
			return
		}
		respondError(c, err, "upload")
		return
	}

	utils.SuccessResponse(c, urls)
}
