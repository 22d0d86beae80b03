// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAdminAccessDenied      = "admin.access_denied"

	// Users
	KeyUserExists = "user.exists"

	// Products
	KeyProductNotFound        = "product.not_found"
	KeyProductMissingFields   = "product.missing_fields"
	KeyProductInvalidDiscount = "product.invalid_discount"
	KeyProductInvalid         = "product.invalid"

	// Categories
	KeyCategoryNotFound     = "category.not_found"
	KeyCategoryExists       = "category.exists"
	KeyCategoryInUse        = "category.in_use"
	KeyCategoryNameRequired = "category.name_required"

	// Uploads
	KeyUploadNoFiles  = "upload.no_files"
	KeyUploadTooLarge = "upload.too_large"
	KeyUploadFailed   = "upload.failed"

	// Common
	KeyIDRequired        = "request.id_required"
	KeyValidationInvalid = "validation.invalid"
	KeyRateLimitExceeded = "rate_limit.exceeded"
	KeyInternalError     = "server.error"
)
