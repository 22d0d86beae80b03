// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront/internal/i18n"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// resolveLanguage picks the first preference from an Accept-Language header
// such as "id-ID,id;q=0.9,en;q=0.8" that has a catalog.
func resolveLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		subtags := strings.FieldsFunc(strings.Split(part, ";")[0], func(r rune) bool {
			return r == '-' || r == '_' || r == ' '
		})
		if len(subtags) == 0 {
			continue
		}

		base := strings.ToLower(subtags[0])
		// "in" is the legacy code for Indonesian still sent by older Android builds
		if base == "in" {
			base = "id"
		}
		if i18n.Supported(base) {
			return base
		}
	}
	return i18n.DefaultLang
}
