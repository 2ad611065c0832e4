package middleware

import (
	"todolist/pkg/translator"

	"github.com/gin-gonic/gin"
)

// LanguageMiddleware stores the raw Accept-Language header; go-i18n parses
// it when messages are localized.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set("lang", lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
