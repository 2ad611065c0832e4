package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todolist/pkg/apierrors"
)

const (
	callerContextKey = "caller"
	bearerPrefix     = "Bearer "
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthMiddleware resolves the caller identity from a bearer token. Handlers
// read it with GetCaller and hand it to the service explicitly.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) || strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)) == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgMissingToken, lang),
			)
			return
		}

		caller, err := verifier.Verify(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)))
		if err != nil {
			zap.L().Debug("rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgInvalidToken, lang),
			)
			return
		}

		c.Set(callerContextKey, caller)
		c.Next()
	}
}

func GetCaller(c *gin.Context) (string, bool) {
	if caller, exists := c.Get(callerContextKey); exists {
		if s, ok := caller.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}
