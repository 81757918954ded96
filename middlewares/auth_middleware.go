// middlewares/auth_middleware.go
package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/boredom1234/yummenu-backend/config"
	"github.com/boredom1234/yummenu-backend/models"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

var verifier *oidc.IDTokenVerifier

// InitJWTVerifier performs OIDC discovery against the token issuer and builds
// the verifier used by JWTCheck. Must be called once at startup.
func InitJWTVerifier(ctx context.Context) {
	issuer := os.Getenv("AUTH0_ISSUER_BASE_URL")
	audience := os.Getenv("AUTH0_AUDIENCE")
	if issuer == "" || audience == "" {
		log.Fatalf("AUTH0_ISSUER_BASE_URL and AUTH0_AUDIENCE must be set")
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Fatalf("OIDC discovery failed for %s: %v", issuer, err)
	}

	verifier = provider.Verifier(&oidc.Config{ClientID: audience})
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// JWTCheck is the trust boundary: it verifies the token's signature, expiry,
// issuer and audience against the identity provider. Nothing downstream of it
// re-verifies; JWTParse only decodes.
func JWTCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		if _, err := verifier.Verify(c.Request.Context(), tokenString); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Next()
	}
}

// JWTParse resolves the token's subject claim to an internal user and binds
// the identity into the request context for the handlers behind it.
func JWTParse() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		// Signature was already checked by JWTCheck; here we only need the claims.
		claims := jwt.MapClaims{}
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		var user models.User
		if err := config.DB.WithContext(c.Request.Context()).Where("auth0_id = ?", sub).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
				return
			}
			log.Printf("auth: user lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set("auth0ID", sub)
		c.Set("userID", user.ID)

		c.Next()
	}
}
