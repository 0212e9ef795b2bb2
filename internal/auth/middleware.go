// Package auth provides the gin middleware that authenticates API
// requests with a bearer access token.
package auth

import (
    "errors"
    "net/http"
    "strings"

    "github.com/gin-gonic/gin"

    "userhub/internal/models"
    "userhub/internal/repository"
    "userhub/internal/token"
)

const (
    claimsKey = "claims"
    userKey   = "current_user"
)

// JWT validates the Authorization bearer token and verifies the subject
// still resolves to an active user before letting the request through.
func JWT(tokens *token.Service, repo repository.UserRepository) gin.HandlerFunc {
    return func(c *gin.Context) {
        header := c.GetHeader("Authorization")
        if header == "" {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
            return
        }
        tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

        claims, err := tokens.Validate(tokenStr, token.TypeAccess)
        if err != nil {
            msg := "invalid token"
            if errors.Is(err, token.ErrTokenExpired) {
                msg = "token has expired"
            }
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
            return
        }

        user, err := repo.FindByID(c.Request.Context(), claims.UserID)
        if err != nil {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
            return
        }
        if !user.IsActive {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account disabled"})
            return
        }

        c.Set(claimsKey, claims)
        c.Set(userKey, user)
        c.Next()
    }
}

// CurrentUser returns the authenticated user stored by the JWT middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
    v, ok := c.Get(userKey)
    if !ok {
        return nil, false
    }
    user, ok := v.(*models.User)
    return user, ok
}

// CurrentClaims returns the validated token claims, if any.
func CurrentClaims(c *gin.Context) (*token.Claims, bool) {
    v, ok := c.Get(claimsKey)
    if !ok {
        return nil, false
    }
    claims, ok := v.(*token.Claims)
    return claims, ok
}
