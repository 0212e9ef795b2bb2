package handlers

import (
    "errors"
    "net/http"

    "github.com/gin-gonic/gin"

    "userhub/internal/identity"
    "userhub/internal/repository"
    "userhub/internal/service"
    "userhub/internal/token"
)

// respondError maps service failures onto the external error taxonomy.
// Messages stay short and never carry internal detail.
func respondError(c *gin.Context, err error) {
    switch {
    case errors.Is(err, service.ErrInvalidCredentials):
        c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
    case errors.Is(err, token.ErrTokenExpired),
        errors.Is(err, token.ErrTokenInvalid),
        errors.Is(err, token.ErrTokenRevoked):
        c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
    case errors.Is(err, repository.ErrEmailTaken):
        c.JSON(http.StatusConflict, gin.H{"error": repository.ErrEmailTaken.Error()})
    case errors.Is(err, repository.ErrNotFound):
        c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
    case errors.Is(err, service.ErrPasswordTooShort),
        errors.Is(err, service.ErrPasswordRequired),
        errors.Is(err, service.ErrPasswordDisabled),
        errors.Is(err, service.ErrInvalidLink),
        errors.Is(err, identity.ErrInvalidIdentityToken),
        errors.Is(err, identity.ErrMissingEmailClaim):
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
    case errors.Is(err, identity.ErrProviderUnreachable):
        c.JSON(http.StatusBadGateway, gin.H{"error": "identity provider unavailable, try again"})
    default:
        c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
    }
}
