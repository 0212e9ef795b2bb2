package handlers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "userhub/internal/auth"
    "userhub/internal/service"
)

// Analytics returns the caller's usage counters. The route is plan-gated
// by the router.
func Analytics(users *service.Users) gin.HandlerFunc {
    return func(c *gin.Context) {
        user, ok := auth.CurrentUser(c)
        if !ok {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }

        analytics, err := users.Analytics(c.Request.Context(), user.ID)
        if err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusOK, gin.H{"analytics": analytics})
    }
}
