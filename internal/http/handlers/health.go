package handlers

import (
    "net/http"

    "github.com/gin-gonic/gin"
)

// Health is the liveness probe.
func Health() gin.HandlerFunc {
    return func(c *gin.Context) {
        c.String(http.StatusOK, "OK")
    }
}
