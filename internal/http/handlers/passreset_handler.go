package handlers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "userhub/internal/service"
)

// resetRequestedMessage is returned whether or not the email matches an
// account, so the endpoint cannot be used to enumerate accounts.
const resetRequestedMessage = "if the email belongs to an account, a reset link has been sent"

// RequestPasswordReset kicks off the reset handshake.
func RequestPasswordReset(resets *service.PasswordReset) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            Email string `json:"email" binding:"required,email"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        resets.Request(c.Request.Context(), input.Email)
        c.JSON(http.StatusOK, gin.H{"message": resetRequestedMessage})
    }
}

// ConfirmPasswordReset consumes a reset link and sets the new password.
func ConfirmPasswordReset(resets *service.PasswordReset) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            NewPassword string `json:"new_password"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        err := resets.Confirm(c.Request.Context(), c.Param("uid"), c.Param("token"), input.NewPassword)
        if err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusOK, gin.H{"message": "password has been reset"})
    }
}
