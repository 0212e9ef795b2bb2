package handlers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "userhub/internal/service"
)

// Login exchanges email+password for an access/refresh pair.
func Login(authSvc *service.Auth) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            Email    string `json:"email" binding:"required,email"`
            Password string `json:"password" binding:"required"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        pair, user, err := authSvc.Login(c.Request.Context(), input.Email, input.Password)
        if err != nil {
            respondError(c, err)
            return
        }

        c.JSON(http.StatusOK, gin.H{
            "access":  pair.Access,
            "refresh": pair.Refresh,
            "user": gin.H{
                "email": user.Email,
                "name":  user.Name,
            },
        })
    }
}

// Refresh exchanges a refresh token for a rotated pair.
func Refresh(authSvc *service.Auth) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            Refresh string `json:"refresh" binding:"required"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        pair, err := authSvc.Refresh(c.Request.Context(), input.Refresh)
        if err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusOK, gin.H{"access": pair.Access, "refresh": pair.Refresh})
    }
}

// FirebaseLogin exchanges a third-party identity token for a local session,
// creating the account on first sight.
func FirebaseLogin(authSvc *service.Auth) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            FirebaseToken string `json:"firebase_token" binding:"required"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "firebase_token is required"})
            return
        }

        pair, user, err := authSvc.FederatedLogin(c.Request.Context(), input.FirebaseToken)
        if err != nil {
            respondError(c, err)
            return
        }

        c.JSON(http.StatusOK, gin.H{
            "message": "authenticated successfully",
            "email":   user.Email,
            "access":  pair.Access,
            "refresh": pair.Refresh,
        })
    }
}
