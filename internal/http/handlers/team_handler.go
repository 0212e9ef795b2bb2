package handlers

import (
    "net/http"

    "github.com/gin-gonic/gin"

    "userhub/internal/service"
)

// AddTeamMember assigns a role to an existing account. The route is gated
// on the team-management role allow-list by the router.
func AddTeamMember(users *service.Users) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            Email string `json:"email" binding:"required,email"`
            Role  string `json:"role" binding:"required"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        user, err := users.AssignRole(c.Request.Context(), input.Email, input.Role)
        if err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
    }
}
