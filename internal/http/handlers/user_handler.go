package handlers

import (
    "net/http"
    "strconv"
    "time"

    "github.com/gin-gonic/gin"

    "userhub/internal/auth"
    "userhub/internal/authz"
    "userhub/internal/models"
    "userhub/internal/repository"
    "userhub/internal/service"
)

type userResponse struct {
    ID       int64  `json:"id"`
    Email    string `json:"email"`
    Name     string `json:"name"`
    IsActive bool   `json:"is_active"`
    Role     string `json:"role,omitempty"`
    Plan     string `json:"plan,omitempty"`
}

func toUserResponse(u *models.User) userResponse {
    resp := userResponse{
        ID:       u.ID,
        Email:    u.Email,
        Name:     u.Name,
        IsActive: u.IsActive,
        Role:     u.RoleName(),
    }
    if u.Plan != nil {
        resp.Plan = u.Plan.Name
    }
    return resp
}

// Register creates a new password-backed account. Open to anyone; the
// default plan and role are assigned automatically.
func Register(users *service.Users) gin.HandlerFunc {
    return func(c *gin.Context) {
        var input struct {
            Email    string `json:"email" binding:"required,email"`
            Name     string `json:"name" binding:"required"`
            Password string `json:"password" binding:"required"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        user, err := users.Register(c.Request.Context(), input.Email, input.Name, input.Password)
        if err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user)})
    }
}

// Me returns the authenticated user's profile.
func Me() gin.HandlerFunc {
    return func(c *gin.Context) {
        user, ok := auth.CurrentUser(c)
        if !ok {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
    }
}

// GetUser returns another user's profile, gated on ownership: only the
// user themselves or an administrator may look.
func GetUser(users *service.Users, repo repository.UserRepository) gin.HandlerFunc {
    return func(c *gin.Context) {
        actorUser, ok := auth.CurrentUser(c)
        if !ok {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        id, err := strconv.ParseInt(c.Param("id"), 10, 64)
        if err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
            return
        }

        actor := BuildActor(c, actorUser, repo)
        if !authz.May(actor, authz.Request{Action: authz.ActionViewUser, OwnerID: id, Now: time.Now()}) {
            c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
            return
        }

        user, err := users.Get(c.Request.Context(), id)
        if err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
    }
}

// ChangePassword rotates the caller's own password.
func ChangePassword(users *service.Users) gin.HandlerFunc {
    return func(c *gin.Context) {
        user, ok := auth.CurrentUser(c)
        if !ok {
            c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        var input struct {
            CurrentPassword string `json:"current_password" binding:"required"`
            NewPassword     string `json:"new_password" binding:"required"`
        }
        if err := c.ShouldBindJSON(&input); err != nil {
            c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
            return
        }

        if err := users.ChangePassword(c.Request.Context(), user.ID, input.CurrentPassword, input.NewPassword); err != nil {
            respondError(c, err)
            return
        }
        c.JSON(http.StatusOK, gin.H{"message": "password updated"})
    }
}

// BuildActor assembles the authorization view of the authenticated user,
// including current subscription state when one exists.
func BuildActor(c *gin.Context, user *models.User, repo repository.UserRepository) authz.Actor {
    actor := authz.Actor{
        UserID:      user.ID,
        RoleName:    user.RoleName(),
        IsStaff:     user.IsStaff,
        IsSuperuser: user.IsSuperuser,
    }
    if sub, err := repo.Subscription(c.Request.Context(), user.ID); err == nil {
        planName := ""
        if sub.SubscriptionPlan != nil {
            planName = sub.SubscriptionPlan.Name
        }
        actor.Subscription = &authz.Subscription{
            PlanName:   planName,
            IsActive:   sub.IsActive,
            ValidUntil: sub.ValidUntil,
        }
    }
    return actor
}
