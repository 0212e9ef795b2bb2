package httpserver

import (
    "net/http"
    "slices"
    "time"

    "github.com/gin-gonic/gin"

    "userhub/internal/auth"
    "userhub/internal/authz"
    "userhub/internal/http/handlers"
    "userhub/internal/repository"
    "userhub/internal/service"
    "userhub/internal/token"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
    Repo           repository.UserRepository
    Tokens         *token.Service
    Auth           *service.Auth
    Users          *service.Users
    Resets         *service.PasswordReset
    AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(cors(d.AllowedOrigins))

    r.GET("/health/", handlers.Health())

    // Public entry paths.
    r.POST("/api/token/", handlers.Login(d.Auth))
    r.POST("/api/token/refresh/", handlers.Refresh(d.Auth))
    r.POST("/firebase-login/", handlers.FirebaseLogin(d.Auth))
    r.POST("/api/users/", handlers.Register(d.Users))
    r.POST("/api/password-reset/", handlers.RequestPasswordReset(d.Resets))
    r.POST("/api/password-reset-confirm/:uid/:token/", handlers.ConfirmPasswordReset(d.Resets))

    // Session-bound routes.
    authMW := auth.JWT(d.Tokens, d.Repo)
    api := r.Group("/api", authMW)
    {
        api.GET("/me/", handlers.Me())
        api.POST("/me/password/", handlers.ChangePassword(d.Users))
        api.GET("/users/:id/", handlers.GetUser(d.Users, d.Repo))
        api.POST("/team/members/", require(d.Repo, authz.ActionManageTeam), handlers.AddTeamMember(d.Users))
        api.GET("/analytics/", require(d.Repo, authz.ActionViewAnalytics), handlers.Analytics(d.Users))
    }

    return r
}

// require aborts with a uniform forbidden response unless the actor passes
// every gate of the action's policy.
func require(repo repository.UserRepository, action authz.Action) gin.HandlerFunc {
    return func(c *gin.Context) {
        user, ok := auth.CurrentUser(c)
        if !ok {
            c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
            return
        }
        actor := handlers.BuildActor(c, user, repo)
        if !authz.May(actor, authz.Request{Action: action, Now: time.Now()}) {
            c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
            return
        }
        c.Next()
    }
}

// cors allows the configured request origins. "*" allows any origin.
func cors(origins []string) gin.HandlerFunc {
    allowAll := slices.Contains(origins, "*")
    return func(c *gin.Context) {
        origin := c.GetHeader("Origin")
        if origin != "" && (allowAll || slices.Contains(origins, origin)) {
            c.Header("Access-Control-Allow-Origin", origin)
            c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
            c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization")
        }
        if c.Request.Method == http.MethodOptions {
            c.AbortWithStatus(http.StatusNoContent)
            return
        }
        c.Next()
    }
}
