package main

import (
    "fmt"
    "os"

    "github.com/gin-gonic/gin"
    "github.com/redis/go-redis/v9"

    "userhub/internal/config"
    "userhub/internal/db"
    httpserver "userhub/internal/http"
    "userhub/internal/identity"
    "userhub/internal/logging"
    "userhub/internal/mail"
    "userhub/internal/models"
    "userhub/internal/passreset"
    "userhub/internal/repository"
    "userhub/internal/seed"
    "userhub/internal/service"
    "userhub/internal/token"
)

func main() {
    cfg := config.Load()
    log := logging.New(cfg.Debug)

    if !cfg.Debug {
        gin.SetMode(gin.ReleaseMode)
    }

    gdb, err := db.Connect(cfg.DSN, cfg.Debug)
    if err != nil {
        log.Error("database connection failed", "error", err)
        os.Exit(1)
    }

    if err := gdb.AutoMigrate(
        &models.Role{},
        &models.Plan{},
        &models.User{},
        &models.SubscriptionPlan{},
        &models.Subscription{},
        &models.UserAnalytics{},
    ); err != nil {
        log.Error("migration failed", "error", err)
        os.Exit(1)
    }

    if err := seed.FirstSetup(gdb, cfg.AdminEmail, cfg.AdminPassword, log); err != nil {
        log.Error("seeding failed", "error", err)
        os.Exit(1)
    }

    var rdb *redis.Client
    if cfg.RedisAddr != "" {
        rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
        log.Info("refresh-token store enabled", "addr", cfg.RedisAddr)
    } else {
        log.Info("no redis configured, refresh validation is stateless")
    }

    var mailer mail.Sender
    if cfg.SMTPAddr != "" {
        mailer = mail.NewSMTPSender(cfg.SMTPAddr, cfg.SMTPFrom)
    } else {
        mailer = &mail.LogSender{Log: log}
    }

    repo := repository.NewUserRepository(gdb)
    tokens := token.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, rdb)
    verifier := identity.NewFirebaseVerifier(cfg.FirebaseProjectID)
    resetGen := passreset.NewGenerator(cfg.JWTSecret, cfg.ResetTokenTTL)

    users := service.NewUsers(repo, service.AssignmentRules{
        InstitutionalDomains: cfg.InstitutionalDomains,
        ConsumerDomains:      cfg.ConsumerDomains,
    }, log)
    authSvc := service.NewAuth(repo, tokens, verifier, users, log)
    resets := service.NewPasswordReset(repo, resetGen, mailer, cfg.ResetLinkBase, log)

    r := httpserver.NewRouter(httpserver.Deps{
        Repo:           repo,
        Tokens:         tokens,
        Auth:           authSvc,
        Users:          users,
        Resets:         resets,
        AllowedOrigins: cfg.AllowedOrigins,
    })

    log.Info("server listening", "port", cfg.AppPort)
    if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
        log.Error("server exited", "error", err)
        os.Exit(1)
    }
}
