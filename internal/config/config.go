package config

import (
    "log/slog"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    DSN     string
    AppPort string
    Debug   bool

    JWTSecret       string
    AccessTokenTTL  time.Duration
    RefreshTokenTTL time.Duration

    AllowedOrigins []string

    RedisAddr     string
    RedisPassword string

    FirebaseProjectID string

    ResetTokenTTL time.Duration
    ResetLinkBase string

    SMTPAddr string
    SMTPFrom string

    // Email-domain patterns driving automatic role assignment on signup.
    InstitutionalDomains []string
    ConsumerDomains      []string

    AdminEmail    string
    AdminPassword string
}

// Load reads configuration from a .env file (when present) and the
// environment. Every value has a safe fallback so the service never refuses
// to start over missing optional configuration.
func Load() Config {
    if err := godotenv.Load(); err != nil {
        slog.Info("no .env file found, using system environment variables")
    }

    cfg := Config{
        DSN:               envOr("MYSQL_DSN", "root:@tcp(localhost:3306)/userhub?parseTime=true"),
        AppPort:           envOr("APP_PORT", "8080"),
        Debug:             envBool("DEBUG", false),
        JWTSecret:         envOr("JWT_SECRET", "dev-secret-only"),
        AccessTokenTTL:    envDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
        RefreshTokenTTL:   envDuration("REFRESH_TOKEN_TTL", 168*time.Hour),
        AllowedOrigins:    envList("ALLOWED_ORIGINS", []string{"*"}),
        RedisAddr:         os.Getenv("REDIS_ADDR"),
        RedisPassword:     os.Getenv("REDIS_PASSWORD"),
        FirebaseProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
        ResetTokenTTL:     envDuration("PASSWORD_RESET_TTL", 72*time.Hour),
        ResetLinkBase:     envOr("RESET_LINK_BASE", "http://localhost:8080"),
        SMTPAddr:          os.Getenv("SMTP_ADDR"),
        SMTPFrom:          envOr("SMTP_FROM", "no-reply@localhost"),
        InstitutionalDomains: envList("INSTITUTIONAL_DOMAINS", []string{"school.edu", "ufba.br"}),
        ConsumerDomains:      envList("CONSUMER_DOMAINS", []string{"gmail.com", "gmail.com.br"}),
        AdminEmail:           os.Getenv("ADMIN_EMAIL"),
        AdminPassword:        os.Getenv("ADMIN_PASSWORD"),
    }

    if cfg.JWTSecret == "dev-secret-only" {
        slog.Warn("JWT_SECRET not set, using insecure development default")
    }

    return cfg
}

func envOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envBool(key string, def bool) bool {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    b, err := strconv.ParseBool(v)
    if err != nil {
        return def
    }
    return b
}

func envDuration(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    d, err := time.ParseDuration(v)
    if err != nil {
        return def
    }
    return d
}

func envList(key string, def []string) []string {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    parts := strings.Split(v, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    if len(out) == 0 {
        return def
    }
    return out
}
