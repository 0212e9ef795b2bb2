// Package service holds the business operations composed from the
// repositories, token issuer, identity verifier and mail sender.
package service

import (
    "context"
    "errors"
    "log/slog"
    "strings"

    "golang.org/x/crypto/bcrypt"

    "userhub/internal/models"
    "userhub/internal/repository"
    "userhub/internal/seed"
)

// AssignmentRules drives automatic role assignment from the email domain at
// creation time.
type AssignmentRules struct {
    InstitutionalDomains []string
    ConsumerDomains      []string
}

// Users implements registration and self-service account operations.
type Users struct {
    repo  repository.UserRepository
    rules AssignmentRules
    log   *slog.Logger
}

func NewUsers(repo repository.UserRepository, rules AssignmentRules, log *slog.Logger) *Users {
    return &Users{repo: repo, rules: rules, log: log}
}

// Register creates a password-backed account. The default plan and role are
// assigned synchronously right after the row exists.
func (s *Users) Register(ctx context.Context, email, name, password string) (*models.User, error) {
    if len(password) < 8 {
        return nil, ErrPasswordTooShort
    }
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
    if err != nil {
        return nil, err
    }

    user := &models.User{
        Email:        repository.NormalizeEmail(email),
        Name:         strings.TrimSpace(name),
        PasswordHash: string(hash),
        IsActive:     true,
    }
    if err := s.repo.Create(ctx, user); err != nil {
        return nil, err
    }

    s.ApplyDefaults(ctx, user)
    return user, nil
}

// ApplyDefaults is the on-user-created hook: it backfills the seeded free
// plan and infers a role from the email domain. It only runs on creation,
// never overwrites an already-set role or plan, and tolerates missing seed
// rows (logged, not fatal).
func (s *Users) ApplyDefaults(ctx context.Context, user *models.User) {
    changed := false

    if user.PlanID == nil {
        plan, err := s.repo.FreePlan(ctx)
        if err != nil {
            s.log.WarnContext(ctx, "free plan not seeded, skipping default plan", "error", err)
        } else {
            user.PlanID = &plan.ID
            user.Plan = plan
            changed = true
        }
    }

    if user.RoleID == nil {
        if roleName := s.roleForEmail(user.Email); roleName != "" {
            role, err := s.repo.RoleByName(ctx, roleName)
            if err != nil {
                s.log.WarnContext(ctx, "role not seeded, skipping default role", "role", roleName, "error", err)
            } else {
                user.RoleID = &role.ID
                user.Role = role
                changed = true
            }
        }
    }

    if changed {
        if err := s.repo.Update(ctx, user); err != nil {
            s.log.ErrorContext(ctx, "failed to persist default role/plan", "user_id", user.ID, "error", err)
        }
    }
}

func (s *Users) roleForEmail(email string) string {
    _, domain, ok := strings.Cut(strings.ToLower(email), "@")
    if !ok {
        return ""
    }
    if matchesDomain(domain, s.rules.InstitutionalDomains) {
        return seed.RoleStudent
    }
    if matchesDomain(domain, s.rules.ConsumerDomains) {
        return seed.RoleSubscriber
    }
    return ""
}

func matchesDomain(domain string, patterns []string) bool {
    for _, p := range patterns {
        if domain == p || strings.HasSuffix(domain, "."+p) {
            return true
        }
    }
    return false
}

// Get returns a user by id.
func (s *Users) Get(ctx context.Context, id int64) (*models.User, error) {
    return s.repo.FindByID(ctx, id)
}

// ChangePassword rotates the password after checking the current one.
// Federated accounts have password login permanently disabled.
func (s *Users) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
    if len(newPassword) < 8 {
        return ErrPasswordTooShort
    }
    user, err := s.repo.FindByID(ctx, userID)
    if err != nil {
        return err
    }
    if !user.HasUsablePassword() {
        return ErrPasswordDisabled
    }
    if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
        return ErrInvalidCredentials
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
    if err != nil {
        return err
    }
    return s.repo.SetPassword(ctx, userID, string(hash))
}

// AssignRole sets a named role on the user identified by email. Used by the
// team-management surface; authorization happens at the handler.
func (s *Users) AssignRole(ctx context.Context, email, roleName string) (*models.User, error) {
    user, err := s.repo.FindByEmail(ctx, email)
    if err != nil {
        return nil, err
    }
    role, err := s.repo.RoleByName(ctx, roleName)
    if err != nil {
        return nil, err
    }
    user.RoleID = &role.ID
    user.Role = role
    if err := s.repo.Update(ctx, user); err != nil {
        return nil, err
    }
    return user, nil
}

// Analytics returns the usage counters for a user, tolerating accounts that
// have never logged in.
func (s *Users) Analytics(ctx context.Context, userID int64) (*models.UserAnalytics, error) {
    analytics, err := s.repo.Analytics(ctx, userID)
    if errors.Is(err, repository.ErrNotFound) {
        return &models.UserAnalytics{UserID: userID}, nil
    }
    return analytics, err
}
