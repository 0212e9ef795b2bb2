// Package seed guarantees the fixed role and plan rows exist before any
// user auto-assignment runs.
package seed

import (
    "log/slog"

    "golang.org/x/crypto/bcrypt"
    "gorm.io/gorm"

    "userhub/internal/models"
)

// Seeded role names. Role assignment logic refers to these; they must
// exist before the first user is created.
const (
    RoleStudent       = "Student"
    RoleTrainee       = "Trainee"
    RoleEvents        = "Events"
    RoleAdministrator = "Administrator"
    RoleSubscriber    = "Subscriber"
)

// Seeded plan names. Exactly one free plan exists as the default fallback.
const (
    PlanFree    = "Free"
    PlanPremium = "Premium"
)

// FirstSetup creates the seed roles and plans idempotently, plus an
// optional staff account when admin credentials are configured.
func FirstSetup(db *gorm.DB, adminEmail, adminPassword string, log *slog.Logger) error {
    roles := []string{RoleStudent, RoleTrainee, RoleEvents, RoleAdministrator, RoleSubscriber}
    for _, name := range roles {
        role := models.Role{Name: name}
        if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
            return err
        }
    }

    plans := []models.Plan{
        {Name: PlanFree, IsFree: true, Description: "Basic free plan"},
        {Name: PlanPremium, IsFree: false, Description: "Premium plan with extended limits", MaxProjects: 10, MaxUsers: 10, MaxStorageMB: 10240},
    }
    for _, p := range plans {
        plan := p
        if err := db.Where("name = ?", plan.Name).FirstOrCreate(&plan).Error; err != nil {
            return err
        }
    }

    if adminEmail != "" && adminPassword != "" {
        hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
        if err != nil {
            return err
        }
        admin := models.User{
            Email:        adminEmail,
            Name:         "Administrator",
            PasswordHash: string(hash),
            IsActive:     true,
            IsStaff:      true,
            IsSuperuser:  true,
        }
        if err := db.Where("email = ?", adminEmail).FirstOrCreate(&admin).Error; err != nil {
            return err
        }
    }

    log.Info("seed complete", "roles", len(roles), "plans", len(plans))
    return nil
}
