// Package repository is the data access layer over the relational store.
package repository

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"

    "gorm.io/gorm"

    "userhub/internal/models"
)

var (
    ErrNotFound   = errors.New("record not found")
    ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines the persistence operations the auth core needs.
type UserRepository interface {
    FindByEmail(ctx context.Context, email string) (*models.User, error)
    FindByID(ctx context.Context, id int64) (*models.User, error)
    Create(ctx context.Context, user *models.User) error
    // GetOrCreateByEmail creates the candidate user unless a row with the
    // same email already exists, in which case the existing row is
    // returned. The unique email constraint arbitrates concurrent creates.
    GetOrCreateByEmail(ctx context.Context, candidate *models.User) (user *models.User, created bool, err error)
    Update(ctx context.Context, user *models.User) error
    SetPassword(ctx context.Context, userID int64, hash string) error
    RecordLogin(ctx context.Context, userID int64, at time.Time) error

    FreePlan(ctx context.Context) (*models.Plan, error)
    RoleByName(ctx context.Context, name string) (*models.Role, error)
    Subscription(ctx context.Context, userID int64) (*models.Subscription, error)
    Analytics(ctx context.Context, userID int64) (*models.UserAnalytics, error)
}

type userRepository struct {
    db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
    return &userRepository{db: db}
}

// NormalizeEmail lowercases and trims an email so the unique key is
// case-insensitive.
func NormalizeEmail(email string) string {
    return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
    var user models.User
    err := r.db.WithContext(ctx).
        Preload("Role").Preload("Plan").
        Where("email = ?", NormalizeEmail(email)).
        First(&user).Error
    if err != nil {
        return nil, translate(err)
    }
    return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
    var user models.User
    err := r.db.WithContext(ctx).
        Preload("Role").Preload("Plan").
        First(&user, id).Error
    if err != nil {
        return nil, translate(err)
    }
    return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
    user.Email = NormalizeEmail(user.Email)
    if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
        return translate(err)
    }
    return nil
}

func (r *userRepository) GetOrCreateByEmail(ctx context.Context, candidate *models.User) (*models.User, bool, error) {
    email := NormalizeEmail(candidate.Email)

    if user, err := r.FindByEmail(ctx, email); err == nil {
        return user, false, nil
    } else if !errors.Is(err, ErrNotFound) {
        return nil, false, err
    }

    candidate.Email = email
    err := r.Create(ctx, candidate)
    if err == nil {
        return candidate, true, nil
    }
    if errors.Is(err, ErrEmailTaken) {
        // Lost the race; the winner's row is authoritative.
        user, ferr := r.FindByEmail(ctx, email)
        if ferr != nil {
            return nil, false, ferr
        }
        return user, false, nil
    }
    return nil, false, err
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
    if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
        return fmt.Errorf("update user %d: %w", user.ID, err)
    }
    return nil
}

func (r *userRepository) SetPassword(ctx context.Context, userID int64, hash string) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        res := tx.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", hash)
        if res.Error != nil {
            return fmt.Errorf("set password for user %d: %w", userID, res.Error)
        }
        if res.RowsAffected == 0 {
            return ErrNotFound
        }
        return nil
    })
}

// RecordLogin stamps last_login and bumps the usage counters in a single
// transaction so a partially-applied login update cannot be observed.
func (r *userRepository) RecordLogin(ctx context.Context, userID int64, at time.Time) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Model(&models.User{}).Where("id = ?", userID).
            Update("last_login", at).Error; err != nil {
            return fmt.Errorf("stamp last login: %w", err)
        }

        analytics := models.UserAnalytics{UserID: userID}
        if err := tx.Where("user_id = ?", userID).FirstOrCreate(&analytics).Error; err != nil {
            return fmt.Errorf("ensure analytics row: %w", err)
        }
        return tx.Model(&analytics).Updates(map[string]interface{}{
            "total_logins":    gorm.Expr("total_logins + 1"),
            "last_login_date": at,
        }).Error
    })
}

func (r *userRepository) FreePlan(ctx context.Context) (*models.Plan, error) {
    var plan models.Plan
    err := r.db.WithContext(ctx).Where("is_free = ?", true).First(&plan).Error
    if err != nil {
        return nil, translate(err)
    }
    return &plan, nil
}

func (r *userRepository) RoleByName(ctx context.Context, name string) (*models.Role, error) {
    var role models.Role
    err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
    if err != nil {
        return nil, translate(err)
    }
    return &role, nil
}

func (r *userRepository) Subscription(ctx context.Context, userID int64) (*models.Subscription, error) {
    var sub models.Subscription
    err := r.db.WithContext(ctx).
        Preload("SubscriptionPlan").
        Where("user_id = ?", userID).
        First(&sub).Error
    if err != nil {
        return nil, translate(err)
    }
    return &sub, nil
}

func (r *userRepository) Analytics(ctx context.Context, userID int64) (*models.UserAnalytics, error) {
    var analytics models.UserAnalytics
    err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&analytics).Error
    if err != nil {
        return nil, translate(err)
    }
    return &analytics, nil
}

func translate(err error) error {
    switch {
    case errors.Is(err, gorm.ErrRecordNotFound):
        return ErrNotFound
    case errors.Is(err, gorm.ErrDuplicatedKey):
        return ErrEmailTaken
    default:
        return err
    }
}
