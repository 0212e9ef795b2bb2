package models

import "time"

type User struct {
    ID           int64      `gorm:"primaryKey" json:"id"`
    Email        string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
    Name         string     `gorm:"size:255" json:"name"`
    PasswordHash string     `gorm:"size:255" json:"-"`
    IsActive     bool       `gorm:"default:true" json:"is_active"`
    IsStaff      bool       `gorm:"default:false" json:"is_staff"`
    IsSuperuser  bool       `gorm:"default:false" json:"-"`
    RoleID       *int64     `gorm:"index" json:"role_id,omitempty"`
    PlanID       *int64     `gorm:"index" json:"plan_id,omitempty"`
    Role         *Role      `json:"role,omitempty"`
    Plan         *Plan      `json:"plan,omitempty"`
    LastLogin    *time.Time `json:"last_login,omitempty"`
    CreatedAt    time.Time  `json:"created_at"`
    UpdatedAt    time.Time  `json:"updated_at"`
}

// HasUsablePassword reports whether password login is possible for this
// account. Federated accounts carry an empty hash and never authenticate
// with a password.
func (u *User) HasUsablePassword() bool {
    return u.PasswordHash != ""
}

// IsAdmin reports whether the user holds administrative privileges.
func (u *User) IsAdmin() bool {
    return u.IsStaff || u.IsSuperuser
}

// RoleName returns the loaded role name, or "" when no role is assigned.
func (u *User) RoleName() string {
    if u.Role == nil {
        return ""
    }
    return u.Role.Name
}
