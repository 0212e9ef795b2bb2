package models

import "time"

// UserAnalytics aggregates per-user usage counters. The auth core only
// touches it incidentally (login counters); everything else is written by
// other services.
type UserAnalytics struct {
    ID                        int64          `gorm:"primaryKey" json:"id"`
    UserID                    int64          `gorm:"uniqueIndex;not null" json:"user_id"`
    TotalLogins               int            `gorm:"default:0" json:"total_logins"`
    LastLoginDate             *time.Time     `json:"last_login_date,omitempty"`
    ActiveDaysCount           int            `gorm:"default:0" json:"active_days_count"`
    AvgSessionDurationMinutes float64        `gorm:"default:0" json:"avg_session_duration_minutes"`
    FeaturesUsed              map[string]int `gorm:"serializer:json" json:"features_used"`
    CreatedAt                 time.Time      `json:"created_at"`
    UpdatedAt                 time.Time      `json:"updated_at"`
}
