package models

import "time"

// SubscriptionPlan is a priced tier referenced by Subscription rows.
// Billing itself happens outside this service; the stripe price id is only
// carried so the payment collaborator can reconcile.
type SubscriptionPlan struct {
    ID            int64     `gorm:"primaryKey" json:"id"`
    Name          string    `gorm:"size:100;not null" json:"name"`
    Description   string    `json:"description"`
    PriceCents    int64     `gorm:"not null" json:"price_cents"`
    StripePriceID string    `gorm:"size:255" json:"-"`
    CreatedAt     time.Time `json:"created_at"`
}

type Subscription struct {
    ID                 int64             `gorm:"primaryKey" json:"id"`
    UserID             int64             `gorm:"uniqueIndex;not null" json:"user_id"`
    SubscriptionPlanID *int64            `json:"subscription_plan_id,omitempty"`
    SubscriptionPlan   *SubscriptionPlan `json:"plan,omitempty"`
    ValidUntil         time.Time         `gorm:"index:idx_sub_active_valid,priority:2;index" json:"valid_until"`
    IsActive           bool              `gorm:"default:true;index:idx_sub_active_valid,priority:1" json:"is_active"`
}

// Current reports whether the subscription grants access at the given
// instant. The stored is_active flag is not guaranteed to be reconciled
// against valid_until, so activity is always re-derived here.
func (s *Subscription) Current(now time.Time) bool {
    return s.IsActive && s.ValidUntil.After(now)
}
