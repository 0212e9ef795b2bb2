// Package authz evaluates role, plan and ownership gates against a static
// policy table. Evaluation is a pure function; callers assemble the Actor
// from persisted state and never learn which gate denied.
package authz

import (
    "slices"
    "time"

    "userhub/internal/models"
)

type Action string

const (
    ActionManageTeam    Action = "team:manage"
    ActionViewAnalytics Action = "analytics:view"
    ActionViewUser      Action = "users:view"
)

// Policy declares the gates attached to an action. Every declared gate must
// pass: a policy naming both a role list and a plan requires both.
type Policy struct {
    Roles     []string // role allow-list; empty means no role gate
    Plan      string   // required subscription plan name; empty means no plan gate
    OwnerOnly bool     // actor must own the target or be an administrator
}

var policies = map[Action]Policy{
    ActionManageTeam:    {Roles: []string{"Administrator", "Manager"}},
    ActionViewAnalytics: {Plan: "Premium"},
    ActionViewUser:      {OwnerOnly: true},
}

// Subscription is the slice of persisted subscription state the engine
// inspects. Activity is re-derived from ValidUntil on every check; the
// stored flag alone is never trusted.
type Subscription struct {
    PlanName   string
    IsActive   bool
    ValidUntil time.Time
}

// Actor is the authenticated principal a request acts as.
type Actor struct {
    UserID       int64
    RoleName     string
    IsStaff      bool
    IsSuperuser  bool
    Subscription *Subscription
}

// Request describes the action being attempted. OwnerID identifies the
// target object's owner for ownership-gated actions.
type Request struct {
    Action  Action
    OwnerID int64
    Now     time.Time
}

// May reports whether the actor passes every gate of the action's policy.
// Unknown actions are denied.
func May(actor Actor, req Request) bool {
    policy, ok := policies[req.Action]
    if !ok {
        return false
    }

    admin := actor.IsStaff || actor.IsSuperuser

    if len(policy.Roles) > 0 && !slices.Contains(policy.Roles, actor.RoleName) {
        return false
    }

    if policy.Plan != "" {
        sub := actor.Subscription
        if sub == nil || sub.PlanName != policy.Plan {
            return false
        }
        if !sub.IsActive || !sub.ValidUntil.After(req.Now) {
            return false
        }
    }

    if policy.OwnerOnly && !admin && actor.UserID != req.OwnerID {
        return false
    }

    return true
}

// WithinProjectLimit reports whether creating one more project stays under
// the plan ceiling. Accounts with no plan carry no ceiling.
func WithinProjectLimit(plan *models.Plan, currentCount int) bool {
    if plan == nil {
        return true
    }
    return currentCount < plan.MaxProjects
}
