package service

import (
    "context"
    "errors"
    "time"

    "userhub/internal/identity"
    "userhub/internal/models"
    "userhub/internal/repository"
)

// mockUserRepository implements repository.UserRepository with overridable
// function fields.
type mockUserRepository struct {
    findByEmailFunc      func(ctx context.Context, email string) (*models.User, error)
    findByIDFunc         func(ctx context.Context, id int64) (*models.User, error)
    createFunc           func(ctx context.Context, user *models.User) error
    getOrCreateFunc      func(ctx context.Context, candidate *models.User) (*models.User, bool, error)
    updateFunc           func(ctx context.Context, user *models.User) error
    setPasswordFunc      func(ctx context.Context, userID int64, hash string) error
    recordLoginFunc      func(ctx context.Context, userID int64, at time.Time) error
    freePlanFunc         func(ctx context.Context) (*models.Plan, error)
    roleByNameFunc       func(ctx context.Context, name string) (*models.Role, error)
    subscriptionFunc     func(ctx context.Context, userID int64) (*models.Subscription, error)
    analyticsFunc        func(ctx context.Context, userID int64) (*models.UserAnalytics, error)
}

var _ repository.UserRepository = (*mockUserRepository)(nil)

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
    if m.findByEmailFunc != nil {
        return m.findByEmailFunc(ctx, email)
    }
    return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
    if m.findByIDFunc != nil {
        return m.findByIDFunc(ctx, id)
    }
    return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
    if m.createFunc != nil {
        return m.createFunc(ctx, user)
    }
    user.ID = 1
    return nil
}

func (m *mockUserRepository) GetOrCreateByEmail(ctx context.Context, candidate *models.User) (*models.User, bool, error) {
    if m.getOrCreateFunc != nil {
        return m.getOrCreateFunc(ctx, candidate)
    }
    candidate.ID = 1
    return candidate, true, nil
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
    if m.updateFunc != nil {
        return m.updateFunc(ctx, user)
    }
    return nil
}

func (m *mockUserRepository) SetPassword(ctx context.Context, userID int64, hash string) error {
    if m.setPasswordFunc != nil {
        return m.setPasswordFunc(ctx, userID, hash)
    }
    return nil
}

func (m *mockUserRepository) RecordLogin(ctx context.Context, userID int64, at time.Time) error {
    if m.recordLoginFunc != nil {
        return m.recordLoginFunc(ctx, userID, at)
    }
    return nil
}

func (m *mockUserRepository) FreePlan(ctx context.Context) (*models.Plan, error) {
    if m.freePlanFunc != nil {
        return m.freePlanFunc(ctx)
    }
    return nil, repository.ErrNotFound
}

func (m *mockUserRepository) RoleByName(ctx context.Context, name string) (*models.Role, error) {
    if m.roleByNameFunc != nil {
        return m.roleByNameFunc(ctx, name)
    }
    return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Subscription(ctx context.Context, userID int64) (*models.Subscription, error) {
    if m.subscriptionFunc != nil {
        return m.subscriptionFunc(ctx, userID)
    }
    return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Analytics(ctx context.Context, userID int64) (*models.UserAnalytics, error) {
    if m.analyticsFunc != nil {
        return m.analyticsFunc(ctx, userID)
    }
    return nil, repository.ErrNotFound
}

// mockVerifier returns a fixed identity or error.
type mockVerifier struct {
    verifyFunc func(ctx context.Context, token string) (*identity.Identity, error)
}

var _ identity.Verifier = (*mockVerifier)(nil)

func (m *mockVerifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
    if m.verifyFunc != nil {
        return m.verifyFunc(ctx, token)
    }
    return nil, errNotConfigured
}

// recordingMailer captures sent messages.
type recordingMailer struct {
    sent []sentMail
    err  error
}

type sentMail struct {
    To      string
    Subject string
    Body    string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
    if m.err != nil {
        return m.err
    }
    m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
    return nil
}

var errNotConfigured = errors.New("mock not configured")
