package service

import (
    "context"
    "log/slog"
    "time"

    "golang.org/x/crypto/bcrypt"

    "userhub/internal/identity"
    "userhub/internal/models"
    "userhub/internal/repository"
    "userhub/internal/token"
)

// dummyHash keeps the login path doing one bcrypt comparison even when the
// email does not resolve to an account.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Auth implements the session entry paths: password login, refresh and
// federated login.
type Auth struct {
    repo     repository.UserRepository
    tokens   *token.Service
    verifier identity.Verifier
    users    *Users
    log      *slog.Logger
}

func NewAuth(repo repository.UserRepository, tokens *token.Service, verifier identity.Verifier, users *Users, log *slog.Logger) *Auth {
    return &Auth{repo: repo, tokens: tokens, verifier: verifier, users: users, log: log}
}

// Login exchanges email+password for a token pair. Unknown email, wrong
// password and inactive account all collapse to ErrInvalidCredentials.
func (s *Auth) Login(ctx context.Context, email, password string) (token.Pair, *models.User, error) {
    user, err := s.repo.FindByEmail(ctx, email)
    if err != nil {
        // Burn a comparison anyway so response timing does not reveal
        // whether the email exists.
        _ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
        return token.Pair{}, nil, ErrInvalidCredentials
    }
    if !user.HasUsablePassword() {
        return token.Pair{}, nil, ErrInvalidCredentials
    }
    if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
        return token.Pair{}, nil, ErrInvalidCredentials
    }
    if !user.IsActive {
        return token.Pair{}, nil, ErrInvalidCredentials
    }

    return s.establishSession(ctx, user)
}

// Refresh validates a refresh token, re-resolves the subject to an active
// user and issues a rotated pair.
func (s *Auth) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
    claims, err := s.tokens.CheckRefresh(ctx, refreshToken)
    if err != nil {
        return token.Pair{}, err
    }

    user, err := s.repo.FindByID(ctx, claims.UserID)
    if err != nil || !user.IsActive {
        return token.Pair{}, token.ErrTokenInvalid
    }

    return s.tokens.Issue(ctx, user)
}

// FederatedLogin verifies a third-party identity token and maps it onto a
// local account, creating one on first sight. Creation is at-most-once per
// email; a concurrent loser falls back to the winner's row.
func (s *Auth) FederatedLogin(ctx context.Context, idToken string) (token.Pair, *models.User, error) {
    ident, err := s.verifier.Verify(ctx, idToken)
    if err != nil {
        return token.Pair{}, nil, err
    }

    name := ident.Name
    if name == "" {
        name = ident.Subject
    }
    candidate := &models.User{
        Email:    repository.NormalizeEmail(ident.Email),
        Name:     name,
        IsActive: true,
        // Empty hash: password login permanently disabled.
    }

    user, created, err := s.repo.GetOrCreateByEmail(ctx, candidate)
    if err != nil {
        return token.Pair{}, nil, err
    }
    if created {
        s.users.ApplyDefaults(ctx, user)
        s.log.InfoContext(ctx, "created account from federated identity", "user_id", user.ID)
    }
    if !user.IsActive {
        return token.Pair{}, nil, ErrInvalidCredentials
    }

    return s.establishSession(ctx, user)
}

func (s *Auth) establishSession(ctx context.Context, user *models.User) (token.Pair, *models.User, error) {
    pair, err := s.tokens.Issue(ctx, user)
    if err != nil {
        return token.Pair{}, nil, err
    }
    if err := s.repo.RecordLogin(ctx, user.ID, time.Now()); err != nil {
        return token.Pair{}, nil, err
    }
    return pair, user, nil
}
