// Package token issues and validates the signed session tokens used as
// bearer credentials: a short-lived access token and a longer-lived refresh
// token exchangeable for a new pair.
package token

import (
    "context"
    "errors"
    "fmt"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/redis/go-redis/v9"

    "userhub/internal/models"
)

var (
    ErrTokenInvalid = errors.New("token is invalid")
    ErrTokenExpired = errors.New("token has expired")
    ErrTokenRevoked = errors.New("token has been revoked")
)

const (
    TypeAccess  = "access"
    TypeRefresh = "refresh"
)

// Claims carries the identity facts embedded in every session token.
type Claims struct {
    UserID  int64  `json:"uid"`
    Email   string `json:"email"`
    Name    string `json:"name,omitempty"`
    IsStaff bool   `json:"is_staff"`
    Type    string `json:"token_type"`
    jwt.RegisteredClaims
}

// Pair is an access/refresh token pair returned to clients.
type Pair struct {
    Access  string `json:"access"`
    Refresh string `json:"refresh"`
}

// Service signs and verifies session tokens. When a Redis client is
// provided, issued refresh tokens are kept in an allow-list keyed by user
// id and rotated on every refresh, so an exchanged refresh token cannot be
// replayed. With a nil client refresh validation is purely stateless.
type Service struct {
    secret        []byte
    accessExpiry  time.Duration
    refreshExpiry time.Duration
    rdb           *redis.Client
    now           func() time.Time
}

func NewService(secret string, accessExpiry, refreshExpiry time.Duration, rdb *redis.Client) *Service {
    return &Service{
        secret:        []byte(secret),
        accessExpiry:  accessExpiry,
        refreshExpiry: refreshExpiry,
        rdb:           rdb,
        now:           time.Now,
    }
}

// Issue creates a new access/refresh pair for the user and records the
// refresh token in the allow-list when one is configured.
func (s *Service) Issue(ctx context.Context, user *models.User) (Pair, error) {
    access, err := s.sign(user, TypeAccess, s.accessExpiry)
    if err != nil {
        return Pair{}, fmt.Errorf("sign access token: %w", err)
    }
    refresh, err := s.sign(user, TypeRefresh, s.refreshExpiry)
    if err != nil {
        return Pair{}, fmt.Errorf("sign refresh token: %w", err)
    }

    if s.rdb != nil {
        key := refreshKey(user.ID)
        if err := s.rdb.Set(ctx, key, refresh, s.refreshExpiry).Err(); err != nil {
            return Pair{}, fmt.Errorf("store refresh token: %w", err)
        }
    }

    return Pair{Access: access, Refresh: refresh}, nil
}

// Validate verifies the signature and expiry of a token and checks it has
// the expected type. Expired tokens always report ErrTokenExpired; every
// other failure collapses to ErrTokenInvalid.
func (s *Service) Validate(tokenStr, wantType string) (*Claims, error) {
    claims := &Claims{}
    tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrTokenInvalid
        }
        return s.secret, nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return nil, ErrTokenExpired
        }
        return nil, ErrTokenInvalid
    }
    if !tok.Valid || claims.Type != wantType {
        return nil, ErrTokenInvalid
    }
    return claims, nil
}

// CheckRefresh validates a refresh token against the allow-list. The caller
// still owns re-resolving the subject to an active user before issuing a
// new pair.
func (s *Service) CheckRefresh(ctx context.Context, refreshStr string) (*Claims, error) {
    claims, err := s.Validate(refreshStr, TypeRefresh)
    if err != nil {
        return nil, err
    }

    if s.rdb != nil {
        stored, err := s.rdb.Get(ctx, refreshKey(claims.UserID)).Result()
        if err != nil || stored != refreshStr {
            return nil, ErrTokenRevoked
        }
    }

    return claims, nil
}

// Revoke drops the user's refresh token from the allow-list, if any.
func (s *Service) Revoke(ctx context.Context, userID int64) error {
    if s.rdb == nil {
        return nil
    }
    return s.rdb.Del(ctx, refreshKey(userID)).Err()
}

// AccessTTL exposes the access-token lifetime for response metadata.
func (s *Service) AccessTTL() time.Duration {
    return s.accessExpiry
}

func (s *Service) sign(user *models.User, tokenType string, ttl time.Duration) (string, error) {
    now := s.now()
    claims := Claims{
        UserID:  user.ID,
        Email:   user.Email,
        Name:    user.Name,
        IsStaff: user.IsStaff,
        Type:    tokenType,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   strconv.FormatInt(user.ID, 10),
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
        },
    }
    tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return tok.SignedString(s.secret)
}

func refreshKey(userID int64) string {
    return fmt.Sprintf("refresh_token:%d", userID)
}
