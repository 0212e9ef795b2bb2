package token

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "userhub/internal/models"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func testUser() *models.User {
    return &models.User{ID: 42, Email: "user@example.com", Name: "User", IsStaff: true}
}

func newStatelessService() *Service {
    return NewService(testSecret, 15*time.Minute, 168*time.Hour, nil)
}

func TestIssueAndValidate_RoundTrip(t *testing.T) {
    t.Parallel()
    svc := newStatelessService()

    pair, err := svc.Issue(context.Background(), testUser())
    require.NoError(t, err)
    require.NotEmpty(t, pair.Access)
    require.NotEmpty(t, pair.Refresh)

    claims, err := svc.Validate(pair.Access, TypeAccess)
    require.NoError(t, err)
    assert.Equal(t, int64(42), claims.UserID)
    assert.Equal(t, "42", claims.Subject)
    assert.Equal(t, "user@example.com", claims.Email)
    assert.True(t, claims.IsStaff)
    assert.Equal(t, TypeAccess, claims.Type)
}

func TestValidate_WrongType(t *testing.T) {
    t.Parallel()
    svc := newStatelessService()

    pair, err := svc.Issue(context.Background(), testUser())
    require.NoError(t, err)

    _, err = svc.Validate(pair.Refresh, TypeAccess)
    assert.ErrorIs(t, err, ErrTokenInvalid)
    _, err = svc.Validate(pair.Access, TypeRefresh)
    assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
    t.Parallel()
    svc := NewService(testSecret, 15*time.Minute, 168*time.Hour, nil)
    svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

    pair, err := svc.Issue(context.Background(), testUser())
    require.NoError(t, err)

    _, err = svc.Validate(pair.Access, TypeAccess)
    assert.ErrorIs(t, err, ErrTokenExpired, "expiry must be reported as expired, not invalid")
}

func TestValidate_WrongSecret(t *testing.T) {
    t.Parallel()
    svc := newStatelessService()
    other := NewService("a-different-secret-also-32-chars!!", 15*time.Minute, 168*time.Hour, nil)

    pair, err := svc.Issue(context.Background(), testUser())
    require.NoError(t, err)

    _, err = other.Validate(pair.Access, TypeAccess)
    assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
    t.Parallel()
    _, err := newStatelessService().Validate("not.a.jwt", TypeAccess)
    assert.ErrorIs(t, err, ErrTokenInvalid)
}

func setupRedis(t *testing.T) *redis.Client {
    t.Helper()
    mr, err := miniredis.Run()
    require.NoError(t, err)
    t.Cleanup(mr.Close)
    return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCheckRefresh_AllowList(t *testing.T) {
    t.Parallel()
    svc := NewService(testSecret, 15*time.Minute, 168*time.Hour, setupRedis(t))
    ctx := context.Background()

    pair, err := svc.Issue(ctx, testUser())
    require.NoError(t, err)

    claims, err := svc.CheckRefresh(ctx, pair.Refresh)
    require.NoError(t, err)
    assert.Equal(t, int64(42), claims.UserID)
}

func TestCheckRefresh_RotationInvalidatesPrevious(t *testing.T) {
    t.Parallel()
    svc := NewService(testSecret, 15*time.Minute, 168*time.Hour, setupRedis(t))
    svc.now = func() time.Time { return time.Now().Add(-2 * time.Second) }
    ctx := context.Background()

    first, err := svc.Issue(ctx, testUser())
    require.NoError(t, err)

    // A later issue rotates the stored refresh token.
    svc.now = time.Now
    second, err := svc.Issue(ctx, testUser())
    require.NoError(t, err)

    _, err = svc.CheckRefresh(ctx, first.Refresh)
    assert.ErrorIs(t, err, ErrTokenRevoked)

    _, err = svc.CheckRefresh(ctx, second.Refresh)
    assert.NoError(t, err)
}

func TestCheckRefresh_Revoked(t *testing.T) {
    t.Parallel()
    svc := NewService(testSecret, 15*time.Minute, 168*time.Hour, setupRedis(t))
    ctx := context.Background()

    pair, err := svc.Issue(ctx, testUser())
    require.NoError(t, err)
    require.NoError(t, svc.Revoke(ctx, 42))

    _, err = svc.CheckRefresh(ctx, pair.Refresh)
    assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestCheckRefresh_StatelessWithoutRedis(t *testing.T) {
    t.Parallel()
    svc := newStatelessService()
    ctx := context.Background()

    first, err := svc.Issue(ctx, testUser())
    require.NoError(t, err)
    _, err = svc.Issue(ctx, testUser())
    require.NoError(t, err)

    // No allow-list: an older refresh token still validates.
    _, err = svc.CheckRefresh(ctx, first.Refresh)
    assert.NoError(t, err)
}
