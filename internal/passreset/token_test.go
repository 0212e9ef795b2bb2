package passreset

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "userhub/internal/models"
)

func testGenerator() *Generator {
    return NewGenerator("reset-secret", time.Hour)
}

func testUser() *models.User {
    lastLogin := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
    return &models.User{ID: 7, PasswordHash: "$2a$10$somehash", LastLogin: &lastLogin}
}

func TestMakeAndCheck(t *testing.T) {
    t.Parallel()
    g := testGenerator()
    u := testUser()

    tok := g.Make(u)
    assert.True(t, g.Check(u, tok))
}

func TestCheck_Expired(t *testing.T) {
    t.Parallel()
    g := testGenerator()
    u := testUser()

    tok := g.Make(u)
    g.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
    assert.False(t, g.Check(u, tok))
}

func TestCheck_InvalidatedByPasswordChange(t *testing.T) {
    t.Parallel()
    g := testGenerator()
    u := testUser()

    tok := g.Make(u)
    u.PasswordHash = "$2a$10$differenthash"
    assert.False(t, g.Check(u, tok), "token derived from the old hash must die with it")
}

func TestCheck_InvalidatedByLogin(t *testing.T) {
    t.Parallel()
    g := testGenerator()
    u := testUser()

    tok := g.Make(u)
    newLogin := time.Now()
    u.LastLogin = &newLogin
    assert.False(t, g.Check(u, tok))
}

func TestCheck_WrongUser(t *testing.T) {
    t.Parallel()
    g := testGenerator()
    u := testUser()

    tok := g.Make(u)
    other := testUser()
    other.ID = 8
    assert.False(t, g.Check(other, tok))
}

func TestCheck_Malformed(t *testing.T) {
    t.Parallel()
    g := testGenerator()
    u := testUser()

    for _, tok := range []string{"", "nodash", "zz!-sig", "123-"} {
        assert.False(t, g.Check(u, tok), "token %q", tok)
    }
}

func TestUIDEncoding(t *testing.T) {
    t.Parallel()

    enc := EncodeUID(12345)
    id, err := DecodeUID(enc)
    require.NoError(t, err)
    assert.Equal(t, int64(12345), id)

    _, err = DecodeUID("!!!not-base64!!!")
    assert.Error(t, err)

    _, err = DecodeUID("zz") // decodes, but not to a decimal id
    assert.Error(t, err)
}
