// Package passreset mints and checks the one-time password-reset tokens.
//
// Tokens are never stored. A token binds the user id, the current password
// hash, the last-login timestamp and an expiry instant under an HMAC with
// the server secret. Changing the password (or logging in) changes the
// inputs, which retroactively invalidates every outstanding token for that
// user without any consumed-flag bookkeeping.
package passreset

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/hex"
    "fmt"
    "strconv"
    "strings"
    "time"

    "userhub/internal/models"
)

type Generator struct {
    secret []byte
    ttl    time.Duration
    now    func() time.Time
}

func NewGenerator(secret string, ttl time.Duration) *Generator {
    return &Generator{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Make builds a reset token for the user's current state.
func (g *Generator) Make(u *models.User) string {
    expiry := g.now().Add(g.ttl).Unix()
    return strconv.FormatInt(expiry, 36) + "-" + g.signature(u, expiry)
}

// Check reports whether the token is unexpired and matches the user's
// current state. Any parse failure means the token is invalid.
func (g *Generator) Check(u *models.User, token string) bool {
    ts, sig, ok := strings.Cut(token, "-")
    if !ok {
        return false
    }
    expiry, err := strconv.ParseInt(ts, 36, 64)
    if err != nil {
        return false
    }
    if g.now().Unix() > expiry {
        return false
    }
    want := g.signature(u, expiry)
    return hmac.Equal([]byte(sig), []byte(want))
}

func (g *Generator) signature(u *models.User, expiry int64) string {
    var lastLogin int64
    if u.LastLogin != nil {
        lastLogin = u.LastLogin.Unix()
    }
    mac := hmac.New(sha256.New, g.secret)
    fmt.Fprintf(mac, "%d|%s|%d|%d", u.ID, u.PasswordHash, lastLogin, expiry)
    return hex.EncodeToString(mac.Sum(nil))
}

// EncodeUID produces the opaque user-id segment embedded in reset links.
func EncodeUID(id int64) string {
    return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(s string) (int64, error) {
    raw, err := base64.RawURLEncoding.DecodeString(s)
    if err != nil {
        return 0, err
    }
    return strconv.ParseInt(string(raw), 10, 64)
}
