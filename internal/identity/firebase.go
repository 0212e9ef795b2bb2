// Package identity verifies third-party identity tokens and maps them to
// the small set of claims the rest of the system needs.
package identity

import (
    "context"
    "crypto/rsa"
    "crypto/x509"
    "encoding/json"
    "encoding/pem"
    "errors"
    "fmt"
    "net/http"
    "regexp"
    "strconv"
    "sync"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

var (
    ErrInvalidIdentityToken = errors.New("identity token is invalid")
    ErrMissingEmailClaim    = errors.New("identity token carries no email claim")
    ErrProviderUnreachable  = errors.New("identity provider is unreachable")
)

// Identity is the verified claim set extracted from a provider token.
type Identity struct {
    Subject string
    Email   string
    Name    string
}

// Verifier checks a third-party token and returns the identity it asserts.
type Verifier interface {
    Verify(ctx context.Context, token string) (*Identity, error)
}

// Firebase ID tokens are RS256 JWTs signed with Google-managed keys
// published as an x509 certificate set. The set is fetched over HTTP and
// cached for the duration the response headers allow.
const firebaseCertURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

type FirebaseVerifier struct {
    projectID string
    certURL   string
    client    *http.Client

    mu        sync.Mutex
    keys      map[string]*rsa.PublicKey
    keyExpiry time.Time
}

func NewFirebaseVerifier(projectID string) *FirebaseVerifier {
    return &FirebaseVerifier{
        projectID: projectID,
        certURL:   firebaseCertURL,
        client:    &http.Client{Timeout: 10 * time.Second},
    }
}

type firebaseClaims struct {
    Email string `json:"email"`
    Name  string `json:"name"`
    jwt.RegisteredClaims
}

func (v *FirebaseVerifier) Verify(ctx context.Context, tokenStr string) (*Identity, error) {
    keys, err := v.signingKeys(ctx)
    if err != nil {
        return nil, fmt.Errorf("%w: %s", ErrProviderUnreachable, err)
    }

    claims := &firebaseClaims{}
    tok, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
            return nil, errors.New("unexpected signing method")
        }
        kid, _ := t.Header["kid"].(string)
        key, ok := keys[kid]
        if !ok {
            return nil, errors.New("unknown signing key")
        }
        return key, nil
    },
        jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
        jwt.WithAudience(v.projectID),
        jwt.WithExpirationRequired(),
    )
    if err != nil || !tok.Valid {
        return nil, ErrInvalidIdentityToken
    }
    if claims.Subject == "" {
        return nil, ErrInvalidIdentityToken
    }
    if claims.Email == "" {
        return nil, ErrMissingEmailClaim
    }

    return &Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

var maxAgeRe = regexp.MustCompile(`max-age=(\d+)`)

func (v *FirebaseVerifier) signingKeys(ctx context.Context) (map[string]*rsa.PublicKey, error) {
    v.mu.Lock()
    defer v.mu.Unlock()

    if v.keys != nil && time.Now().Before(v.keyExpiry) {
        return v.keys, nil
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certURL, nil)
    if err != nil {
        return nil, err
    }
    resp, err := v.client.Do(req)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("cert endpoint returned %d", resp.StatusCode)
    }

    var certs map[string]string
    if err := json.NewDecoder(resp.Body).Decode(&certs); err != nil {
        return nil, err
    }

    keys := make(map[string]*rsa.PublicKey, len(certs))
    for kid, certPEM := range certs {
        block, _ := pem.Decode([]byte(certPEM))
        if block == nil {
            continue
        }
        cert, err := x509.ParseCertificate(block.Bytes)
        if err != nil {
            continue
        }
        if pub, ok := cert.PublicKey.(*rsa.PublicKey); ok {
            keys[kid] = pub
        }
    }
    if len(keys) == 0 {
        return nil, errors.New("cert endpoint returned no usable keys")
    }

    ttl := time.Hour
    if m := maxAgeRe.FindStringSubmatch(resp.Header.Get("Cache-Control")); m != nil {
        if secs, err := strconv.Atoi(m[1]); err == nil && secs > 0 {
            ttl = time.Duration(secs) * time.Second
        }
    }

    v.keys = keys
    v.keyExpiry = time.Now().Add(ttl)
    return keys, nil
}
