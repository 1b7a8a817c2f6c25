// Package credential issues and verifies the signed user credentials that
// relay clients present at login.
package credential

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	issuer     = "roomkit-relay"
	appIDClaim = "app:id"
)

var (
	ErrEmptySecret = errors.New("credential: empty secret")
	ErrMismatch    = errors.New("credential: identity mismatch")
)

type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a credential for userID within appID.
func (s *Signer) Issue(appID uint32, userID string) (string, error) {
	now := s.now()
	token, err := jwt.NewBuilder().
		Issuer(issuer).
		Subject(userID).
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Build()
	if err != nil {
		return "", err
	}
	if err := token.Set(appIDClaim, appID); err != nil {
		return "", fmt.Errorf("unable set `%s` claim: %w", appIDClaim, err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// Verify checks signature, expiry and that the credential belongs to
// appID/userID.
func (s *Signer) Verify(appID uint32, userID, credential string) error {
	token, err := jwt.Parse([]byte(credential),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(issuer),
		jwt.WithSubject(userID),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	)
	if err != nil {
		return err
	}
	raw, ok := token.Get(appIDClaim)
	if !ok {
		return ErrMismatch
	}
	// numbers come back from JSON as float64
	if v, ok := raw.(float64); !ok || uint32(v) != appID {
		return ErrMismatch
	}
	return nil
}
