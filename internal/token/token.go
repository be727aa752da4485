package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const issuer = "rentd"

// Payload is the verified content of an access token.
type Payload struct {
	UserID    string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Service signs and verifies HMAC access tokens. The signing scheme is fixed
// to HS256; anything else in a presented token is rejected.
type Service struct {
	secret     []byte
	expiration time.Duration
}

func NewService(secret string, expiration time.Duration) (*Service, error) {
	if len(secret) == 0 {
		return nil, errors.New("empty token secret")
	}
	return &Service{secret: []byte(secret), expiration: expiration}, nil
}

type claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

func (s *Service) Generate(userID string, roles []string) (string, error) {
	now := time.Now()

	prefixed := make([]string, 0, len(roles))
	for _, r := range roles {
		prefixed = append(prefixed, "ROLE_"+r)
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Roles: prefixed,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	})

	return t.SignedString(s.secret)
}

func (s *Service) parse(value string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(value, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Verify reports whether the given token is well-formed, carries a valid
// signature and has not expired.
func (s *Service) Verify(value string) bool {
	_, err := s.parse(value)
	return err == nil
}

// ExtractUserID returns the subject claim of a token. The token must have
// been verified first.
func (s *Service) ExtractUserID(value string) (string, error) {
	c, err := s.parse(value)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

// ExtractRoles returns the roles claim of a token, never nil.
func (s *Service) ExtractRoles(value string) ([]string, error) {
	c, err := s.parse(value)
	if err != nil {
		return nil, err
	}
	if c.Roles == nil {
		return []string{}, nil
	}
	return c.Roles, nil
}

// ParseAndValidate verifies the token and returns its payload, or nil when
// the token is invalid, malformed or expired. It never returns an error for
// a bad token; an absent payload is the caller's signal to proceed
// unauthenticated.
func (s *Service) ParseAndValidate(value string) *Payload {
	c, err := s.parse(value)
	if err != nil {
		return nil
	}

	roles := c.Roles
	if roles == nil {
		roles = []string{}
	}

	p := &Payload{UserID: c.Subject, Roles: roles}
	if c.IssuedAt != nil {
		p.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		p.ExpiresAt = c.ExpiresAt.Time
	}
	return p
}
