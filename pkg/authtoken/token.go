package authtoken

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingKey   = errors.New("signing key is empty")
)

const (
	DefaultTokenDuration = time.Hour
	// MaxSubjectLength matches the longest caller identity a task can store.
	MaxSubjectLength = 64
)

// Manager issues and verifies HS256 tokens whose subject is the caller
// identity.
type Manager struct {
	secret   []byte
	issuer   string
	duration time.Duration
	now      func() time.Time
}

type Option func(*Manager)

func WithDuration(d time.Duration) Option {
	return func(m *Manager) {
		m.duration = d
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(secret, issuer string, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, ErrMissingKey
	}

	m := &Manager{
		secret:   []byte(secret),
		issuer:   issuer,
		duration: DefaultTokenDuration,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) Issue(subject string) (string, error) {
	if !validSubject(subject) {
		return "", ErrInvalidToken
	}

	now := m.now()
	claims := jwt.RegisteredClaims{
		Issuer:    m.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify returns the subject of a valid token.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || !validSubject(claims.Subject) {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func validSubject(subject string) bool {
	return subject != "" && len(subject) <= MaxSubjectLength && strings.TrimSpace(subject) == subject
}
