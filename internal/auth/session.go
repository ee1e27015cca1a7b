package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultSessionTTL = 24 * time.Hour

// NewSessions creates a session issuer. A zero ttl means DefaultSessionTTL.
func NewSessions(secret []byte, ttl time.Duration) *Sessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Sessions{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for coach.
func (s *Sessions) Issue(coach Coach) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   coach.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: coach.Username,
		Team:     coach.Team,
		Email:    coach.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify checks the signature and expiry of token and returns its coach.
func (s *Sessions) Verify(token string) (Coach, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Coach{}, &Error{Kind: ErrUnauthenticated, Message: "Not authenticated"}
	}
	if claims.Subject == "" {
		return Coach{}, newError(ErrUnauthenticated, "Not authenticated")
	}
	return Coach{
		ID:       claims.Subject,
		Username: claims.Username,
		Team:     claims.Team,
		Email:    claims.Email,
	}, nil
}

// WithCoach returns a copy of ctx carrying the authenticated coach.
func WithCoach(ctx context.Context, coach Coach) context.Context {
	return context.WithValue(ctx, coachKey, coach)
}

// CoachFromContext returns the coach stored by WithCoach.
func CoachFromContext(ctx context.Context) (Coach, bool) {
	coach, ok := ctx.Value(coachKey).(Coach)
	return coach, ok
}
