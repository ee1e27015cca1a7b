package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/cricscore/internal/docstore"
)

// NewService creates the coach account service.
func NewService(provider Provider, docs docstore.Store, sessions *Sessions) *Service {
	return &Service{
		provider: provider,
		docs:     docs,
		sessions: sessions,
	}
}

func profilePath(uid string) string {
	return docstore.Join("coach_profiles", uid)
}

func usernamePath(username string) string {
	return docstore.Join("username_mapping", username)
}

// Register creates the provider account, then the coach profile and the
// username mapping.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Profile, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Team = strings.TrimSpace(req.Team)

	if req.Username == "" || req.Email == "" || req.Team == "" || req.Password == "" {
		return nil, newError(ErrRejected, "All fields are required.")
	}
	if req.Password != req.ConfirmPassword {
		return nil, newError(ErrRejected, "Passwords do not match.")
	}
	if err := docstore.ValidateKey(req.Username); err != nil {
		return nil, newError(ErrRejected, "Username may not contain any of . $ # [ ] /")
	}

	taken, err := s.docs.Get(ctx, usernamePath(req.Username))
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, newError(ErrRejected, "Username already exists")
	}

	uid, err := s.provider.CreateAccount(ctx, req.Email, req.Password)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && !isKnownProviderError(e) {
			return nil, &Error{Kind: e.Kind, Code: e.Code, Message: "Registration failed: " + e.Message}
		}
		return nil, err
	}

	profile := Profile{Username: req.Username, Team: req.Team, Email: req.Email, UID: uid}
	if err := s.docs.Set(ctx, profilePath(uid), profile); err != nil {
		return nil, err
	}
	if err := s.docs.Set(ctx, usernamePath(req.Username), uid); err != nil {
		return nil, err
	}
	log.Info("Registered coach", "uid", uid, "username", req.Username, "team", req.Team)
	return &profile, nil
}

// Login authenticates against the provider and issues a session for coaches
// that have a profile.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	account, err := s.provider.Authenticate(ctx, email, password)
	if err != nil {
		if IsBusinessError(err) {
			log.Info("Login rejected", "email", email, "error", err)
			return nil, newError(ErrInvalidCredentials, "Invalid credentials")
		}
		return nil, err
	}

	profile, err := s.Profile(ctx, account.UID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		log.Warn("Account has no coach profile", "uid", account.UID)
		return nil, newError(ErrInvalidCredentials, "Invalid credentials")
	}

	username := profile.Username
	if username == "" {
		username = email
	}
	coach := Coach{ID: account.UID, Username: username, Team: profile.Team, Email: email}
	token, expiresAt, err := s.sessions.Issue(coach)
	if err != nil {
		return nil, err
	}
	log.Info("Coach logged in", "uid", coach.ID, "username", coach.Username)
	return &Session{Token: token, ExpiresAt: expiresAt, Coach: coach}, nil
}

// ResetPassword asks the provider to send a reset mail.
func (s *Service) ResetPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return newError(ErrRejected, "Email is required")
	}

	err := s.provider.SendPasswordReset(ctx, email)
	var e *Error
	if errors.As(err, &e) && !isKnownProviderError(e) {
		log.Error("Password reset rejected", "email", email, "code", e.Code)
		return &Error{Kind: e.Kind, Code: e.Code, Message: "Failed to send reset email. Please try again"}
	}
	return err
}

// Profile returns the stored coach profile, or nil when there is none.
func (s *Service) Profile(ctx context.Context, uid string) (*Profile, error) {
	if err := docstore.ValidateKey(uid); err != nil {
		return nil, nil
	}
	v, err := s.docs.Get(ctx, profilePath(uid))
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	str := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	return &Profile{Username: str("username"), Team: str("team"), Email: str("email"), UID: uid}, nil
}

// Sessions returns the session issuer used by Login.
func (s *Service) Sessions() *Sessions {
	return s.sessions
}
