package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mauv0809/cricscore/internal/docstore"
)

// Account is what the identity provider returns after a successful sign in.
type Account struct {
	UID     string
	Email   string
	IDToken string
}

// Profile is the coach record kept next to the coach's data.
type Profile struct {
	Username string `json:"username"`
	Team     string `json:"team"`
	Email    string `json:"email"`
	UID      string `json:"uid"`
}

// Coach is the authenticated principal of a request.
type Coach struct {
	ID       string
	Username string
	Team     string
	Email    string
}

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Team            string `json:"team"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// Session is a signed token together with the coach it identifies.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Coach     Coach
}

// Claims are the JWT claims of a session token. The subject is the coach id.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Team     string `json:"team"`
	Email    string `json:"email"`
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Service implements registration, login and password reset on top of a
// Provider, keeping coach profiles in the document store.
type Service struct {
	provider Provider
	docs     docstore.Store
	sessions *Sessions
}

// IdentityToolkit is a Provider backed by the Identity Toolkit REST API.
type IdentityToolkit struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

type identityRequest struct {
	Email             string `json:"email,omitempty"`
	Password          string `json:"password,omitempty"`
	RequestType       string `json:"requestType,omitempty"`
	ReturnSecureToken bool   `json:"returnSecureToken,omitempty"`
}

type identityResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type contextKey string

const coachKey contextKey = "coach"
