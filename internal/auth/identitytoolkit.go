package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

var _ Provider = (*IdentityToolkit)(nil)

// NewIdentityToolkit creates a provider for the project owning apiKey.
func NewIdentityToolkit(apiKey string) *IdentityToolkit {
	return NewIdentityToolkitWithURL(DefaultIdentityToolkitURL, apiKey, &http.Client{Timeout: 10 * time.Second})
}

// NewIdentityToolkitWithURL creates a provider talking to baseURL.
// Useful for tests and the auth emulator.
func NewIdentityToolkitWithURL(baseURL, apiKey string, client *http.Client) *IdentityToolkit {
	return &IdentityToolkit{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

func (c *IdentityToolkit) CreateAccount(ctx context.Context, email, password string) (string, error) {
	var resp identityResponse
	err := c.call(ctx, "signUp", identityRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp)
	if err != nil {
		return "", err
	}
	return resp.LocalID, nil
}

func (c *IdentityToolkit) Authenticate(ctx context.Context, email, password string) (Account, error) {
	var resp identityResponse
	err := c.call(ctx, "signInWithPassword", identityRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp)
	if err != nil {
		return Account{}, err
	}
	return Account{UID: resp.LocalID, Email: resp.Email, IDToken: resp.IDToken}, nil
}

func (c *IdentityToolkit) SendPasswordReset(ctx context.Context, email string) error {
	return c.call(ctx, "sendOobCode", identityRequest{Email: email, RequestType: "PASSWORD_RESET"}, nil)
}

func (c *IdentityToolkit) call(ctx context.Context, method string, body identityRequest, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/accounts:%s?key=%s", c.baseURL, method, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrProviderUnavailable, method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e identityError
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error.Message == "" {
			return fmt.Errorf("%w: %s returned %s", ErrProviderUnavailable, method, resp.Status)
		}
		log.Debug("Identity provider rejected request", "method", method, "code", e.Error.Message)
		return providerError(e.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %w", ErrProviderUnavailable, method, err)
	}
	return nil
}

var providerMessages = map[string]struct {
	kind    error
	message string
}{
	"EMAIL_EXISTS":                {ErrRejected, "Email already exists"},
	"WEAK_PASSWORD":               {ErrRejected, "Password should be at least 6 characters"},
	"EMAIL_NOT_FOUND":             {ErrRejected, "No account found with this email address"},
	"INVALID_EMAIL":               {ErrRejected, "Invalid email address format"},
	"TOO_MANY_ATTEMPTS_TRY_LATER": {ErrRejected, "Too many attempts. Please try again later"},
	"INVALID_PASSWORD":            {ErrInvalidCredentials, "Invalid credentials"},
	"INVALID_LOGIN_CREDENTIALS":   {ErrInvalidCredentials, "Invalid credentials"},
	"USER_DISABLED":               {ErrInvalidCredentials, "Invalid credentials"},
}

// providerError maps an error code such as "WEAK_PASSWORD : Password should
// be at least 6 characters" to an *Error. Unknown codes keep the raw text.
func providerError(raw string) *Error {
	code, _, _ := strings.Cut(raw, ":")
	code = strings.TrimSpace(code)

	if m, ok := providerMessages[code]; ok {
		return &Error{Kind: m.kind, Code: code, Message: m.message}
	}
	return &Error{Kind: ErrRejected, Code: code, Message: raw}
}

func isKnownProviderError(e *Error) bool {
	_, ok := providerMessages[e.Code]
	return ok
}
