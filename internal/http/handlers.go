package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/cricscore/internal/auth"
	"github.com/mauv0809/cricscore/internal/squad"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		if _, err := s.Auth.Register(r.Context(), req); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, "Registration successful")
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		session, err := s.Auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, r, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    session.Token,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusOK, loginResponse{
			response:  response{Success: true, Message: "Login successful"},
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt.Unix(),
			Username:  session.Coach.Username,
			Team:      session.Coach.Team,
		})
	}
}

func (s *Server) ForgotPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		if err := s.Auth.ResetPassword(r.Context(), req.Email); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, "Password reset email sent successfully")
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeMessage(w, http.StatusOK, true, "Logged out")
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, response{Success: success, Message: message})
}

// writeError answers with the message of a rejected request, or a generic
// message when the failure is on our side.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := requestIDFromContext(r)

	switch {
	case squad.IsBusinessError(err), auth.IsBusinessError(err):
		log.Info("Request rejected", "requestID", requestID, "path", r.URL.Path, "reason", err)
		writeMessage(w, businessStatus(err), false, err.Error())
	case errors.Is(err, squad.ErrStoreUnavailable), errors.Is(err, auth.ErrProviderUnavailable):
		log.Error("Dependency unavailable", "requestID", requestID, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusServiceUnavailable, false, "Service temporarily unavailable. Please try again")
	default:
		log.Error("Request failed", "requestID", requestID, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, false, "Internal server error")
	}
}

func businessStatus(err error) int {
	switch {
	case errors.Is(err, squad.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, squad.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrRejected) && isRateLimited(err):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadRequest
	}
}

func isRateLimited(err error) bool {
	var e *auth.Error
	return errors.As(err, &e) && e.Code == "TOO_MANY_ATTEMPTS_TRY_LATER"
}
