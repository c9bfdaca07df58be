// auth.go - Signup and login handlers backed by the user collection.
//
// Credentials are checked against bcrypt hashes in users.json. There is no
// session or token management; login simply reports the matched account.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"showcase-drop/internal/store"
)

type signupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the account shape returned to clients. The stored
// password hash is deliberately withheld.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.cfg.Store.CreateUser(req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		if errors.Is(err, store.ErrValidation) || errors.Is(err, store.ErrConflict) {
			GetMetrics().RecordSignupRejected()
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rid := RequestIDFromContext(r.Context())
		log.Printf("rid=%s msg=signup_failed err=%v", rid, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	GetMetrics().RecordSignup()
	log.Printf("rid=%s msg=signup_ok user=%s", RequestIDFromContext(r.Context()), user.Username)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "signup successful",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The front-end sends the identifier as either field.
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}

	user, err := s.cfg.Store.Authenticate(identifier, req.Password)
	if err != nil {
		GetMetrics().RecordLogin(false)
		if errors.Is(err, store.ErrBadCredentials) {
			writeError(w, http.StatusForbidden, "Invalid credentials")
			return
		}
		rid := RequestIDFromContext(r.Context())
		log.Printf("rid=%s msg=login_failed err=%v", rid, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	GetMetrics().RecordLogin(true)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user": userResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	})
}
