package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/siteadmin/internal/client/models"
	"github.com/dmitrijs2005/siteadmin/internal/client/validate"
	"github.com/dmitrijs2005/siteadmin/internal/common"
)

const maxJSONBody = 1 << 20

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.SignIn(creds); err != nil {
		fail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	u, err := s.users.authenticate(creds.Email, creds.Password)
	if err != nil {
		unauthorized(w, "Invalid email or password")
		return
	}
	s.issue(w, http.StatusOK, "Login successful", u.ID)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decodeJSON(r, &reg); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if err := validate.SignIn(models.Credentials{Email: reg.Email, Password: reg.Password}); err != nil {
		fail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if strings.TrimSpace(reg.Name) == "" {
		fail(w, http.StatusUnprocessableEntity, "Name is required.")
		return
	}

	u, err := s.users.create(reg.Name, reg.Email, reg.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			fail(w, http.StatusConflict, "Email already registered")
			return
		}
		s.log.Error(r.Context(), "register failed", "error", err)
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.issue(w, http.StatusCreated, "Registration successful", u.ID)
}

func (s *Server) googleLogin(w http.ResponseWriter, _ *http.Request) {
	fail(w, http.StatusNotImplemented, "Google sign-in is not available on the development server")
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		badRequest(w, "Refresh token required")
		return
	}

	pair, err := s.issuer.Rotate(req.RefreshToken)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			unauthorized(w, "Refresh token expired")
			return
		}
		unauthorized(w, "Invalid refresh token")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: pair})
}

// logout revokes the caller's refresh tokens when the access token is
// still readable and succeeds either way.
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if token, found := bearer(r); found {
		if userID, err := s.issuer.Verify(token); err == nil {
			s.issuer.Revoke(userID)
		}
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Logged out"})
}

func (s *Server) issue(w http.ResponseWriter, status int, message, userID string) {
	pair, err := s.issuer.Issue(userID)
	if err != nil {
		fail(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, status, envelope{Success: true, Message: message, Data: pair})
}
