package api

import (
	"net/http"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/middleware"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !rt.decode(w, r, &req) {
		return
	}
	if err := rt.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "email and password are required"})
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: res.Token, User: res.User})
}

// handleSession restores a session from its bearer token: the embedded user
// id must still resolve against the directory.
func (rt *Router) handleSession(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}
	u, err := rt.auth.Restore(uid)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleLogout exists for symmetry with the frontend flow. Sessions are
// stateless tokens, so the server has nothing to clear.
func (rt *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
