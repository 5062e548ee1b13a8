package handlers

import (
	"net/http"

	"github.com/siddug/sag/internal/auth"
)

// handleLogin validates the admin phrase and sets the session cookie
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	token, ok := h.Auth.Login(req.Phrase)
	if !ok {
		respondError(w, Unauthorized("Invalid phrase"))
		return
	}

	auth.SetSessionCookie(w, token)

	adminID, _ := h.Auth.ValidateToken(token)
	respondOK(w, LoginResponse{AdminID: adminID})
}

// handleLogout clears the session cookie
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}
