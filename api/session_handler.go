package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/utils"
)

type SessionRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Message  string `json:"message"`
	UserID   string `json:"user_id,omitempty"`
	Email    string `json:"email,omitempty"`
	IsAdmin  bool   `json:"is_admin"`
	SignedIn bool   `json:"signed_in"`
}

// SignInHandler exchanges a provider token for a session cookie and announces
// the transition to signed in.
func (s *Server) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Sign In")

	token, err := readToken(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if token == "" {
		utils.RespondError(w, &logMessageBuilder, "Token is required", http.StatusBadRequest)
		return
	}

	identity, err := utils.ValidateToken(token)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Token rejected: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	sess := s.gate.Transition(r.Context(), identity)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Signed in user=%s admin=%v", sess.UserID(), sess.IsAdmin))

	if utils.WantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sessionResponse{
		Message:  "Signed in",
		UserID:   identity.UserID,
		Email:    identity.Email,
		IsAdmin:  sess.IsAdmin,
		SignedIn: true,
	})
}

// SignOutHandler clears the session cookie and announces the transition to
// signed out.
func (s *Server) SignOutHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Sign Out")

	auth.ClearSessionCookie(w, s.opts.SecureCookies)
	if !auth.SessionFrom(r.Context()).Expired {
		s.gate.Transition(r.Context(), nil)
	}
	utils.AddToLogMessage(&logMessageBuilder, "Signed out")

	if utils.WantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sessionResponse{Message: "Signed out"})
}

// readToken accepts a JSON body, a form field or a bearer header.
func readToken(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req SessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return strings.TrimSpace(req.Token), nil
	}
	if token := strings.TrimSpace(r.FormValue("token")); token != "" {
		return token, nil
	}
	token, err := auth.TokenFrom(r)
	if err != nil {
		return "", nil
	}
	return token, nil
}
