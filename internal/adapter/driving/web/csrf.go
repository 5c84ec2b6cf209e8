package web

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfTokenBytes = 32
)

// csrfToken returns the request's CSRF token, issuing a new cookie when the
// request has none. The same value is rendered into the review form as a
// hidden field.
func csrfToken(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	token := generateToken()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   r.TLS != nil,
	})
	return token
}

// validateCSRF checks that the CSRF token (from header or form field) matches
// the cookie. Returns true if the tokens match and are non-empty.
func validateCSRF(r *http.Request) bool {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	// Check header first, then fall back to form field.
	token := r.Header.Get("X-CSRF-Token")
	if token == "" {
		token = r.FormValue(csrfFormField)
	}

	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(cookie.Value)) == 1
}

func generateToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: failed to generate random token: " + err.Error())
	}
	return hex.EncodeToString(b)
}
