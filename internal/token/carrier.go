// Package token owns the bearer-token cookie: one place parses, writes and
// clears it, instead of every handler re-implementing cookie string search.
package token

import "net/http"

const DefaultCookieName = "accessToken"

// Carrier reads and writes the bearer-token cookie on the browser side of
// the gateway. The token itself stays opaque; validity is the backend's call.
type Carrier struct {
	cookieName string
	maxAge     int
	secure     bool
}

func NewCarrier(cookieName string, maxAgeSeconds int, secure bool) *Carrier {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	return &Carrier{cookieName: cookieName, maxAge: maxAgeSeconds, secure: secure}
}

// FromRequest returns the bearer token carried by the request cookie.
// Absence is not an error: the second return is false and callers treat the
// request as unauthenticated.
func (c *Carrier) FromRequest(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.cookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// Write sets the token cookie on the response with the configured lifetime.
func (c *Carrier) Write(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   c.maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear expires the token cookie.
func (c *Carrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *Carrier) CookieName() string { return c.cookieName }
