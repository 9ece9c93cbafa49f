package auth

import (
	"net/http"
)

// SessionCookieName names the cookie carrying the session token.
const SessionCookieName = "noteslite_session"

// CookiePolicy decides the attributes of the session cookie.
type CookiePolicy struct {
	Secure bool
}

// NewCookiePolicy returns the policy for the given environment. The Secure
// flag is set only in production.
func NewCookiePolicy(production bool) CookiePolicy {
	return CookiePolicy{Secure: production}
}

// Session returns the cookie carrying token for SessionLifetime.
func (p CookiePolicy) Session(token string) *http.Cookie {
	return p.cookie(token, int(SessionLifetime.Seconds()))
}

// Expired returns an empty cookie that makes the client drop the session.
func (p CookiePolicy) Expired() *http.Cookie {
	return p.cookie("", -1)
}

// maxAge follows net/http: negative is sent as "Max-Age=0".
func (p CookiePolicy) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
