// Package theme stores the reader's light/dark preference.
//
// The preference is dark, light or absent. Absent means the page follows the
// system color scheme. Toggling always stores an explicit choice, flipping
// whichever theme is currently displayed.
package theme

import (
	"context"
	"net/http"
	"strings"
)

// Theme is a stored color scheme preference.
type Theme string

// Preferences. System is the absent preference.
const (
	System Theme = ""
	Light  Theme = "light"
	Dark   Theme = "dark"
)

// Parse returns the preference named by s. Unknown values yield System, false.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	default:
		return System, false
	}
}

// Resolve returns the displayed theme for a preference.
func Resolve(pref Theme, systemDark bool) Theme {
	switch pref {
	case Dark, Light:
		return pref
	}
	if systemDark {
		return Dark
	}
	return Light
}

// Toggle returns the preference to store after toggling from the displayed
// theme.
func Toggle(displayed Theme) Theme {
	if displayed == Dark {
		return Light
	}
	return Dark
}

// ClientHint is the request header carrying the system color scheme.
const ClientHint = "Sec-CH-Prefers-Color-Scheme"

// SystemDark reports whether the client hint asks for a dark scheme.
func SystemDark(r *http.Request) bool {
	v := strings.Trim(r.Header.Get(ClientHint), `" `)
	return strings.EqualFold(v, "dark")
}

// Cookie settings.
const (
	CookieName   = "theme"
	CookieMaxAge = 365 * 24 * 60 * 60
)

// CookieStore persists the preference in a cookie.
type CookieStore struct {
	Secure bool
}

// Get reads the preference from r. A missing or invalid cookie is System.
func (s CookieStore) Get(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return System
	}
	t, _ := Parse(c.Value)
	return t
}

// Set writes the preference. System clears the cookie.
func (s CookieStore) Set(w http.ResponseWriter, t Theme) {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   CookieMaxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Secure,
	}
	if t == System {
		c.Value = ""
		c.MaxAge = -1
	}
	http.SetCookie(w, c)
}

type ctxKey struct{}

// State is the preference of the current request.
type State struct {
	Pref       Theme
	SystemDark bool
}

// Displayed returns the theme the page renders with.
func (st State) Displayed() Theme {
	return Resolve(st.Pref, st.SystemDark)
}

// Middleware reads the preference once per request and stores it in the
// request context. It also asks clients for the color scheme hint.
func (s CookieStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", ClientHint)
		w.Header().Add("Vary", ClientHint)

		st := State{Pref: s.Get(r), SystemDark: SystemDark(r)}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, st)))
	})
}

// FromContext returns the state stored by Middleware, or the zero State.
func FromContext(ctx context.Context) State {
	st, _ := ctx.Value(ctxKey{}).(State)
	return st
}
