package web

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "frontdesk_flash"

// Flash notifications survive exactly one redirect: a mutating action sets
// the cookie, the next page render pops and clears it.

func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + ":" + message),
		Path:     "/",
		HttpOnly: true,
	})
}

func setSuccess(w http.ResponseWriter, message string) { setFlash(w, "success", message) }
func setError(w http.ResponseWriter, message string)   { setFlash(w, "error", message) }

func popFlash(w http.ResponseWriter, r *http.Request) (kind, message string) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	decoded, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", ""
	}
	kind, message, ok := strings.Cut(decoded, ":")
	if !ok {
		return "", ""
	}
	return kind, message
}
