package server

import (
	"encoding/json"
	"net/http"
	"net/url"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json"

	// VisitorCookie names the cookie carrying the visitor id
	VisitorCookie = "adminSessionId"
	// visitorCookieMaxAge matches how long a persisted token can be restored
	visitorCookieMaxAge = 30 * 24 * 60 * 60
)

// SetVisitorCookie stores the visitor id in the browser. A negative maxAge
// deletes the cookie.
func (s *Server) SetVisitorCookie(w http.ResponseWriter, r *http.Request, visitorID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// formPayload copies every non-empty submitted field into a payload map.
// Fields are forwarded to the collaborator API verbatim.
func formPayload(form url.Values) map[string]any {
	payload := make(map[string]any, len(form))
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		if values[0] == "" {
			continue
		}
		payload[key] = values[0]
	}
	return payload
}
