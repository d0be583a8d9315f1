package middleware

import (
	"net/http"
	"strings"
)

// SessionCookie is the browser-flow token carrier. Programmatic callers use
// an Authorization bearer header instead.
const SessionCookie = "pc_session"

// ExtractToken pulls a session token out of the request. An explicit
// Authorization header is caller-asserted per request and wins over the
// ambient cookie when both are present. A missing Cookie header is fine;
// net/http handles the semicolon-delimited parsing.
func ExtractToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
	}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
