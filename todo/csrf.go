package todo

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"github.com/stevemurr/todo-server/web"
)

// SessionTokenKey is the session key holding the CSRF token.
const SessionTokenKey = "_csrf_token"

// CSRFToken returns the session's CSRF token, minting a 32 hex character
// token on first use.
func CSRFToken(s *web.Session) string {
	if tok := s.GetString(SessionTokenKey); tok != "" {
		return tok
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	tok := hex.EncodeToString(b)
	s.Set(SessionTokenKey, tok)
	return tok
}

// validCSRF reports whether the submitted token matches the session token.
// Both must be non-empty.
func validCSRF(c *web.Context) bool {
	sessionTok := c.Session.GetString(SessionTokenKey)
	requestTok := c.Request.FormValue("csrf_token")
	if sessionTok == "" || requestTok == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sessionTok), []byte(requestTok)) == 1
}
