package waitingroom

import (
	"net/url"
	"sync"
)

// Session is the slice of the host application's auth state the waiting room
// needs: a bearer token, a way to invalidate it, and a login redirect that
// preserves the page the user was on.
type Session interface {
	Token() string
	ClearCredentials()
	LoginURL(callbackURL string) string
}

// MemorySession is a Session held in process memory.
type MemorySession struct {
	mu        sync.RWMutex
	token     string
	loginPath string
}

func NewMemorySession(token, loginPath string) *MemorySession {
	if loginPath == "" {
		loginPath = "/login"
	}
	return &MemorySession{token: token, loginPath: loginPath}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) ClearCredentials() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// LoginURL builds the login redirect with the original path carried in the
// callbackUrl query parameter.
func (s *MemorySession) LoginURL(callbackURL string) string {
	if callbackURL == "" {
		return s.loginPath
	}
	return s.loginPath + "?callbackUrl=" + url.QueryEscape(callbackURL)
}
