package auth

// Principal is the identity snapshot held by an authenticated Session.
// It never carries credentials.
type Principal struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}

// Session holds at most one authenticated Principal at a time.
// The zero value is an anonymous session, ready for use.
//
// Sessions are process-local: they are created on successful
// authentication and die on logout or process end.
type Session struct {
	principal *Principal
}

func NewSession() *Session {
	return &Session{}
}

// Authenticated returns a Session pre-bound to the given principal.
// Used by the API layer when rebuilding a session from verified token claims.
func Authenticated(p Principal) *Session {
	return &Session{principal: &p}
}

// Login binds the session to a principal, replacing any previous one.
func (s *Session) Login(p Principal) {
	s.principal = &p
}

// Logout unconditionally transitions the session to anonymous; idempotent.
func (s *Session) Logout() {
	s.principal = nil
}

// Current returns the authenticated principal, if any.
func (s *Session) Current() (Principal, bool) {
	if s == nil || s.principal == nil {
		return Principal{}, false
	}
	return *s.principal, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.Current()
	return ok
}
