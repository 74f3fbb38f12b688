package auth

// UserStore persists the single current user
type UserStore interface {
	LoadUser() *User
	SaveUser(u *User) error
}

// Session ties the sign-in flow to persistence
type Session struct {
	store UserStore
}

func NewSession(store UserStore) *Session {
	return &Session{store: store}
}

// Current returns the stored user, or nil when signed out
func (s *Session) Current() *User {
	return s.store.LoadUser()
}

// SignIn validates, creates, and stores the user. Nothing is stored when
// validation fails.
func (s *Session) SignIn(c Credentials) (User, error) {
	u, err := SignIn(c)
	if err != nil {
		return User{}, err
	}
	if err := s.store.SaveUser(&u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Logout forgets the current user
func (s *Session) Logout() error {
	return s.store.SaveUser(nil)
}
