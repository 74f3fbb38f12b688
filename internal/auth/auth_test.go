package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	user  *User
	saves int
}

func (m *memStore) LoadUser() *User { return m.user }
func (m *memStore) SaveUser(u *User) error {
	m.saves++
	m.user = u
	return nil
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		c    Credentials
		want string
	}{
		{"missing email", Credentials{Password: "secret1"}, MsgMissingFields},
		{"missing password", Credentials{Email: "a@b.c"}, MsgMissingFields},
		{"blank email", Credentials{Email: "   ", Password: "secret1"}, MsgMissingFields},
		{"register without username", Credentials{Email: "a@b.c", Password: "secret1", Register: true}, MsgMissingFields},
		{"short password", Credentials{Email: "a@b.c", Password: "12345"}, MsgShortPassword},
		{"valid login", Credentials{Email: "a@b.c", Password: "123456"}, ""},
		{"valid register", Credentials{Email: "a@b.c", Password: "123456", Username: "ann", Register: true}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.c)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.want, verr.Msg)
		})
	}
}

func TestLoginDerivesUsernameFromEmail(t *testing.T) {
	u, err := Login("jane.doe@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", u.Username)
	assert.Equal(t, "jane.doe@example.com", u.Email)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "J", u.Initial())
}

func TestRegisterKeepsUsername(t *testing.T) {
	u, err := Register("jane@example.com", "hunter22", "janed")
	require.NoError(t, err)
	assert.Equal(t, "janed", u.Username)
}

func TestSessionStoresOnlyValidUsers(t *testing.T) {
	store := &memStore{}
	s := NewSession(store)

	_, err := s.SignIn(Credentials{Email: "a@b.c", Password: "12345"})
	assert.Error(t, err)
	assert.Nil(t, s.Current())
	assert.Zero(t, store.saves)

	u, err := s.SignIn(Credentials{Email: "a@b.c", Password: "123456"})
	require.NoError(t, err)
	require.NotNil(t, s.Current())
	assert.Equal(t, u.ID, s.Current().ID)

	require.NoError(t, s.Logout())
	assert.Nil(t, s.Current())
}
