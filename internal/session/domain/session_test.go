package domain_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/session/domain"
)

func randomUser() domain.User {
	return domain.User{
		ID:    gofakeit.UUID(),
		Email: gofakeit.Email(),
		Name:  gofakeit.Name(),
		Role:  "user",
	}
}

func TestLoginThenLogoutRestoresInitialState(t *testing.T) {
	initial := domain.Anonymous()

	s := domain.Login(initial, randomUser(), "token-123")
	require.True(t, s.IsAuthenticated)
	require.NotNil(t, s.User)
	require.Equal(t, "token-123", s.Token)

	s = domain.Logout(s)
	assert.Equal(t, initial, s)
}

func TestLoginWithoutTokenRejected(t *testing.T) {
	s := domain.Login(domain.Anonymous(), randomUser(), "")

	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
	assert.Empty(t, s.Token)
}

func TestAuthenticatedTracksToken(t *testing.T) {
	s := domain.Login(domain.Anonymous(), randomUser(), "tok")
	assert.Equal(t, s.Token != "", s.IsAuthenticated)

	s = domain.Logout(s)
	assert.Equal(t, s.Token != "", s.IsAuthenticated)
}

func TestUpdateUserMergesPartialFields(t *testing.T) {
	user := randomUser()
	s := domain.Login(domain.Anonymous(), user, "tok")

	name := "Updated Name"
	phone := "555-0101"
	s = domain.UpdateUser(s, domain.UserPatch{Name: &name, Phone: &phone})

	require.NotNil(t, s.User)
	assert.Equal(t, "Updated Name", s.User.Name)
	assert.Equal(t, "555-0101", s.User.Phone)
	// untouched fields survive the merge
	assert.Equal(t, user.Email, s.User.Email)
	assert.Equal(t, user.ID, s.User.ID)
	// session stays authenticated
	assert.True(t, s.IsAuthenticated)
}

func TestUpdateUserBeforeLoginIsNoop(t *testing.T) {
	name := "Nobody"
	s := domain.UpdateUser(domain.Anonymous(), domain.UserPatch{Name: &name})

	assert.Nil(t, s.User)
	assert.False(t, s.IsAuthenticated)
}

func TestUpdateUserDoesNotMutateInput(t *testing.T) {
	user := randomUser()
	original := domain.Login(domain.Anonymous(), user, "tok")

	name := "Changed"
	_ = domain.UpdateUser(original, domain.UserPatch{Name: &name})

	assert.Equal(t, user.Name, original.User.Name)
}
