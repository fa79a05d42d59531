package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/client"
	"github.com/tair/storefront/internal/session/domain"
	sessionstore "github.com/tair/storefront/internal/session/store"
	"github.com/tair/storefront/pkg/snapshot"
)

type stubAuthenticator struct {
	result client.LoginResult
	err    error
}

func (s *stubAuthenticator) LoginWithCredentials(context.Context, string, string) (client.LoginResult, error) {
	if s.err != nil {
		return client.LoginResult{}, s.err
	}
	return s.result, nil
}

func newSessionStore(t *testing.T) *sessionstore.Store {
	t.Helper()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)
	return sessionstore.New(snapshots, nil)
}

func TestLogin(t *testing.T) {
	sessions := newSessionStore(t)
	auth := &stubAuthenticator{result: client.LoginResult{
		User:  domain.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"},
		Token: "token-abc",
	}}

	session, err := NewLoginHandler(sessions, auth).Handle(context.Background(), LoginCommand{
		SessionID: "sess-1",
		Email:     "alice@example.com",
		Password:  "secret",
	})
	require.NoError(t, err)

	assert.True(t, session.IsAuthenticated)
	require.NotNil(t, session.User)
	assert.Equal(t, "Alice", session.User.Name)
	assert.Equal(t, "token-abc", session.Token)
}

func TestLogin_ServerErrorPassesThrough(t *testing.T) {
	sessions := newSessionStore(t)
	auth := &stubAuthenticator{err: &client.Error{
		Kind:    client.KindServer,
		Status:  400,
		Message: "invalid email or password",
	}}

	_, err := NewLoginHandler(sessions, auth).Handle(context.Background(), LoginCommand{
		SessionID: "sess-1",
		Email:     "alice@example.com",
		Password:  "wrong",
	})
	require.Error(t, err)

	var apiErr *client.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid email or password", apiErr.Message)

	// Failed login leaves the session anonymous
	assert.False(t, sessions.Get(context.Background(), "sess-1").IsAuthenticated)
}

func TestLogin_Validation(t *testing.T) {
	handler := NewLoginHandler(newSessionStore(t), &stubAuthenticator{})
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  LoginCommand
	}{
		{"missing session", LoginCommand{Email: "a@b.c", Password: "x"}},
		{"missing email", LoginCommand{SessionID: "s", Password: "x"}},
		{"missing password", LoginCommand{SessionID: "s", Email: "a@b.c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tc.cmd)
			assert.Error(t, err)
		})
	}
}

func TestLogoutAfterLogin(t *testing.T) {
	sessions := newSessionStore(t)
	ctx := context.Background()

	auth := &stubAuthenticator{result: client.LoginResult{
		User:  domain.User{ID: "u-1", Email: "alice@example.com"},
		Token: "token-abc",
	}}
	_, err := NewLoginHandler(sessions, auth).Handle(ctx, LoginCommand{
		SessionID: "sess-1", Email: "alice@example.com", Password: "secret",
	})
	require.NoError(t, err)

	session, err := NewLogoutHandler(sessions).Handle(ctx, LogoutCommand{SessionID: "sess-1"})
	require.NoError(t, err)

	assert.False(t, session.IsAuthenticated)
	assert.Nil(t, session.User)
	assert.Empty(t, session.Token)
}

func TestLogout_AnonymousIsNoOp(t *testing.T) {
	session, err := NewLogoutHandler(newSessionStore(t)).Handle(context.Background(), LogoutCommand{SessionID: "sess-9"})
	require.NoError(t, err)
	assert.False(t, session.IsAuthenticated)
}

func TestUpdateProfile(t *testing.T) {
	sessions := newSessionStore(t)
	ctx := context.Background()

	auth := &stubAuthenticator{result: client.LoginResult{
		User:  domain.User{ID: "u-1", Email: "alice@example.com", Name: "Alice"},
		Token: "token-abc",
	}}
	_, err := NewLoginHandler(sessions, auth).Handle(ctx, LoginCommand{
		SessionID: "sess-1", Email: "alice@example.com", Password: "secret",
	})
	require.NoError(t, err)

	phone := "555-0101"
	session, err := NewUpdateProfileHandler(sessions).Handle(ctx, UpdateProfileCommand{
		SessionID: "sess-1",
		Patch:     domain.UserPatch{Phone: &phone},
	})
	require.NoError(t, err)

	require.NotNil(t, session.User)
	assert.Equal(t, "555-0101", session.User.Phone)
	assert.Equal(t, "Alice", session.User.Name, "untouched fields keep their values")
}

func TestUpdateProfile_BeforeLoginIsNoOp(t *testing.T) {
	name := "Ghost"
	session, err := NewUpdateProfileHandler(newSessionStore(t)).Handle(context.Background(), UpdateProfileCommand{
		SessionID: "sess-1",
		Patch:     domain.UserPatch{Name: &name},
	})
	require.NoError(t, err)
	assert.Nil(t, session.User)
}
