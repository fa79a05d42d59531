package store_test

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/session/domain"
	"github.com/tair/storefront/internal/session/store"
	"github.com/tair/storefront/pkg/snapshot"
)

type recordingResetter struct {
	calls      int
	sessionIDs []string
}

func (r *recordingResetter) Reset(ctx context.Context, sessionID string, user *domain.User) error {
	r.calls++
	r.sessionIDs = append(r.sessionIDs, sessionID)
	return nil
}

func newStore(t *testing.T) (*store.Store, *recordingResetter) {
	t.Helper()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)

	resetter := &recordingResetter{}
	return store.New(snapshots, resetter), resetter
}

func randomUser() domain.User {
	return domain.User{
		ID:    gofakeit.UUID(),
		Email: gofakeit.Email(),
		Name:  gofakeit.Name(),
	}
}

func TestLoginThenLogout(t *testing.T) {
	ctx := t.Context()
	sessions, resetter := newStore(t)
	sid := gofakeit.UUID()

	initial := sessions.Get(ctx, sid)
	require.False(t, initial.IsAuthenticated)

	loggedIn, err := sessions.Login(ctx, sid, randomUser(), "token-abc")
	require.NoError(t, err)
	assert.True(t, loggedIn.IsAuthenticated)

	loggedOut := sessions.Logout(ctx, sid)
	assert.Equal(t, initial, loggedOut)

	// teardown ran exactly once, for the right session
	assert.Equal(t, 1, resetter.calls)
	assert.Equal(t, []string{sid}, resetter.sessionIDs)
}

func TestLoginRequiresUserAndTokenTogether(t *testing.T) {
	ctx := t.Context()
	sessions, _ := newStore(t)

	_, err := sessions.Login(ctx, "sid", randomUser(), "")
	require.EqualError(t, err, "token is required")

	_, err = sessions.Login(ctx, "sid", domain.User{}, "tok")
	require.EqualError(t, err, "user is required")

	assert.False(t, sessions.Get(ctx, "sid").IsAuthenticated)
}

func TestLogoutWhenAnonymousIsNoop(t *testing.T) {
	ctx := t.Context()
	sessions, resetter := newStore(t)

	s := sessions.Logout(ctx, gofakeit.UUID())
	assert.False(t, s.IsAuthenticated)
	assert.Equal(t, 0, resetter.calls)
}

func TestRepeatedLogoutDoesNotRepeatTeardown(t *testing.T) {
	ctx := t.Context()
	sessions, resetter := newStore(t)
	sid := gofakeit.UUID()

	_, err := sessions.Login(ctx, sid, randomUser(), "tok")
	require.NoError(t, err)

	sessions.Logout(ctx, sid)
	sessions.Logout(ctx, sid)

	assert.Equal(t, 1, resetter.calls)
}

func TestForceLogout(t *testing.T) {
	ctx := t.Context()
	sessions, resetter := newStore(t)
	sid := gofakeit.UUID()

	_, err := sessions.Login(ctx, sid, randomUser(), "tok")
	require.NoError(t, err)

	require.NoError(t, sessions.ForceLogout(ctx, sid))
	assert.False(t, sessions.Get(ctx, sid).IsAuthenticated)
	assert.Equal(t, 1, resetter.calls)
}

func TestUpdateUserBeforeLoginIsNoop(t *testing.T) {
	ctx := t.Context()
	sessions, _ := newStore(t)

	name := "Nobody"
	s := sessions.UpdateUser(ctx, gofakeit.UUID(), domain.UserPatch{Name: &name})
	assert.Nil(t, s.User)
}

func TestUpdateUserPersists(t *testing.T) {
	ctx := t.Context()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)

	sessions := store.New(snapshots, nil)
	sid := gofakeit.UUID()

	_, err = sessions.Login(ctx, sid, randomUser(), "tok")
	require.NoError(t, err)

	name := "Updated"
	sessions.UpdateUser(ctx, sid, domain.UserPatch{Name: &name})

	// fresh store instance over the same snapshots
	rehydrated := store.New(snapshots, nil).Get(ctx, sid)
	require.NotNil(t, rehydrated.User)
	assert.Equal(t, "Updated", rehydrated.User.Name)
}

func TestLoadRecomputesAuthenticatedFlag(t *testing.T) {
	ctx := t.Context()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)

	// a snapshot written out-of-band with a stale flag: token and user
	// present, IsAuthenticated false
	sid := gofakeit.UUID()
	user := randomUser()
	require.NoError(t, snapshots.Save(ctx, "session:"+sid, domain.Session{
		User:            &user,
		Token:           "tok",
		IsAuthenticated: false,
	}))

	s := store.New(snapshots, nil).Get(ctx, sid)
	assert.True(t, s.IsAuthenticated)
	assert.Equal(t, "tok", s.Token)
}

func TestResetterRunsBeforeStateIsCleared(t *testing.T) {
	ctx := t.Context()
	snapshots, err := snapshot.NewStore(snapshot.DriverMemory)
	require.NoError(t, err)

	var seenUser *domain.User
	resetter := resetterFunc(func(ctx context.Context, sessionID string, user *domain.User) error {
		seenUser = user
		return nil
	})

	sessions := store.New(snapshots, resetter)
	sid := gofakeit.UUID()
	user := randomUser()

	_, err = sessions.Login(ctx, sid, user, "tok")
	require.NoError(t, err)

	sessions.Logout(ctx, sid)

	// the teardown still saw the session's user
	require.NotNil(t, seenUser)
	assert.Equal(t, user.ID, seenUser.ID)
}

type resetterFunc func(ctx context.Context, sessionID string, user *domain.User) error

func (f resetterFunc) Reset(ctx context.Context, sessionID string, user *domain.User) error {
	return f(ctx, sessionID, user)
}
