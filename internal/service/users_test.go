package service

import (
	"context"
	"testing"

	"foodgram/internal/domain"
	"foodgram/internal/store"
	"foodgram/internal/testutil"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func registration() Registration {
	return Registration{
		Email:     "vasya@example.com",
		Username:  "vasya.pupkin",
		FirstName: "Vasya",
		LastName:  "Pupkin",
		Password:  "Qwerty123",
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	f := newFixture(t)
	user, err := f.svc.Register(f.ctx, registration())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Qwerty123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Qwerty123")))
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	testutil.SeedUser(t, f.db, "taken")

	cases := []struct {
		name   string
		mutate func(*Registration)
		fields []string
	}{
		{"reserved username", func(r *Registration) { r.Username = "me" }, []string{"username"}},
		{"bad charset", func(r *Registration) { r.Username = "no spaces" }, []string{"username"}},
		{"taken username", func(r *Registration) { r.Username = "taken" }, []string{"username"}},
		{"taken email", func(r *Registration) { r.Email = "taken@example.com" }, []string{"email"}},
		{"invalid email", func(r *Registration) { r.Email = "nope" }, []string{"email"}},
		{"blank names", func(r *Registration) { r.FirstName, r.LastName = "", " " }, []string{"first_name", "last_name"}},
		{"blank password", func(r *Registration) { r.Password = "" }, []string{"password"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := registration()
			tc.mutate(&in)
			_, err := f.svc.Register(f.ctx, in)
			requireFields(t, err, tc.fields...)
		})
	}
	assert.Equal(t, int64(1), count[domain.User](t, f.db, ""))
}

func TestLoginLogout(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "cook")

	_, err := f.svc.Login(f.ctx, user.Email, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Login(f.ctx, "ghost@example.com", testutil.Password)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	token, err := f.svc.Login(f.ctx, user.Email, testutil.Password)
	require.NoError(t, err)

	got, claims, err := f.svc.Authenticate(f.ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	require.NoError(t, f.svc.Logout(f.ctx, claims))
	_, _, err = f.svc.Authenticate(f.ctx, token)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, _, err = f.svc.Authenticate(f.ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogoutWithoutDenylistWarns(t *testing.T) {
	gdb := testutil.DB(t)
	svc := New(Options{Store: store.New(gdb), JWTSecret: "test-secret"})
	user := testutil.SeedUser(t, gdb, "cook")
	token, err := svc.Login(context.Background(), user.Email, testutil.Password)
	require.NoError(t, err)
	_, claims, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)

	hook := logtest.NewGlobal()
	t.Cleanup(func() { logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks)) })

	require.NoError(t, svc.Logout(context.Background(), claims))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "revoked nothing")
	assert.Equal(t, user.ID, entry.Data["user_id"])

	_, _, err = svc.Authenticate(context.Background(), token)
	assert.NoError(t, err, "the token outlives logout without a denylist")
}

func TestSetPassword(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "cook")
	actor := ActorOf(user)

	assert.ErrorIs(t, f.svc.SetPassword(f.ctx, actor, "wrong", "new-pass"), ErrWrongPassword)
	assert.ErrorIs(t, f.svc.SetPassword(f.ctx, actor, testutil.Password, testutil.Password), ErrWrongPassword)
	requireFields(t, f.svc.SetPassword(f.ctx, actor, testutil.Password, ""), "new_password")

	require.NoError(t, f.svc.SetPassword(f.ctx, actor, testutil.Password, "new-pass"))
	_, err := f.svc.Login(f.ctx, user.Email, "new-pass")
	assert.NoError(t, err)
}

func TestAvatar(t *testing.T) {
	f := newFixture(t)
	user := testutil.SeedUser(t, f.db, "cook")
	actor := ActorOf(user)

	updated, err := f.svc.SetAvatar(f.ctx, actor, imagePayload(t))
	require.NoError(t, err)
	assert.NotEmpty(t, updated.Avatar)
	assert.Equal(t, "/media/"+updated.Avatar, f.svc.ImageURL(updated.Avatar))

	_, err = f.svc.SetAvatar(f.ctx, actor, "")
	requireFields(t, err, "avatar")

	require.NoError(t, f.svc.DeleteAvatar(f.ctx, actor))
	me, err := f.svc.Me(f.ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, me.User.Avatar)
}

func TestListUsersMarksSubscriptions(t *testing.T) {
	f := newFixture(t)
	reader := testutil.SeedUser(t, f.db, "reader")
	author := testutil.SeedUser(t, f.db, "author")
	_, err := f.svc.Follow(f.ctx, ActorOf(reader), author.ID, 0)
	require.NoError(t, err)

	page, err := f.svc.ListUsers(f.ctx, ActorOf(reader), PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.False(t, page.Items[0].IsSubscribed)
	assert.True(t, page.Items[1].IsSubscribed)

	view, err := f.svc.GetUser(f.ctx, Actor{}, author.ID)
	require.NoError(t, err)
	assert.False(t, view.IsSubscribed)

	_, err = f.svc.GetUser(f.ctx, Actor{}, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
