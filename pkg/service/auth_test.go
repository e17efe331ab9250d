package service

import (
	"context"
	"testing"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserStore struct {
	users map[string]*models.User // keyed by ID
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByLogin(_ context.Context, login string) (*models.User, error) {
	for _, user := range f.users {
		if user.Username == login || user.Email == login {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserStore) UserExists(_ context.Context, username, email string) (bool, error) {
	for _, user := range f.users {
		if user.Username == username || user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdateUserProfile(_ context.Context, userID, firstName, lastName, phone string) error {
	if user, ok := f.users[userID]; ok {
		user.FirstName = firstName
		user.LastName = lastName
		user.Phone = phone
	}
	return nil
}

type fakeSessionStore struct {
	sessions map[string]*repository.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*repository.Session{}}
}

func (f *fakeSessionStore) SaveSession(_ context.Context, token string, session *repository.Session, _ time.Duration) error {
	f.sessions[token] = session
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, token string) (*repository.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return session, nil
}

func newAuthFixture() (*AuthService, *fakeUserStore, *fakeSessionStore) {
	users := newFakeUserStore()
	sessions := newFakeSessionStore()
	svc := NewAuthService(users, sessions, &fakeAuditor{}, zap.NewNop(), time.Hour, bcrypt.MinCost)
	return svc, users, sessions
}

func TestRegister_IssuesToken(t *testing.T) {
	svc, users, sessions := newAuthFixture()

	result, err := svc.Register(context.Background(), RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret",
		FirstName: "Alice",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEqual(t, "s3cret", result.User.Password, "password must be stored hashed")
	assert.Len(t, users.users, 1)

	session, err := sessions.GetSession(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, session.UserID)
	assert.Equal(t, "alice", session.Username)
}

func TestRegister_DuplicateUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "s3cret",
	})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "bob", Email: "alice@example.com", Password: "s3cret",
	})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_ByUsernameOrEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	for _, login := range []string{"alice", "alice@example.com"} {
		result, err := svc.Login(context.Background(), login, "s3cret")
		require.NoError(t, err, "login %q", login)
		assert.NotEmpty(t, result.Token)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc, _, _ := newAuthFixture()

	result, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret", Phone: "555-0100",
	})
	require.NoError(t, err)

	user, err := svc.Profile(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "555-0100", user.Phone)

	_, err = svc.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, users, _ := newAuthFixture()

	result, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	require.NoError(t, err)

	err = svc.UpdateProfile(context.Background(), result.User.ID, "Alicia", "Doe", "555-0199")
	require.NoError(t, err)

	user := users.users[result.User.ID]
	assert.Equal(t, "Alicia", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "555-0199", user.Phone)
}
