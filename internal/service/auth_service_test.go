package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/store"
)

func newAuthServiceForTest(t *testing.T, users *MockUsersRepository, irrigation *MockIrrigationRepository) (*AuthService, *store.SessionStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := store.NewSessionStore(store.NewRedisKV(client), time.Hour)
	return NewAuthService(users, irrigation, sessions, testRulesConfig(), zap.NewNop()), sessions
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Username:     "farmer1",
		Email:        "farmer1@example.com",
		Password:     "secret123",
		FullName:     "Test Farmer",
		FarmLocation: "Nairobi",
		FarmSize:     2.5,
	}
}

func TestRegister_Success(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, sessions := newAuthServiceForTest(t, users, irrigation)

	users.On("ExistsByUsernameOrEmail", mock.Anything, "farmer1", "farmer1@example.com").
		Return(false, nil)
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		// The stored hash must verify against the original password.
		return u.Username == "farmer1" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret123")) == nil
	})).Return(int64(5), nil)
	irrigation.On("CreateDefaultSettings", mock.Anything, int64(5), 30.0, 30).Return(nil)

	user, token, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)
	assert.Equal(t, "farmer1", user.Username)
	require.NotEmpty(t, token)

	userID, err := sessions.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), userID)

	users.AssertExpectations(t)
	irrigation.AssertExpectations(t)
}

func TestRegister_DuplicateConflict(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, _ := newAuthServiceForTest(t, users, irrigation)

	users.On("ExistsByUsernameOrEmail", mock.Anything, "farmer1", "farmer1@example.com").
		Return(true, nil)

	_, _, err := svc.Register(context.Background(), validRegisterRequest())
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Username or email already exists", conflict.Msg)

	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_Validation(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, _ := newAuthServiceForTest(t, users, irrigation)

	cases := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing username", func(r *RegisterRequest) { r.Username = "" }},
		{"missing email", func(r *RegisterRequest) { r.Email = "" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "abc" }},
		{"missing full name", func(r *RegisterRequest) { r.FullName = "  " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(&req)
			_, _, err := svc.Register(context.Background(), req)
			var validation *domain.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, sessions := newAuthServiceForTest(t, users, irrigation)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetUserByLogin", mock.Anything, "farmer1").Return(&domain.User{
		ID:           5,
		Username:     "farmer1",
		Email:        "farmer1@example.com",
		PasswordHash: string(hash),
		FullName:     "Test Farmer",
	}, nil)

	user, token, err := svc.Login(context.Background(), "farmer1", "secret123")
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.ID)

	userID, err := sessions.Lookup(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(5), userID)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, _ := newAuthServiceForTest(t, users, irrigation)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	users.On("GetUserByLogin", mock.Anything, "farmer1").Return(&domain.User{
		ID:           5,
		PasswordHash: string(hash),
	}, nil)

	_, _, err = svc.Login(context.Background(), "farmer1", "wrong")
	var auth *domain.AuthError
	require.ErrorAs(t, err, &auth)
	assert.Equal(t, "Invalid username or password", auth.Msg)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, _ := newAuthServiceForTest(t, users, irrigation)

	users.On("GetUserByLogin", mock.Anything, "nobody").
		Return(nil, domain.NotFound("user"))

	_, _, err := svc.Login(context.Background(), "nobody", "whatever")
	var auth *domain.AuthError
	require.ErrorAs(t, err, &auth)
}

func TestLogout_RevokesSession(t *testing.T) {
	users := new(MockUsersRepository)
	irrigation := new(MockIrrigationRepository)
	svc, sessions := newAuthServiceForTest(t, users, irrigation)

	token, err := sessions.Issue(context.Background(), 5)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = sessions.Lookup(context.Background(), token)
	assert.ErrorIs(t, err, store.ErrMiss)
}
