package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventhub/internal/domain"
	"eventhub/internal/pkg/mail"
	"eventhub/internal/pkg/token"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// Mock session (refresh token) repository
type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockSessionRepo) Exists(ctx context.Context, userID int64, tokenHash string) (bool, error) {
	args := m.Called(ctx, userID, tokenHash)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) DeleteByHash(ctx context.Context, userID int64, tokenHash string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *mockSessionRepo) DeleteByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSessionRepo) EvictOldest(ctx context.Context, userID int64, keep int) error {
	args := m.Called(ctx, userID, keep)
	return args.Error(0)
}

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func newTestTokens(t *testing.T) *token.Service {
	t.Helper()
	tokens, err := token.New(token.Config{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
	})
	require.NoError(t, err)
	return tokens
}

func newTestService(users *mockUserRepo, sessions *mockSessionRepo, tokens tokenService, mailer mail.Mailer) *Service {
	return NewService(users, sessions, tokens, mailer, 7*24*time.Hour, time.Hour, 10, "http://localhost:5173")
}

func TestService_Signup_Success(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)
	tokens := newTestTokens(t)

	users.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		u.ID = 1
		assert.Equal(t, "new@example.com", u.Email)
		assert.NotEqual(t, "pw123456", u.PasswordHash)
	}).Return(nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)
	sessions.On("EvictOldest", mock.Anything, int64(1), 10).Return(nil)

	service := newTestService(users, sessions, tokens, &fakeMailer{})

	user, pair, err := service.Signup(context.Background(), SignupRequest{
		Email:    "  New@Example.com ",
		Password: "pw123456",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestService_Signup_EmailExists(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)

	users.On("ExistsByEmail", mock.Anything, "exists@example.com").Return(true, nil)

	service := newTestService(users, sessions, newTestTokens(t), &fakeMailer{})

	_, _, err := service.Signup(context.Background(), SignupRequest{
		Email:    "Exists@example.com",
		Password: "pw123456",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Login_WrongPasswordAndUnknownEmailAreIdentical(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	existing := &domain.User{ID: 10, Email: "user@example.com", PasswordHash: string(hashed)}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, sessions, newTestTokens(t), &fakeMailer{})

	_, _, errWrongPassword := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	_, _, errUnknownEmail := service.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownEmail, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
}

func TestService_Login_Success(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	existing := &domain.User{ID: 10, Email: "user@example.com", PasswordHash: string(hashed)}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	sessions.On("Create", mock.Anything, mock.Anything).Return(nil)
	sessions.On("EvictOldest", mock.Anything, int64(10), 10).Return(nil)

	service := newTestService(users, sessions, newTestTokens(t), &fakeMailer{})

	user, pair, err := service.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	sessions.AssertExpectations(t)
}

func TestService_Refresh_Success(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)
	tokens := newTestTokens(t)

	refresh, err := tokens.IssueRefresh(10)
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10}, nil)
	sessions.On("Exists", mock.Anything, int64(10), token.HashToken(refresh)).Return(true, nil)

	service := newTestService(users, sessions, tokens, &fakeMailer{})

	access, err := service.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	userID, err := tokens.ParseAccess(access)
	require.NoError(t, err)
	assert.Equal(t, int64(10), userID)
}

func TestService_Refresh_RevokedSession(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)
	tokens := newTestTokens(t)

	refresh, err := tokens.IssueRefresh(10)
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, int64(10)).Return(&domain.User{ID: 10}, nil)
	// Logout removed the row: the token is cryptographically valid but
	// no longer a session.
	sessions.On("Exists", mock.Anything, int64(10), token.HashToken(refresh)).Return(false, nil)

	service := newTestService(users, sessions, tokens, &fakeMailer{})

	_, err = service.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_GarbageToken(t *testing.T) {
	service := newTestService(new(mockUserRepo), new(mockSessionRepo), newTestTokens(t), &fakeMailer{})

	_, err := service.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Refresh_DeletedUser(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)
	tokens := newTestTokens(t)

	refresh, err := tokens.IssueRefresh(77)
	require.NoError(t, err)

	users.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	service := newTestService(users, sessions, tokens, &fakeMailer{})

	_, err = service.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestService_Logout_RemovesOnlyThatSession(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)
	tokens := newTestTokens(t)

	refresh, err := tokens.IssueRefresh(10)
	require.NoError(t, err)

	sessions.On("DeleteByHash", mock.Anything, int64(10), token.HashToken(refresh)).Return(nil)

	service := newTestService(users, sessions, tokens, &fakeMailer{})

	require.NoError(t, service.Logout(context.Background(), refresh))
	sessions.AssertExpectations(t)
}

func TestService_Logout_UndecodableTokenIsSwallowed(t *testing.T) {
	sessions := new(mockSessionRepo)
	service := newTestService(new(mockUserRepo), sessions, newTestTokens(t), &fakeMailer{})

	assert.NoError(t, service.Logout(context.Background(), "garbage"))
	sessions.AssertNotCalled(t, "DeleteByHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_RequestReset_UnknownEmail(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	mailer := &fakeMailer{}
	service := newTestService(users, new(mockSessionRepo), newTestTokens(t), mailer)

	result, err := service.RequestReset(context.Background(), "ghost@example.com")

	require.NoError(t, err)
	assert.False(t, result.DevMode)
	assert.Empty(t, result.ResetLink)
	assert.Empty(t, mailer.sent)
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_RequestReset_DevModeReturnsLink(t *testing.T) {
	users := new(mockUserRepo)
	existing := &domain.User{ID: 5, Email: "user@example.com"}

	users.On("GetByEmail", mock.Anything, "user@example.com").Return(existing, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ResetPasswordTokenHash != nil && u.ResetPasswordExpires != nil
	})).Return(nil)

	mailer := &fakeMailer{err: mail.ErrNotConfigured}
	service := newTestService(users, new(mockSessionRepo), newTestTokens(t), mailer)

	result, err := service.RequestReset(context.Background(), "user@example.com")

	require.NoError(t, err)
	assert.True(t, result.DevMode)
	assert.Contains(t, result.ResetLink, "http://localhost:5173/reset-password?token=")
	assert.Contains(t, result.ResetLink, "&id=5")
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "user@example.com", mailer.sent[0].To)

	// Only the hash of the link's token is persisted.
	rawToken := extractLinkToken(t, result.ResetLink)
	assert.Equal(t, token.HashToken(rawToken), *existing.ResetPasswordTokenHash)
	users.AssertExpectations(t)
}

func TestService_ResetPassword_SuccessRevokesSessions(t *testing.T) {
	users := new(mockUserRepo)
	sessions := new(mockSessionRepo)

	raw, hash, err := token.NewResetToken()
	require.NoError(t, err)

	oldHashed, _ := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	expires := time.Now().Add(30 * time.Minute)
	existing := &domain.User{
		ID:                     5,
		Email:                  "user@example.com",
		PasswordHash:           string(oldHashed),
		ResetPasswordTokenHash: &hash,
		ResetPasswordExpires:   &expires,
	}

	users.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	users.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ResetPasswordTokenHash == nil &&
			u.ResetPasswordExpires == nil &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("new-password")) == nil
	})).Return(nil)
	sessions.On("DeleteByUser", mock.Anything, int64(5)).Return(nil)

	service := newTestService(users, sessions, newTestTokens(t), &fakeMailer{})

	require.NoError(t, service.ResetPassword(context.Background(), 5, raw, "new-password"))
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestService_ResetPassword_WrongToken(t *testing.T) {
	users := new(mockUserRepo)

	_, hash, err := token.NewResetToken()
	require.NoError(t, err)
	expires := time.Now().Add(30 * time.Minute)
	existing := &domain.User{ID: 5, ResetPasswordTokenHash: &hash, ResetPasswordExpires: &expires}

	users.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)

	service := newTestService(users, new(mockSessionRepo), newTestTokens(t), &fakeMailer{})

	err = service.ResetPassword(context.Background(), 5, "some-other-token", "new-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestService_ResetPassword_Expired(t *testing.T) {
	users := new(mockUserRepo)

	raw, hash, err := token.NewResetToken()
	require.NoError(t, err)
	expires := time.Now().Add(-time.Minute)
	existing := &domain.User{ID: 5, ResetPasswordTokenHash: &hash, ResetPasswordExpires: &expires}

	users.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)

	service := newTestService(users, new(mockSessionRepo), newTestTokens(t), &fakeMailer{})

	err = service.ResetPassword(context.Background(), 5, raw, "new-password")
	assert.ErrorIs(t, err, ErrResetTokenExpired)
}

func TestService_ResetPassword_NoOutstandingReset(t *testing.T) {
	users := new(mockUserRepo)
	users.On("GetByID", mock.Anything, int64(5)).Return(&domain.User{ID: 5}, nil)

	service := newTestService(users, new(mockSessionRepo), newTestTokens(t), &fakeMailer{})

	err := service.ResetPassword(context.Background(), 5, "any-token", "new-password")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func extractLinkToken(t *testing.T, link string) string {
	t.Helper()
	_, query, found := strings.Cut(link, "?")
	require.True(t, found, fmt.Sprintf("no query in link %q", link))
	for _, param := range strings.Split(query, "&") {
		if v, ok := strings.CutPrefix(param, "token="); ok {
			return v
		}
	}
	t.Fatalf("no token in link %q", link)
	return ""
}
