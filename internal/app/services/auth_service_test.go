package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
)

// fakeUserRepo is an in-memory IUserRepository. Like the real repository,
// Create stores the user together with exactly one profile.
type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User, role models.Role) (int64, error) {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}

	id := r.nextID
	r.nextID++

	if role == "" {
		role = models.RoleMember
	}

	stored := *user
	stored.ID = id
	stored.IsActive = true
	stored.Profile = &models.UserProfile{ID: id, UserID: id, Role: role}
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	stored.Email = user.Email
	stored.Username = user.Username
	stored.DateOfBirth = user.DateOfBirth
	return nil
}

func (r *fakeUserRepo) UpdateProfileRole(_ context.Context, userID int64, role models.Role) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Profile.Role = role
	return nil
}

func (r *fakeUserRepo) UpdateProfilePhotoURL(_ context.Context, userID int64, photoURL *string) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.ProfilePhotoURL = photoURL
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (r *fakeUserRepo) GetGroups(_ context.Context, _ int64) ([]*models.Group, error) {
	return nil, nil
}

// fakeTokenRepo is an in-memory ITokenRepository
type fakeTokenRepo struct {
	tokens map[string]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*models.RefreshToken{}}
}

func (r *fakeTokenRepo) Save(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	r.tokens[token] = &models.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *fakeTokenRepo) GetByToken(_ context.Context, token string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	copied := *rt
	return &copied, nil
}

func (r *fakeTokenRepo) Revoke(_ context.Context, token string) error {
	rt, ok := r.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	rt.Revoked = true
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID int64) error {
	for _, rt := range r.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	var count int64
	for token, rt := range r.tokens {
		if rt.Revoked || time.Now().After(rt.ExpiresAt) {
			delete(r.tokens, token)
			count++
		}
	}
	return count, nil
}

// fakeGroupRepo is an in-memory IGroupRepository
type fakeGroupRepo struct {
	groups      map[string]int64
	memberships map[int64][]int64
	nextID      int64
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: map[string]int64{}, memberships: map[int64][]int64{}, nextID: 1}
}

func (r *fakeGroupRepo) GetByName(_ context.Context, name string) (*models.Group, error) {
	id, ok := r.groups[name]
	if !ok {
		return nil, apperrors.ErrGroupNotFound
	}
	return &models.Group{ID: id, Name: name}, nil
}

func (r *fakeGroupRepo) EnsureGroup(_ context.Context, name string) (int64, error) {
	if id, ok := r.groups[name]; ok {
		return id, nil
	}
	id := r.nextID
	r.nextID++
	r.groups[name] = id
	return id, nil
}

func (r *fakeGroupRepo) EnsurePermission(_ context.Context, _, _ string) (int64, error) {
	id := r.nextID
	r.nextID++
	return id, nil
}

func (r *fakeGroupRepo) AddPermissionToGroup(_ context.Context, _, _ int64) error { return nil }

func (r *fakeGroupRepo) AddUserToGroup(_ context.Context, userID, groupID int64) error {
	r.memberships[userID] = append(r.memberships[userID], groupID)
	return nil
}

func (r *fakeGroupRepo) RemoveUserFromGroup(_ context.Context, _, _ int64) error { return nil }

func (r *fakeGroupRepo) UserHasPermission(_ context.Context, _ int64, _ string) (bool, error) {
	return false, nil
}

func (r *fakeGroupRepo) GetPermissionsForUser(_ context.Context, _ int64) ([]*models.Permission, error) {
	return nil, nil
}

func newAuthServiceFixture() (*AuthService, *fakeUserRepo, *fakeTokenRepo, *fakeGroupRepo) {
	userRepo := newFakeUserRepo()
	tokenRepo := newFakeTokenRepo()
	groupRepo := newFakeGroupRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
	return NewAuthService(userRepo, tokenRepo, groupRepo, jwtService), userRepo, tokenRepo, groupRepo
}

func TestRegisterCreatesProfileWithMemberRole(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceFixture()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleMember), resp.Role)

	user, err := userRepo.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.Profile)
	assert.Equal(t, models.RoleMember, user.Profile.Role)
	assert.Equal(t, resp.UserID, user.Profile.UserID)
}

func TestRegisterHonorsRoleOverride(t *testing.T) {
	svc, userRepo, _, _ := newAuthServiceFixture()

	role := models.RoleLibrarian
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "staff@example.com",
		Username: "staff",
		Password: "password1",
		Role:     &role,
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleLibrarian), resp.Role)

	user, err := userRepo.GetByID(context.Background(), resp.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleLibrarian, user.Profile.Role)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture()

	role := models.Role("superuser")
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "odd@example.com",
		Username: "odd",
		Password: "password1",
		Role:     &role,
	})
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "first",
		Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "second",
		Password: "password1",
	})
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "short1",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestRegisterAddsUserToDefaultGroup(t *testing.T) {
	svc, _, _, groupRepo := newAuthServiceFixture()
	viewersID, err := groupRepo.EnsureGroup(context.Background(), models.GroupViewers)
	require.NoError(t, err)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.Contains(t, groupRepo.memberships[resp.UserID], viewersID)
}

func TestLoginReturnsTokenPair(t *testing.T) {
	svc, _, tokenRepo, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.NotEmpty(t, resp.Token.RefreshToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Contains(t, tokenRepo.tokens, resp.Token.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, string(models.RoleMember), resp.User.Role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "not-the-password1",
	})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestObtainTokenReturnsBareToken(t *testing.T) {
	svc, _, _, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)

	resp, err := svc.ObtainToken(context.Background(), &dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "password1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, _, tokenRepo, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "password1",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.Token.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, login.Token.RefreshToken, refreshed.RefreshToken)

	// The used token is revoked and cannot be replayed
	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.Token.RefreshToken,
	})
	require.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	assert.True(t, tokenRepo.tokens[login.Token.RefreshToken].Revoked)
}

func TestPurgeExpiredTokensSweepsRevokedTokens(t *testing.T) {
	svc, _, tokenRepo, _ := newAuthServiceFixture()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "reader@example.com",
		Username: "reader",
		Password: "password1",
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "reader@example.com",
		Password: "password1",
	})
	require.NoError(t, err)

	// Rotation revokes the login token, leaving one live and one revoked
	refreshed, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		RefreshToken: login.Token.RefreshToken,
	})
	require.NoError(t, err)

	count, err := svc.PurgeExpiredTokens(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NotContains(t, tokenRepo.tokens, login.Token.RefreshToken)
	assert.Contains(t, tokenRepo.tokens, refreshed.RefreshToken)
}
