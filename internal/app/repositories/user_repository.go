package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// IUserRepository defines the interface for user database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User, role models.Role) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdateProfileRole(ctx context.Context, userID int64, role models.Role) error
	UpdateProfilePhotoURL(ctx context.Context, userID int64, photoURL *string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	GetGroups(ctx context.Context, userID int64) ([]*models.Group, error)
}

// UserRepository handles user and user profile database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user and the user's profile row in one transaction,
// so a user can never exist without exactly one profile.
func (r *UserRepository) Create(ctx context.Context, user *models.User, role models.Role) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	userSQL, userArgs, err := r.sb.Insert("users").
		Columns("email", "username", "password", "date_of_birth", "is_active").
		Values(user.Email, user.Username, user.Password, user.DateOfBirth, true).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	var userID int64
	if err := tx.QueryRow(ctx, userSQL, userArgs...).Scan(&userID); err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	if role == "" {
		role = models.RoleMember
	}

	profileSQL, profileArgs, err := r.sb.Insert("user_profiles").
		Columns("user_id", "role").
		Values(userID, role).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create profile query: %w", err)
	}

	if _, err := tx.Exec(ctx, profileSQL, profileArgs...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error creating user profile")
		return 0, fmt.Errorf("error creating user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return userID, nil
}

func (r *UserRepository) getByCondition(ctx context.Context, cond squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select(
		"u.id", "u.email", "u.username", "u.password", "u.date_of_birth",
		"u.profile_photo_url", "u.is_active", "u.created_at", "u.updated_at", "u.last_login_at",
		"p.id", "p.user_id", "p.role").
		From("users u").
		Join("user_profiles p ON p.user_id = u.id").
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user := &models.User{Profile: &models.UserProfile{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Email, &user.Username, &user.Password, &user.DateOfBirth,
		&user.ProfilePhotoURL, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &user.LastLoginAt,
		&user.Profile.ID, &user.Profile.UserID, &user.Profile.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error getting user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user with profile by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getByCondition(ctx, squirrel.Eq{"u.id": id})
}

// GetByEmail retrieves a user with profile by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getByCondition(ctx, squirrel.Eq{"u.email": email})
}

// EmailExists reports whether a user with the given email exists
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("users").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build email existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}

// Update updates a user's mutable account fields
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"email":         user.Email,
			"username":      user.Username,
			"date_of_birth": user.DateOfBirth,
			"updated_at":    time.Now(),
		}).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update user query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("userID", user.ID).Msg("Error executing update user query")
		return fmt.Errorf("error updating user: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfileRole changes the role stored on a user's profile
func (r *UserRepository) UpdateProfileRole(ctx context.Context, userID int64, role models.Role) error {
	sql, args, err := r.sb.Update("user_profiles").
		Set("role", role).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update profile role query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating profile role")
		return fmt.Errorf("error updating profile role: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateProfilePhotoURL stores or clears the user's profile photo URL
func (r *UserRepository) UpdateProfilePhotoURL(ctx context.Context, userID int64, photoURL *string) error {
	sql, args, err := r.sb.Update("users").
		SetMap(map[string]interface{}{
			"profile_photo_url": photoURL,
			"updated_at":        time.Now(),
		}).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update photo query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error updating profile photo")
		return fmt.Errorf("error updating profile photo: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// UpdateLastLogin stamps the user's last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := r.sb.Update("users").
		Set("last_login_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update last login query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating last login: %w", err)
	}

	return nil
}

// GetGroups retrieves the groups a user belongs to
func (r *UserRepository) GetGroups(ctx context.Context, userID int64) ([]*models.Group, error) {
	sql, args, err := r.sb.Select("g.id", "g.name").
		From("groups g").
		Join("user_groups ug ON ug.group_id = g.id").
		Where(squirrel.Eq{"ug.user_id": userID}).
		OrderBy("g.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user groups query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying user groups: %w", err)
	}
	defer rows.Close()

	groups := []*models.Group{}
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("error scanning group row: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}

	return groups, nil
}
