package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/pkg/apperrors"
	"github.com/shelfapi/bookshelf/internal/pkg/logger"
)

// IGroupRepository defines the interface for group and permission operations
type IGroupRepository interface {
	GetByName(ctx context.Context, name string) (*models.Group, error)
	EnsureGroup(ctx context.Context, name string) (int64, error)
	EnsurePermission(ctx context.Context, codename, name string) (int64, error)
	AddPermissionToGroup(ctx context.Context, groupID, permissionID int64) error
	AddUserToGroup(ctx context.Context, userID, groupID int64) error
	RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error
	UserHasPermission(ctx context.Context, userID int64, codename string) (bool, error)
	GetPermissionsForUser(ctx context.Context, userID int64) ([]*models.Permission, error)
}

// GroupRepository handles group, permission, and membership database operations
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByName retrieves a group by its unique name
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("groups").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}

	group := &models.Group{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&group.ID, &group.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("error getting group by name: %w", err)
	}

	return group, nil
}

// EnsureGroup inserts a group if missing and returns its ID either way
func (r *GroupRepository) EnsureGroup(ctx context.Context, name string) (int64, error) {
	sql, args, err := r.sb.Insert("groups").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build ensure group query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("group", name).Msg("Error ensuring group")
		return 0, fmt.Errorf("error ensuring group: %w", err)
	}

	return id, nil
}

// EnsurePermission inserts a permission if missing and returns its ID either way
func (r *GroupRepository) EnsurePermission(ctx context.Context, codename, name string) (int64, error) {
	sql, args, err := r.sb.Insert("permissions").
		Columns("codename", "name").
		Values(codename, name).
		Suffix("ON CONFLICT (codename) DO UPDATE SET name = EXCLUDED.name RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build ensure permission query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("codename", codename).Msg("Error ensuring permission")
		return 0, fmt.Errorf("error ensuring permission: %w", err)
	}

	return id, nil
}

// AddPermissionToGroup grants a permission to a group. Granting twice is a no-op.
func (r *GroupRepository) AddPermissionToGroup(ctx context.Context, groupID, permissionID int64) error {
	sql, args, err := r.sb.Insert("group_permissions").
		Columns("group_id", "permission_id").
		Values(groupID, permissionID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add permission query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrPermissionNotFound
		}
		return fmt.Errorf("error adding permission to group: %w", err)
	}

	return nil
}

// AddUserToGroup adds a user to a group. Adding twice is a no-op.
func (r *GroupRepository) AddUserToGroup(ctx context.Context, userID, groupID int64) error {
	sql, args, err := r.sb.Insert("user_groups").
		Columns("user_id", "group_id").
		Values(userID, groupID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add user to group query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.ErrResourceNotFound
		}
		return fmt.Errorf("error adding user to group: %w", err)
	}

	return nil
}

// RemoveUserFromGroup removes a user's group membership
func (r *GroupRepository) RemoveUserFromGroup(ctx context.Context, userID, groupID int64) error {
	sql, args, err := r.sb.Delete("user_groups").
		Where(squirrel.Eq{"user_id": userID, "group_id": groupID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build remove user from group query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error removing user from group: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGroupNotFound
	}

	return nil
}

// UserHasPermission reports whether any of the user's groups grants the
// permission with the given codename.
func (r *GroupRepository) UserHasPermission(ctx context.Context, userID int64, codename string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("user_groups ug").
		Join("group_permissions gp ON gp.group_id = ug.group_id").
		Join("permissions p ON p.id = gp.permission_id").
		Where(squirrel.Eq{"ug.user_id": userID, "p.codename": codename}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build permission check query: %w", err)
	}

	var allowed bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&allowed)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking user permission: %w", err)
	}

	return allowed, nil
}

// GetPermissionsForUser retrieves the distinct permissions granted to a user
// through group membership.
func (r *GroupRepository) GetPermissionsForUser(ctx context.Context, userID int64) ([]*models.Permission, error) {
	sql, args, err := r.sb.Select("DISTINCT p.id", "p.codename", "p.name").
		From("permissions p").
		Join("group_permissions gp ON gp.permission_id = p.id").
		Join("user_groups ug ON ug.group_id = gp.group_id").
		Where(squirrel.Eq{"ug.user_id": userID}).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user permissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying user permissions: %w", err)
	}
	defer rows.Close()

	permissions := []*models.Permission{}
	for rows.Next() {
		permission := &models.Permission{}
		if err := rows.Scan(&permission.ID, &permission.Codename, &permission.Name); err != nil {
			return nil, fmt.Errorf("error scanning permission row: %w", err)
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating permission rows: %w", err)
	}

	return permissions, nil
}
