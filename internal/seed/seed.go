// Package seed creates the default permissions and groups at startup.
package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
)

// permissionNames maps permission codenames to display names
var permissionNames = map[string]string{
	models.PermCanViewBook:   "Can view book",
	models.PermCanCreateBook: "Can create book",
	models.PermCanEditBook:   "Can edit book",
	models.PermCanDeleteBook: "Can delete book",
}

// groupGrants maps default groups to the permissions they carry
var groupGrants = map[string][]string{
	models.GroupViewers: {
		models.PermCanViewBook,
	},
	models.GroupEditors: {
		models.PermCanViewBook,
		models.PermCanCreateBook,
		models.PermCanEditBook,
	},
	models.GroupAdmins: {
		models.PermCanViewBook,
		models.PermCanCreateBook,
		models.PermCanEditBook,
		models.PermCanDeleteBook,
	},
}

// CreateDefaultData ensures the permission and group rows exist.
// Inserts are idempotent, so running at every startup is safe.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	groupRepo := repositories.NewGroupRepository(dbPool)

	permissionIDs := make(map[string]int64, len(permissionNames))
	for codename, name := range permissionNames {
		id, err := groupRepo.EnsurePermission(ctx, codename, name)
		if err != nil {
			return fmt.Errorf("failed to seed permission %s: %w", codename, err)
		}
		permissionIDs[codename] = id
	}

	for groupName, grants := range groupGrants {
		groupID, err := groupRepo.EnsureGroup(ctx, groupName)
		if err != nil {
			return fmt.Errorf("failed to seed group %s: %w", groupName, err)
		}

		for _, codename := range grants {
			if err := groupRepo.AddPermissionToGroup(ctx, groupID, permissionIDs[codename]); err != nil {
				return fmt.Errorf("failed to grant %s to %s: %w", codename, groupName, err)
			}
		}
	}

	lgr.Info().Int("permissions", len(permissionNames)).Int("groups", len(groupGrants)).Msg("Default permissions and groups ensured")
	return nil
}
