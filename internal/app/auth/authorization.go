// Package auth contains the authorization service resolving named
// permissions through group membership.
package auth

import (
	"context"

	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
)

// AuthorizationService decides whether a user may perform a named action.
// Admins bypass the permission tables; everyone else is checked against
// the permissions granted to their groups.
type AuthorizationService struct {
	groupRepo repositories.IGroupRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(groupRepo repositories.IGroupRepository) *AuthorizationService {
	return &AuthorizationService{groupRepo: groupRepo}
}

// HasPermission reports whether the user holds the permission, either by
// admin role or through a group grant.
func (s *AuthorizationService) HasPermission(ctx context.Context, userID int64, role models.Role, codename string) (bool, error) {
	if role == models.RoleAdmin {
		return true, nil
	}

	return s.groupRepo.UserHasPermission(ctx, userID, codename)
}

// Permissions lists the user's effective permissions through group grants
func (s *AuthorizationService) Permissions(ctx context.Context, userID int64) ([]*models.Permission, error) {
	return s.groupRepo.GetPermissionsForUser(ctx, userID)
}
