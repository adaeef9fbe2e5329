package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/models/dto"
	"github.com/shelfapi/bookshelf/internal/middleware"
)

// DashboardController serves the role-gated dashboard endpoints
type DashboardController struct{}

// NewDashboardController creates a new DashboardController
func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

func (c *DashboardController) dashboard(ctx *gin.Context, role models.Role) {
	respondData(ctx, http.StatusOK, dto.DashboardResponse{
		Role:    string(role),
		Message: "Welcome to the " + string(role) + " dashboard",
		User:    middleware.GetUserEmail(ctx),
	})
}

// AdminDashboard serves the admin dashboard
// @Summary Admin dashboard
// @Description Dashboard for users with the admin role
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Wrong role"
// @Router /dashboard/admin [get]
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	c.dashboard(ctx, models.RoleAdmin)
}

// LibrarianDashboard serves the librarian dashboard
// @Summary Librarian dashboard
// @Description Dashboard for users with the librarian role
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Wrong role"
// @Router /dashboard/librarian [get]
func (c *DashboardController) LibrarianDashboard(ctx *gin.Context) {
	c.dashboard(ctx, models.RoleLibrarian)
}

// MemberDashboard serves the member dashboard
// @Summary Member dashboard
// @Description Dashboard for users with the member role
// @Tags dashboards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Wrong role"
// @Router /dashboard/member [get]
func (c *DashboardController) MemberDashboard(ctx *gin.Context) {
	c.dashboard(ctx, models.RoleMember)
}
