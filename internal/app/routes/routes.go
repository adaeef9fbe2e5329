// Package routes wires controllers and middleware onto the Gin engine.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appauth "github.com/shelfapi/bookshelf/internal/app/auth"
	"github.com/shelfapi/bookshelf/internal/app/controllers"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/middleware"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
)

// Controllers bundles every controller needed by the router
type Controllers struct {
	Auth      *controllers.AuthController
	Book      *controllers.BookController
	Author    *controllers.AuthorController
	Library   *controllers.LibraryController
	Librarian *controllers.LibrarianController
	User      *controllers.UserController
	Dashboard *controllers.DashboardController
}

// SetupRouter configures all application routes.
//
// Catalog reads are public; catalog writes require authentication. The
// /books management surface additionally requires named permissions
// resolved through group membership, and the dashboards require a
// matching profile role.
func SetupRouter(
	router *gin.Engine,
	ctrls *Controllers,
	jwtService *auth.JWTService,
	authzService *appauth.AuthorizationService,
) {
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Auth routes ---
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", ctrls.Auth.Register)
		authGroup.POST("/login", ctrls.Auth.Login)
		authGroup.POST("/token", ctrls.Auth.ObtainToken)
		authGroup.POST("/refresh", ctrls.Auth.RefreshToken)
		authGroup.POST("/logout", middleware.JWTAuth(jwtService), ctrls.Auth.Logout)
	}

	// --- Catalog routes: reads are open, writes need a valid token ---
	readOnlyOrAuth := middleware.ReadOnlyOrAuth(jwtService)

	books := api.Group("/books", readOnlyOrAuth)
	{
		books.GET("", ctrls.Book.ListBooks)
		books.GET("/:id", ctrls.Book.GetBookByID)
		books.POST("", ctrls.Book.CreateBook)
		books.PUT("/:id/update", ctrls.Book.UpdateBook)
		books.PATCH("/:id/update", ctrls.Book.PatchBook)
		books.DELETE("/:id/delete", ctrls.Book.DeleteBook)
	}

	authors := api.Group("/authors", readOnlyOrAuth)
	{
		authors.GET("", ctrls.Author.ListAuthors)
		authors.GET("/:id", ctrls.Author.GetAuthorByID)
		authors.POST("", ctrls.Author.CreateAuthor)
		authors.PUT("/:id/update", ctrls.Author.UpdateAuthor)
		authors.DELETE("/:id/delete", ctrls.Author.DeleteAuthor)
	}

	libraries := api.Group("/libraries", readOnlyOrAuth)
	{
		libraries.GET("", ctrls.Library.ListLibraries)
		libraries.GET("/:id", ctrls.Library.GetLibraryByID)
		libraries.POST("", ctrls.Library.CreateLibrary)
		libraries.PUT("/:id/update", ctrls.Library.UpdateLibrary)
		libraries.DELETE("/:id/delete", ctrls.Library.DeleteLibrary)
		libraries.POST("/:id/books/:bookId", ctrls.Library.AddBook)
		libraries.DELETE("/:id/books/:bookId", ctrls.Library.RemoveBook)
	}

	librarians := api.Group("/librarians", readOnlyOrAuth)
	{
		librarians.GET("", ctrls.Librarian.ListLibrarians)
		librarians.GET("/:id", ctrls.Librarian.GetLibrarianByID)
		librarians.POST("", ctrls.Librarian.CreateLibrarian)
		librarians.PUT("/:id/update", ctrls.Librarian.UpdateLibrarian)
		librarians.DELETE("/:id/delete", ctrls.Librarian.DeleteLibrarian)
	}

	// --- Authenticated user routes ---
	users := api.Group("/users", middleware.JWTAuth(jwtService))
	{
		users.GET("/me", ctrls.User.GetMe)
		users.PUT("/me", ctrls.User.UpdateMe)
		users.POST("/me/photo", ctrls.User.UploadProfilePhoto)
		users.DELETE("/me/photo", ctrls.User.DeleteProfilePhoto)
	}

	// --- Role dashboards ---
	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/admin", middleware.RoleRequired(jwtService, models.RoleAdmin), ctrls.Dashboard.AdminDashboard)
		dashboard.GET("/librarian", middleware.RoleRequired(jwtService, models.RoleLibrarian), ctrls.Dashboard.LibrarianDashboard)
		dashboard.GET("/member", middleware.RoleRequired(jwtService, models.RoleMember), ctrls.Dashboard.MemberDashboard)
	}

	// --- Permission-gated book management surface ---
	management := router.Group("/books")
	{
		management.GET("",
			middleware.PermissionRequired(jwtService, authzService, models.PermCanViewBook),
			ctrls.Book.ListBooks)
		management.GET("/:id",
			middleware.PermissionRequired(jwtService, authzService, models.PermCanViewBook),
			ctrls.Book.GetBookByID)
		management.POST("/create",
			middleware.PermissionRequired(jwtService, authzService, models.PermCanCreateBook),
			ctrls.Book.CreateBook)
		management.PUT("/:id/edit",
			middleware.PermissionRequired(jwtService, authzService, models.PermCanEditBook),
			ctrls.Book.UpdateBook)
		management.PATCH("/:id/edit",
			middleware.PermissionRequired(jwtService, authzService, models.PermCanEditBook),
			ctrls.Book.PatchBook)
		management.DELETE("/:id/delete",
			middleware.PermissionRequired(jwtService, authzService, models.PermCanDeleteBook),
			ctrls.Book.DeleteBook)
	}
}
