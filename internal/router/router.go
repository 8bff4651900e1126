package router

import (
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/store"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires the stores and registers all routes.
func New(gdb *gorm.DB) *gin.Engine {
	identity := store.NewIdentityStore(gdb)
	content := store.NewContentStore(gdb)
	intake := store.NewSubmissionIntake(gdb)
	console := store.NewConsole(gdb, intake)

	authHandler := handlers.NewAuthHandler(identity)
	userHandler := handlers.NewUserHandler(identity, content)
	articleHandler := handlers.NewArticleHandler(content)
	categoryHandler := handlers.NewCategoryHandler(content)
	contactHandler := handlers.NewContactHandler(intake)
	adminHandler := handlers.NewAdminHandler(console)

	r := gin.Default()
	r.Use(middleware.LoadPrincipal())

	// Public routes
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
	r.GET("/articles", articleHandler.List)
	r.GET("/articles/:id", articleHandler.Detail)
	r.GET("/categories", categoryHandler.List)
	r.GET("/categories/:id/articles", categoryHandler.Articles)
	r.GET("/users/:id", userHandler.Profile)
	r.POST("/contact", contactHandler.Submit)

	// Routes that act on behalf of a principal
	authorized := r.Group("/")
	authorized.Use(middleware.PrincipalRequired())
	{
		authorized.POST("/articles", articleHandler.Create)
		authorized.PATCH("/articles/:id", articleHandler.Update)
		authorized.DELETE("/articles/:id", articleHandler.Delete)
		authorized.POST("/articles/:id/comments", articleHandler.CreateComment)

		authorized.PATCH("/users/me", userHandler.UpdateProfile)
		authorized.POST("/users/me/password", userHandler.ChangePassword)
	}

	// Operator console
	admin := r.Group("/admin")
	admin.Use(middleware.PrincipalRequired())
	{
		admin.GET("/entities", adminHandler.Entities)
		admin.GET("/submissions", adminHandler.ListSubmissions)
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/actions/:entity/:action", adminHandler.RunBulkAction)

		admin.POST("/superusers", authHandler.CreateSuperuser)
		admin.POST("/categories", categoryHandler.Create)
		admin.DELETE("/categories/:id", categoryHandler.Delete)
		admin.DELETE("/users/:id", userHandler.Delete)
	}

	return r
}
