package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mediashelf/media-tracker/internal/api/handler"
	"github.com/mediashelf/media-tracker/internal/api/middleware"
	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/core/ports"
	"github.com/mediashelf/media-tracker/internal/core/service"
	mongodb "github.com/mediashelf/media-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/mediashelf/media-tracker/internal/infrastructure/db/redis"
)

// Dependencies carries everything the router needs that is constructed
// at startup.
type Dependencies struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Mailer    ports.Mailer
	Images    ports.ImageStore
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("mediashelf"))

	// --- Repositories and cache ---
	userRepo := mongodb.NewUserRepository(deps.DB)
	itemRepo := mongodb.NewItemRepository(deps.DB)
	itemTypeRepo := mongodb.NewItemTypeRepository(deps.DB)
	tagRepo := mongodb.NewTagRepository(deps.DB)
	itemCache := redisdb.NewItemCache(deps.Redis, itemRepo, deps.Log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, deps.Mailer, deps.JWTSecret, deps.Log)
	userService := service.NewUserService(userRepo, deps.Mailer, deps.Log)
	listService := service.NewListService(userRepo, itemCache, itemTypeRepo, deps.Log)
	itemService := service.NewItemService(itemRepo, itemTypeRepo, tagRepo, deps.Images, itemCache, deps.Log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(userService)
	listHandler := handler.NewListHandler(listService)
	itemHandler := handler.NewItemHandler(itemService)
	taxonomyHandler := handler.NewTaxonomyHandler(itemService)

	authRequired := middleware.Auth(deps.JWTSecret, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.GET("/auth/verify/:code", authHandler.Verify)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.GET("/auth/reset-password/:code", authHandler.CheckResetCode)
	e.POST("/auth/reset-password/:code", authHandler.ResetPassword)

	// --- Account routes ---
	me := e.Group("/me", authRequired)
	me.GET("", accountHandler.Me)
	me.PATCH("", accountHandler.UpdateMe)
	me.DELETE("", accountHandler.DeleteMe)

	// --- List routes ---
	me.GET("/lists", listHandler.Lists)
	me.POST("/lists", listHandler.CreateList)
	me.GET("/lists/:name", listHandler.GetList)
	me.PATCH("/lists/:name", listHandler.RenameList)
	me.DELETE("/lists/:name", listHandler.DeleteList)
	me.POST("/lists/:name/items", listHandler.AddItem)
	me.PATCH("/lists/:name/items/:id", listHandler.UpdateItem)
	me.DELETE("/lists/:name/items/:id", listHandler.RemoveItem)

	// --- Catalog routes ---
	items := e.Group("/items", authRequired)
	items.GET("/:id", itemHandler.GetByID)
	items.GET("/:type/:slug", itemHandler.GetBySlug)
	items.POST("", itemHandler.Create, adminOnly)
	items.PATCH("/:id", itemHandler.Update, adminOnly)
	items.DELETE("/:id", itemHandler.Delete, adminOnly)

	e.GET("/item-types", taxonomyHandler.ItemTypes, authRequired)
	e.GET("/tags", taxonomyHandler.Tags, authRequired)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
