package routes

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"SchoolBridge/internal/auth"
	"SchoolBridge/internal/config"
	"SchoolBridge/internal/directory"
	"SchoolBridge/internal/messaging"
	"SchoolBridge/pkg/middleware"
)

var Module = fx.Module("schoolbridge",
	fx.Provide(
		config.NewLogger,
		config.NewMongoDBConfig,
		config.NewMongoDBClient,
		config.NewResendConfig,
		config.NewEmailService,
		func(e *config.EmailService) messaging.EmailSender { return e },
		NewEchoServer,
		auth.NewRepository,
		auth.NewService,
		auth.NewHandler,
		directory.NewRepository,
		directory.NewService,
		directory.NewHandler,
		messaging.NewRepository,
		messaging.NewResolver,
		messaging.NewService,
		messaging.NewHandler,
	),
	fx.Invoke(config.EnsureIndexes),
	fx.Invoke(RegisterRoutes),
)

func NewEchoServer(lc fx.Lifecycle, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins(),
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting HTTP server", zap.String("addr", addr))
			go func() {
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					logger.Fatal("failed to start the server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down HTTP server")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func corsOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return []string{"*"}
	}
	return strings.Split(origins, ",")
}

func RegisterRoutes(e *echo.Echo, authHandler *auth.Handler, directoryHandler *directory.Handler, messageHandler *messaging.Handler) {
	api := e.Group("/api")

	// public
	api.POST("/auth/register/organization", authHandler.RegisterOrganization)
	api.GET("/auth/organizations", authHandler.ListOrganizations)
	api.POST("/auth/login/organization", authHandler.LoginOrganization)
	api.POST("/auth/login/staff", authHandler.LoginStaff)
	api.POST("/auth/login/student", authHandler.LoginStudent)

	protected := []echo.MiddlewareFunc{middleware.JWTMiddleware, middleware.CasbinMiddleware}

	api.POST("/auth/register/staff", authHandler.RegisterStaff, protected...)
	api.POST("/auth/register/student", authHandler.RegisterStudent, protected...)

	org := api.Group("/organization", protected...)
	org.GET("/dashboard", directoryHandler.Dashboard)
	org.GET("/staff", directoryHandler.ListStaff)
	org.GET("/students", directoryHandler.ListStudents)
	org.PUT("/profile", directoryHandler.UpdateOrganization)

	staff := api.Group("/staff", protected...)
	staff.GET("/profile", directoryHandler.StaffProfile)
	staff.PUT("/profile", directoryHandler.UpdateStaffProfile)

	student := api.Group("/student", protected...)
	student.GET("/profile", directoryHandler.StudentProfile)
	student.PUT("/profile", directoryHandler.UpdateStudentProfile)

	messages := api.Group("/messages", protected...)
	messages.POST("/send", messageHandler.Send)
	messages.GET("", messageHandler.List)
	messages.GET("/organization", messageHandler.ListForOrganization)
	messages.GET("/:id", messageHandler.GetByID)
	messages.POST("/:id/read", messageHandler.MarkRead)
	messages.DELETE("/:id", messageHandler.Delete)
}
