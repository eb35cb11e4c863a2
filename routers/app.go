package routers

import (
	"fmt"

	"campus/config"
	"campus/graph"
	"campus/middleware"
	"campus/repositories"
	graphqlRoutes "campus/routers/graphqlRoutes"
	healthRoutes "campus/routers/healthRoutes"
	"campus/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"
	"gorm.io/gorm"
)

// NewApp wires the service, schema and middleware into a fiber app.
func NewApp(cfg *config.Config, db *gorm.DB, log *zap.Logger) (*fiber.App, error) {
	svc := services.NewEnrollmentService(repositories.NewDirectory(db), log)

	schema, err := graph.NewSchema(svc)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "campus",
		DisableStartupMessage: cfg.IsProduction(),
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New())

	// Access log goes through zap so it shares the application sink
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
		Output: &zapio.Writer{Log: log.Named("http"), Level: zapcore.InfoLevel},
	}))

	origins := cfg.AllowOrigins()
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Authorization",
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: origins != "*",
	}))

	graphqlRoutes.SetupGraphqlRoutes(app, schema)
	healthRoutes.SetupHealthRoutes(app, db, log)

	return app, nil
}
