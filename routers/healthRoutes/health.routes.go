package healthRoutes

import (
	controllers "campus/controllers/health"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupHealthRoutes(app *fiber.App, db *gorm.DB, log *zap.Logger) {
	app.Get("/health", controllers.Health(db, log))
}
