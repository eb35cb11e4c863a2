package graphqlRoutes

import (
	controllers "campus/controllers/graphql"
	validators "campus/validators/graphql"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// SetupGraphqlRoutes mounts the GraphQL endpoint for both POST and GET.
func SetupGraphqlRoutes(app *fiber.App, schema graphql.Schema) {
	app.Post("/graphql", validators.ParseRequest(), controllers.Execute(schema))
	app.Get("/graphql", validators.ParseRequest(), controllers.Execute(schema))
}
