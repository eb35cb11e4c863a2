package controllers

import (
	"campus/graph"
	"campus/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// Execute runs the validated request against schema. Field errors are part
// of a normal 200 response in the errors array.
func Execute(schema graphql.Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Retrieve validated request
		reqData, ok := c.Locals("graphqlRequest").(*graph.Request)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
		}

		result := graph.Execute(c.UserContext(), schema, *reqData)
		return c.Status(fiber.StatusOK).JSON(result)
	}
}
