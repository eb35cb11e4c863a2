package graphqlValidator

import (
	"encoding/json"
	"strings"

	"campus/graph"
	"campus/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// ParseRequest reads a GraphQL request from a POST JSON body or from GET
// query parameters and stores it in c.Locals("graphqlRequest"). GET only
// runs query operations; mutations must be POSTed.
func ParseRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(graph.Request)
		errors := make(map[string]string)

		if c.Method() == fiber.MethodGet {
			reqData.Query = c.Query("query")
			reqData.OperationName = c.Query("operationName")

			// Variables arrive as a JSON-encoded string
			if raw := strings.TrimSpace(c.Query("variables")); raw != "" {
				if err := json.Unmarshal([]byte(raw), &reqData.Variables); err != nil {
					errors["variables"] = "Variables must be a JSON object!"
				}
			}
		} else {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}

		// Validate Query
		if strings.TrimSpace(reqData.Query) == "" {
			errors["query"] = "Query is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Only queries may run over GET
		if c.Method() == fiber.MethodGet {
			if op := selectedOperation(reqData.Query, reqData.OperationName); op != nil && op.Operation != ast.OperationTypeQuery {
				c.Set(fiber.HeaderAllow, fiber.MethodPost)
				return middleware.JsonResponse(c, fiber.StatusMethodNotAllowed, false, "Only queries are allowed over GET, use POST for "+op.Operation+"s!", nil)
			}
		}

		c.Locals("graphqlRequest", reqData)
		return c.Next()
	}
}

// selectedOperation returns the operation the executor would run, or nil
// when the document does not parse or names no single operation. The
// executor reports those cases itself.
func selectedOperation(query, operationName string) *ast.OperationDefinition {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return nil
	}

	var selected *ast.OperationDefinition
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName == "" {
			if selected != nil {
				return nil
			}
			selected = op
			continue
		}
		if op.Name != nil && op.Name.Value == operationName {
			return op
		}
	}
	return selected
}
