// Package graph exposes the enrollment service as a GraphQL schema.
package graph

import (
	"context"

	"campus/models"

	"github.com/graphql-go/graphql"
)

// Service is what the resolvers need from the enrollment layer.
type Service interface {
	Courses(ctx context.Context) ([]models.Course, error)
	Course(ctx context.Context, id string) (*models.Course, error)
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	Enroll(ctx context.Context, userID, courseID string) (*models.Enrollment, error)
	UpdateCourse(ctx context.Context, courseID, actingUserID string, patch models.CoursePatch) (*models.Course, error)
}

// Request is a single GraphQL operation as received over HTTP.
type Request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName,omitempty"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

// NewSchema builds the schema with every field bound to svc.
func NewSchema(svc Service) (graphql.Schema, error) {
	r := &resolver{svc: svc}

	var courseType, userType, enrollmentType *graphql.Object

	enrollmentType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Enrollment",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: enrollmentID},
				"role":   &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: enrollmentRole},
				"user":   &graphql.Field{Type: graphql.NewNonNull(userType), Resolve: r.enrollmentUser},
				"course": &graphql.Field{Type: graphql.NewNonNull(courseType), Resolve: r.enrollmentCourse},
			}
		}),
	})

	courseType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Course",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: courseID},
				"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: courseTitle},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: courseDescription},
				"level":       &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: courseLevel},
				"enrollments": &graphql.Field{Type: graphql.NewList(enrollmentType), Resolve: r.courseEnrollments},
			}
		}),
	})

	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: userID},
				"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: userName},
				"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: userEmail},
				"role":        &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: userRole},
				"enrollments": &graphql.Field{Type: graphql.NewList(enrollmentType), Resolve: r.userEnrollments},
			}
		}),
	})

	updateCourseInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateCourseInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"level":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"courses": &graphql.Field{
				Type:    graphql.NewList(courseType),
				Resolve: r.courses,
			},
			"course": &graphql.Field{
				Type: courseType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.course,
			},
			"users": &graphql.Field{
				Type:    graphql.NewList(userType),
				Resolve: r.users,
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.user,
			},
			"userByEmail": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.userByEmail,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"enroll": &graphql.Field{
				Type: enrollmentType,
				Args: graphql.FieldConfigArgument{
					"userId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"courseId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.enroll,
			},
			"updateCourse": &graphql.Field{
				Type: courseType,
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"data":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateCourseInput)},
				},
				Resolve: r.updateCourse,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Execute runs req against schema. Resolver failures are reported in the
// result's Errors, never as a Go error.
func Execute(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})
}
