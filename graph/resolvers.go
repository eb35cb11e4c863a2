package graph

import (
	"errors"
	"fmt"

	"campus/apperrors"
	"campus/models"

	"github.com/graphql-go/graphql"
)

type resolver struct {
	svc Service
}

// typed returns err as an *apperrors.Error so graphql-go can publish its
// code in the error extensions.
func typed(err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Persistence("Internal server error", err)
}

func stringArg(p graphql.ResolveParams, name string) string {
	switch v := p.Args[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// patchArg reads the UpdateCourseInput argument. A field that is missing or
// null stays nil and is left unchanged by the update.
func patchArg(p graphql.ResolveParams, name string) models.CoursePatch {
	var patch models.CoursePatch
	data, _ := p.Args[name].(map[string]interface{})
	field := func(key string) *string {
		v, ok := data[key]
		if !ok || v == nil {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		return &s
	}
	patch.Title = field("title")
	patch.Description = field("description")
	patch.Level = field("level")
	return patch
}

// Query

func (r *resolver) courses(p graphql.ResolveParams) (interface{}, error) {
	courses, err := r.svc.Courses(p.Context)
	if err != nil {
		return nil, typed(err)
	}
	return courses, nil
}

func (r *resolver) course(p graphql.ResolveParams) (interface{}, error) {
	course, err := r.svc.Course(p.Context, stringArg(p, "id"))
	if err != nil {
		return nil, typed(err)
	}
	return course, nil
}

func (r *resolver) users(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.svc.Users(p.Context)
	if err != nil {
		return nil, typed(err)
	}
	return users, nil
}

func (r *resolver) user(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.svc.User(p.Context, stringArg(p, "id"))
	if err != nil {
		return nil, typed(err)
	}
	return user, nil
}

func (r *resolver) userByEmail(p graphql.ResolveParams) (interface{}, error) {
	user, err := r.svc.UserByEmail(p.Context, stringArg(p, "email"))
	if err != nil {
		return nil, typed(err)
	}
	return user, nil
}

// Mutation

func (r *resolver) enroll(p graphql.ResolveParams) (interface{}, error) {
	enrollment, err := r.svc.Enroll(p.Context, stringArg(p, "userId"), stringArg(p, "courseId"))
	if err != nil {
		return nil, typed(err)
	}
	return enrollment, nil
}

func (r *resolver) updateCourse(p graphql.ResolveParams) (interface{}, error) {
	course, err := r.svc.UpdateCourse(p.Context, stringArg(p, "id"), stringArg(p, "userId"), patchArg(p, "data"))
	if err != nil {
		return nil, typed(err)
	}
	return course, nil
}

// Course

func asCourse(src interface{}) *models.Course {
	switch v := src.(type) {
	case *models.Course:
		return v
	case models.Course:
		return &v
	}
	return nil
}

func courseID(p graphql.ResolveParams) (interface{}, error) {
	if c := asCourse(p.Source); c != nil {
		return c.ID, nil
	}
	return nil, nil
}

func courseTitle(p graphql.ResolveParams) (interface{}, error) {
	if c := asCourse(p.Source); c != nil {
		return c.Title, nil
	}
	return nil, nil
}

func courseDescription(p graphql.ResolveParams) (interface{}, error) {
	if c := asCourse(p.Source); c != nil {
		return c.Description, nil
	}
	return nil, nil
}

func courseLevel(p graphql.ResolveParams) (interface{}, error) {
	if c := asCourse(p.Source); c != nil {
		return string(c.Level), nil
	}
	return nil, nil
}

// courseEnrollments loads the course again when it was reached through an
// enrollment and its own enrollments were not preloaded.
func (r *resolver) courseEnrollments(p graphql.ResolveParams) (interface{}, error) {
	c := asCourse(p.Source)
	if c == nil {
		return nil, nil
	}
	if c.Enrollments != nil {
		return c.Enrollments, nil
	}
	loaded, err := r.svc.Course(p.Context, c.ID)
	if err != nil {
		return nil, typed(err)
	}
	return loaded.Enrollments, nil
}

// User

func asUser(src interface{}) *models.User {
	switch v := src.(type) {
	case *models.User:
		return v
	case models.User:
		return &v
	}
	return nil
}

func userID(p graphql.ResolveParams) (interface{}, error) {
	if u := asUser(p.Source); u != nil {
		return u.ID, nil
	}
	return nil, nil
}

func userName(p graphql.ResolveParams) (interface{}, error) {
	if u := asUser(p.Source); u != nil {
		return u.Name, nil
	}
	return nil, nil
}

func userEmail(p graphql.ResolveParams) (interface{}, error) {
	if u := asUser(p.Source); u != nil {
		return u.Email, nil
	}
	return nil, nil
}

func userRole(p graphql.ResolveParams) (interface{}, error) {
	if u := asUser(p.Source); u != nil {
		return string(u.Role), nil
	}
	return nil, nil
}

func (r *resolver) userEnrollments(p graphql.ResolveParams) (interface{}, error) {
	u := asUser(p.Source)
	if u == nil {
		return nil, nil
	}
	if u.Enrollments != nil {
		return u.Enrollments, nil
	}
	loaded, err := r.svc.User(p.Context, u.ID)
	if err != nil {
		return nil, typed(err)
	}
	return loaded.Enrollments, nil
}

// Enrollment

func asEnrollment(src interface{}) *models.Enrollment {
	switch v := src.(type) {
	case *models.Enrollment:
		return v
	case models.Enrollment:
		return &v
	}
	return nil
}

func enrollmentID(p graphql.ResolveParams) (interface{}, error) {
	if e := asEnrollment(p.Source); e != nil {
		return e.ID, nil
	}
	return nil, nil
}

func enrollmentRole(p graphql.ResolveParams) (interface{}, error) {
	if e := asEnrollment(p.Source); e != nil {
		return string(e.Role), nil
	}
	return nil, nil
}

func (r *resolver) enrollmentUser(p graphql.ResolveParams) (interface{}, error) {
	e := asEnrollment(p.Source)
	if e == nil {
		return nil, nil
	}
	if e.User != nil {
		return e.User, nil
	}
	user, err := r.svc.User(p.Context, e.UserID)
	if err != nil {
		return nil, typed(err)
	}
	return user, nil
}

func (r *resolver) enrollmentCourse(p graphql.ResolveParams) (interface{}, error) {
	e := asEnrollment(p.Source)
	if e == nil {
		return nil, nil
	}
	if e.Course != nil {
		return e.Course, nil
	}
	course, err := r.svc.Course(p.Context, e.CourseID)
	if err != nil {
		return nil, typed(err)
	}
	return course, nil
}
