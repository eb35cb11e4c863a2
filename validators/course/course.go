package courseValidator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"campus/apperrors"
	"campus/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON (and GraphQL) names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

type userRecord struct {
	Name  string `json:"name" validate:"notblank,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  string `json:"role" validate:"oneof=student professor"`
}

type courseRecord struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	Description string `json:"description" validate:"max=5000"`
	Level       string `json:"level" validate:"oneof=beginner intermediate advanced"`
}

// ValidateCoursePatch checks the fields present in patch. Absent fields are
// not validated since they will not be written.
func ValidateCoursePatch(patch models.CoursePatch) error {
	return check(patch)
}

// ValidateUser checks a user record before it is stored.
func ValidateUser(user *models.User) error {
	return check(userRecord{Name: user.Name, Email: user.Email, Role: string(user.Role)})
}

// ValidateCourse checks a full course record before it is stored.
func ValidateCourse(course *models.Course) error {
	return check(courseRecord{Title: course.Title, Description: course.Description, Level: string(course.Level)})
}

func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.InvalidArgument("Invalid request data!", nil)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}

	if len(fields) == 1 {
		for _, msg := range fields {
			return apperrors.InvalidArgument(msg, fields)
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return apperrors.InvalidArgument(fmt.Sprintf("Validation failed for %s!", strings.Join(keys, ", ")), fields)
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", label)
	case "notblank":
		return fmt.Sprintf("%s cannot be blank!", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long!", label, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address!", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s!", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is invalid!", label)
	}
}
