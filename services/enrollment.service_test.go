package services_test

import (
	"context"
	"sync"
	"testing"

	"campus/apperrors"
	"campus/models"
	"campus/repositories"
	"campus/services"
	"campus/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func setup(t *testing.T) (*services.EnrollmentService, *gorm.DB, *testhelpers.Fixture) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	f := testhelpers.Seed(t, db)
	svc := services.NewEnrollmentService(repositories.NewDirectory(db), zaptest.NewLogger(t))
	return svc, db, f
}

func TestEnroll_CreatesStudentEnrollment(t *testing.T) {
	svc, db, f := setup(t)

	enrollment, err := svc.Enroll(context.Background(), f.John.ID, f.JSIntro.ID)
	require.NoError(t, err)

	assert.NotEmpty(t, enrollment.ID)
	assert.Equal(t, models.RoleStudent, enrollment.Role)
	require.NotNil(t, enrollment.User)
	require.NotNil(t, enrollment.Course)
	assert.Equal(t, "john.doe@example.com", enrollment.User.Email)
	assert.Equal(t, "Introduction to JavaScript", enrollment.Course.Title)
	assert.Equal(t, int64(1), testhelpers.CountEnrollments(t, db, f.John.ID, f.JSIntro.ID))
}

func TestEnroll_SecondCallIsRejected(t *testing.T) {
	svc, db, f := setup(t)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, f.John.ID, f.JSIntro.ID)
	require.NoError(t, err)

	_, err = svc.Enroll(ctx, f.John.ID, f.JSIntro.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.EqualError(t, err, "User is already enrolled in this course")
	assert.Equal(t, int64(1), testhelpers.CountEnrollments(t, db, f.John.ID, f.JSIntro.ID))
}

func TestEnroll_ExistingProfessorCannotEnrollAsStudent(t *testing.T) {
	svc, db, f := setup(t)

	_, err := svc.Enroll(context.Background(), f.Alice.ID, f.DB101.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	ok, err := svc.HasRole(context.Background(), f.Alice.ID, f.DB101.ID, models.RoleProfessor)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), testhelpers.CountEnrollments(t, db, f.Alice.ID, f.DB101.ID))
}

func TestEnroll_UnknownIDs(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   string
		courseID string
		message  string
	}{
		{name: "unknown user", userID: "00000000-0000-0000-0000-000000000000", courseID: f.JSIntro.ID, message: "User not found"},
		{name: "unknown course", userID: f.John.ID, courseID: "00000000-0000-0000-0000-000000000000", message: "Course not found"},
		{name: "blank user", userID: "", courseID: f.JSIntro.ID, message: "User not found"},
		{name: "malformed course", userID: f.John.ID, courseID: "not-a-uuid", message: "Course not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Enroll(ctx, tt.userID, tt.courseID)
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestEnroll_ConcurrentCallsCreateOneRow(t *testing.T) {
	svc, db, f := setup(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = svc.Enroll(ctx, f.Bob.ID, f.JSIntro.ID)
		}(i)
	}
	close(start)
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperrors.KindOf(err) == apperrors.KindAlreadyEnrolled:
			rejected++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, rejected)
	assert.Equal(t, int64(1), testhelpers.CountEnrollments(t, db, f.Bob.ID, f.JSIntro.ID))
}

// A rival enrollment for the pair lands after the existence check but before
// the insert; the unique index must turn the insert into AlreadyEnrolled.
func TestEnroll_UniqueIndexRejectsLateDuplicate(t *testing.T) {
	svc, db, f := setup(t)
	ctx := context.Background()

	injected := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:rival_enrollment", func(tx *gorm.DB) {
		if injected || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "enrollments" {
			return
		}
		injected = true
		rival := &models.Enrollment{UserID: f.Bob.ID, CourseID: f.JSIntro.ID, Role: models.RoleStudent}
		if err := tx.Session(&gorm.Session{NewDB: true}).Create(rival).Error; err != nil {
			_ = tx.AddError(err)
		}
	}))

	_, err := svc.Enroll(ctx, f.Bob.ID, f.JSIntro.ID)
	require.True(t, injected)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)
	assert.EqualError(t, err, "User is already enrolled in this course")

	// The rival row shared the failed transaction, so nothing survives
	assert.Equal(t, int64(0), testhelpers.CountEnrollments(t, db, f.Bob.ID, f.JSIntro.ID))
}

func TestHasRole(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userID   string
		courseID string
		role     models.Role
		want     bool
	}{
		{name: "professor of course", userID: f.Alice.ID, courseID: f.DB101.ID, role: models.RoleProfessor, want: true},
		{name: "professor is not a student", userID: f.Alice.ID, courseID: f.DB101.ID, role: models.RoleStudent, want: false},
		{name: "global professor without course role", userID: f.Alice.ID, courseID: f.JSIntro.ID, role: models.RoleProfessor, want: false},
		{name: "global professor enrolled as student", userID: f.Carol.ID, courseID: f.DB101.ID, role: models.RoleProfessor, want: false},
		{name: "not enrolled", userID: f.John.ID, courseID: f.DB101.ID, role: models.RoleStudent, want: false},
		{name: "unknown user", userID: "missing", courseID: f.DB101.ID, role: models.RoleProfessor, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasRole(ctx, tt.userID, tt.courseID, tt.role)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := svc.HasRole(ctx, f.Alice.ID, f.DB101.ID, models.Role("admin"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestUpdateCourse_ProfessorChangesLevel(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	course, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, models.CoursePatch{Level: strPtr("advanced")})
	require.NoError(t, err)

	assert.Equal(t, models.LevelAdvanced, course.Level)
	assert.Equal(t, f.DB101.Title, course.Title)
	assert.Equal(t, f.DB101.Description, course.Description)

	reread, err := svc.Course(ctx, f.DB101.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LevelAdvanced, reread.Level)
}

func TestUpdateCourse_MergePatch(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	_, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, models.CoursePatch{Title: strPtr("Relational Databases")})
	require.NoError(t, err)

	course, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, models.CoursePatch{Description: strPtr("")})
	require.NoError(t, err)

	assert.Equal(t, "Relational Databases", course.Title)
	assert.Equal(t, "", course.Description)
	assert.Equal(t, models.LevelIntermediate, course.Level)
}

func TestUpdateCourse_EmptyPatchReturnsCourseUnchanged(t *testing.T) {
	svc, _, f := setup(t)

	course, err := svc.UpdateCourse(context.Background(), f.DB101.ID, f.Alice.ID, models.CoursePatch{})
	require.NoError(t, err)
	assert.Equal(t, f.DB101.Title, course.Title)
	assert.Equal(t, models.LevelIntermediate, course.Level)
}

func TestUpdateCourse_SameValuesTwice(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()
	patch := models.CoursePatch{Title: strPtr("DB 101"), Level: strPtr("beginner")}

	first, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, patch)
	require.NoError(t, err)
	second, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, patch)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Level, second.Level)
	assert.Equal(t, first.Description, second.Description)
}

func TestUpdateCourse_RequiresCourseProfessor(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()
	patch := models.CoursePatch{Title: strPtr("Hijacked")}

	tests := []struct {
		name   string
		userID string
	}{
		{name: "student of course", userID: f.Carol.ID},
		{name: "not enrolled", userID: f.John.ID},
		{name: "unknown user", userID: "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateCourse(ctx, f.DB101.ID, tt.userID, patch)
			assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
			assert.EqualError(t, err, "Only professors of this course can edit it")
		})
	}

	// Alice is a professor globally but holds no role on JSIntro.
	_, err := svc.UpdateCourse(ctx, f.JSIntro.ID, f.Alice.ID, patch)
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	course, err := svc.Course(ctx, f.DB101.ID)
	require.NoError(t, err)
	assert.Equal(t, f.DB101.Title, course.Title)
}

func TestUpdateCourse_UnknownCourse(t *testing.T) {
	svc, _, f := setup(t)

	_, err := svc.UpdateCourse(context.Background(), "missing", f.Alice.ID, models.CoursePatch{Title: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "Course not found")
}

func TestUpdateCourse_InvalidPatchIsNotPersisted(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	_, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, models.CoursePatch{
		Title: strPtr("Renamed"),
		Level: strPtr("expert"),
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, err = svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, models.CoursePatch{Title: strPtr("  ")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	course, err := svc.Course(ctx, f.DB101.ID)
	require.NoError(t, err)
	assert.Equal(t, f.DB101.Title, course.Title)
	assert.Equal(t, models.LevelIntermediate, course.Level)
}

func TestUpdateCourse_AuthorizationBeforeValidation(t *testing.T) {
	svc, _, f := setup(t)

	_, err := svc.UpdateCourse(context.Background(), f.DB101.ID, f.John.ID, models.CoursePatch{Level: strPtr("expert")})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
}

func TestQueries(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	courses, err := svc.Courses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	user, err := svc.User(ctx, f.Alice.ID)
	require.NoError(t, err)
	require.Len(t, user.Enrollments, 1)
	assert.Equal(t, f.DB101.ID, user.Enrollments[0].CourseID)

	byEmail, err := svc.UserByEmail(ctx, "  john.doe@example.com ")
	require.NoError(t, err)
	assert.Equal(t, f.John.ID, byEmail.ID)

	_, err = svc.UserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Course(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestScenario_StudentEnrollsThenAppearsOnCourse(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	_, err := svc.Enroll(ctx, f.John.ID, f.JSIntro.ID)
	require.NoError(t, err)

	course, err := svc.Course(ctx, f.JSIntro.ID)
	require.NoError(t, err)
	require.Len(t, course.Enrollments, 1)
	assert.Equal(t, f.John.ID, course.Enrollments[0].UserID)
	require.NotNil(t, course.Enrollments[0].User)
	assert.Equal(t, "John Doe", course.Enrollments[0].User.Name)

	user, err := svc.User(ctx, f.John.ID)
	require.NoError(t, err)
	require.Len(t, user.Enrollments, 1)
	require.NotNil(t, user.Enrollments[0].Course)
	assert.Equal(t, "Introduction to JavaScript", user.Enrollments[0].Course.Title)
}

func TestScenario_ProfessorEditsThenOtherUserIsRejected(t *testing.T) {
	svc, _, f := setup(t)
	ctx := context.Background()

	course, err := svc.UpdateCourse(ctx, f.DB101.ID, f.Alice.ID, models.CoursePatch{Level: strPtr("advanced")})
	require.NoError(t, err)
	assert.Equal(t, models.LevelAdvanced, course.Level)

	_, err = svc.UpdateCourse(ctx, f.DB101.ID, f.Bob.ID, models.CoursePatch{Level: strPtr("beginner")})
	assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)

	course, err = svc.Course(ctx, f.DB101.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LevelAdvanced, course.Level)
}
