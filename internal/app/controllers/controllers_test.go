package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/athena/internal/app/controllers"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/models/dto"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/app/repositories/repotest"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(repos *repositories.Repositories) *gin.Engine {
	r := gin.New()

	courses := controllers.NewCourseController(repos)
	r.POST("/course", courses.CreateCourse)
	r.GET("/course/:id", courses.GetCourse)
	r.PUT("/course/:id", courses.UpdateCourse)
	r.DELETE("/course/:id", courses.DeleteCourse)
	r.GET("/course/:id/prerequisites", courses.GetPrerequisites)
	r.GET("/course/:id/requirements", courses.GetSatisfiedRequirements)
	r.POST("/course/:id/prerequisite/:requirementId", courses.AddPrerequisite)
	r.DELETE("/course/:id/prerequisite/:requirementId", courses.RemovePrerequisite)

	students := controllers.NewStudentController(repos)
	r.POST("/student", students.CreateStudent)
	r.GET("/student/:id/completed", students.GetCompletedCourses)
	r.GET("/student/:id/inprogress", students.GetInProgressCourses)
	r.POST("/student/:id/completed/:courseId", students.MarkCompleted)
	r.DELETE("/student/:id/completed/:courseId", students.MarkUncompleted)

	institutions := controllers.NewInstitutionController(repos)
	r.GET("/institution", institutions.GetInstitutions)
	r.GET("/institution/:id/courses", institutions.GetCourses)

	offerings := controllers.NewOfferingController(repos)
	r.POST("/offering", offerings.CreateOffering)

	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestCourseCRUD(t *testing.T) {
	store := repotest.New()
	r := newRouter(store.Repositories())

	status, env := do(t, r, http.MethodPost, "/course", map[string]string{"name": "Algorithms"})
	require.Equal(t, http.StatusCreated, status)
	var created models.Course
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Algorithms", created.Name)

	path := "/course/" + created.ID.String()

	status, env = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	var fetched models.Course
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created, fetched)

	status, _ = do(t, r, http.MethodPut, path, map[string]string{"name": "Advanced Algorithms"})
	require.Equal(t, http.StatusOK, status)

	status, env = do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Advanced Algorithms", fetched.Name)

	status, _ = do(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, env = do(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code)
}

func TestUpdateCourseRejectsMismatchedID(t *testing.T) {
	store := repotest.New()
	repos := store.Repositories()
	course := &models.Course{Name: "Databases"}
	require.NoError(t, repos.Courses.Add(context.Background(), course))
	r := newRouter(repos)

	other := uuid.New()
	status, env := do(t, r, http.MethodPut, "/course/"+course.ID.String(),
		map[string]string{"id": other.String(), "name": "Renamed"})

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, other.String())

	stored, err := repos.Courses.Get(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Databases", stored.Name)
}

func TestUpdateUnknownCourse(t *testing.T) {
	r := newRouter(repotest.New().Repositories())

	status, _ := do(t, r, http.MethodPut, "/course/"+uuid.NewString(), map[string]string{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreateCourseValidation(t *testing.T) {
	r := newRouter(repotest.New().Repositories())

	status, env := do(t, r, http.MethodPost, "/course", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
}

func TestCreateOfferingRejectsReversedDates(t *testing.T) {
	r := newRouter(repotest.New().Repositories())

	status, env := do(t, r, http.MethodPost, "/offering", map[string]string{
		"term":     "Fall 2026",
		"startsOn": "2026-12-15T00:00:00Z",
		"endsOn":   "2026-09-01T00:00:00Z",
	})

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
}

func TestMalformedID(t *testing.T) {
	r := newRouter(repotest.New().Repositories())

	status, env := do(t, r, http.MethodGet, "/course/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeResourceInvalid, env.Error.Code)
}

func TestPrerequisiteRoutes(t *testing.T) {
	ctx := context.Background()
	store := repotest.New()
	repos := store.Repositories()
	course := &models.Course{Name: "Compilers"}
	req := &models.Requirement{Name: "Automata"}
	require.NoError(t, repos.Courses.Add(ctx, course))
	require.NoError(t, repos.Requirements.Add(ctx, req))
	r := newRouter(repos)

	link := fmt.Sprintf("/course/%s/prerequisite/%s", course.ID, req.ID)

	// adding twice is fine
	for i := 0; i < 2; i++ {
		status, _ := do(t, r, http.MethodPost, link, nil)
		require.Equal(t, http.StatusNoContent, status)
	}
	assert.True(t, store.Linked(repositories.Prerequisites, course.ID, req.ID))
	assert.False(t, store.Linked(repositories.SatisfiedRequirements, course.ID, req.ID))

	status, env := do(t, r, http.MethodGet, "/course/"+course.ID.String()+"/prerequisites", nil)
	require.Equal(t, http.StatusOK, status)
	var prereqs []models.Requirement
	require.NoError(t, json.Unmarshal(env.Data, &prereqs))
	require.Len(t, prereqs, 1)
	assert.Equal(t, req.ID, prereqs[0].ID)

	status, env = do(t, r, http.MethodGet, "/course/"+course.ID.String()+"/requirements", nil)
	require.Equal(t, http.StatusOK, status)
	var satisfied []models.Requirement
	require.NoError(t, json.Unmarshal(env.Data, &satisfied))
	assert.Empty(t, satisfied)

	status, _ = do(t, r, http.MethodDelete, link, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.False(t, store.Linked(repositories.Prerequisites, course.ID, req.ID))
}

func TestRelationshipRouteUnknownMember(t *testing.T) {
	ctx := context.Background()
	store := repotest.New()
	repos := store.Repositories()
	course := &models.Course{Name: "Compilers"}
	require.NoError(t, repos.Courses.Add(ctx, course))
	r := newRouter(repos)

	missing := uuid.New()
	status, env := do(t, r, http.MethodPost, fmt.Sprintf("/course/%s/prerequisite/%s", course.ID, missing), nil)

	assert.Equal(t, http.StatusNotFound, status)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Message, "requirement")
	assert.False(t, store.Linked(repositories.Prerequisites, course.ID, missing))
}

func TestStudentProgressRoutes(t *testing.T) {
	ctx := context.Background()
	store := repotest.New()
	repos := store.Repositories()
	course := &models.Course{Name: "Linear Algebra"}
	require.NoError(t, repos.Courses.Add(ctx, course))
	r := newRouter(repos)

	status, env := do(t, r, http.MethodPost, "/student", map[string]string{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusCreated, status)
	var student models.Student
	require.NoError(t, json.Unmarshal(env.Data, &student))

	status, _ = do(t, r, http.MethodPost, fmt.Sprintf("/student/%s/completed/%s", student.ID, course.ID), nil)
	require.Equal(t, http.StatusNoContent, status)
	assert.True(t, store.Linked(repositories.CompletedCourses, student.ID, course.ID))

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/student/%s/completed", student.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var completed []models.Course
	require.NoError(t, json.Unmarshal(env.Data, &completed))
	require.Len(t, completed, 1)
	assert.Equal(t, course.ID, completed[0].ID)

	status, env = do(t, r, http.MethodGet, fmt.Sprintf("/student/%s/inprogress", student.ID), nil)
	require.Equal(t, http.StatusOK, status)
	var inProgress []models.Course
	require.NoError(t, json.Unmarshal(env.Data, &inProgress))
	assert.Empty(t, inProgress)

	status, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/student/%s/completed/%s", student.ID, course.ID), nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.False(t, store.Linked(repositories.CompletedCourses, student.ID, course.ID))
}

func TestCreateStudentRejectsBadEmail(t *testing.T) {
	r := newRouter(repotest.New().Repositories())

	status, env := do(t, r, http.MethodPost, "/student", map[string]string{"name": "Ada", "email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
}

func TestInstitutionListings(t *testing.T) {
	ctx := context.Background()
	store := repotest.New()
	repos := store.Repositories()
	inst := &models.Institution{Name: "State University"}
	require.NoError(t, repos.Institutions.Add(ctx, inst))
	require.NoError(t, repos.Courses.Add(ctx, &models.Course{Name: "Physics", Institution: inst}))
	require.NoError(t, repos.Courses.Add(ctx, &models.Course{Name: "Unaffiliated"}))
	r := newRouter(repos)

	status, env := do(t, r, http.MethodGet, "/institution", nil)
	require.Equal(t, http.StatusOK, status)
	var all struct {
		Items      []models.Institution `json:"items"`
		Pagination dto.PaginationInfo   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all.Items, 1)
	assert.Equal(t, 1, all.Pagination.TotalItems)

	status, env = do(t, r, http.MethodGet, "/institution/"+inst.ID.String()+"/courses", nil)
	require.Equal(t, http.StatusOK, status)
	var courses []models.Course
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Physics", courses[0].Name)
	require.NotNil(t, courses[0].Institution)
	assert.Equal(t, inst.ID, courses[0].Institution.ID)
}

func TestStoreUnavailable(t *testing.T) {
	store := repotest.New()
	store.Err = fmt.Errorf("dial tcp: %w", apperrors.ErrStoreUnavailable)
	r := newRouter(store.Repositories())

	status, env := do(t, r, http.MethodGet, "/course/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeStoreUnavailable, env.Error.Code)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"reachable", nil, http.StatusOK},
		{"unreachable", errors.New("connection refused"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", controllers.NewHealthController(pinger{tt.err}).Health)

			status, env := do(t, r, http.MethodGet, "/health", nil)

			assert.Equal(t, tt.status, status)
			var health dto.HealthResponse
			require.NoError(t, json.Unmarshal(env.Data, &health))
			assert.NotEmpty(t, health.Status)
		})
	}
}
