package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
)

// StudentController handles students, their course progress and enrollments
type StudentController struct {
	students     repositories.StudentRepository
	courses      repositories.CourseRepository
	programs     repositories.ProgramRepository
	institutions repositories.InstitutionRepository
}

// NewStudentController creates a new StudentController
func NewStudentController(repos *repositories.Repositories) *StudentController {
	return &StudentController{
		students:     repos.Students,
		courses:      repos.Courses,
		programs:     repos.Programs,
		institutions: repos.Institutions,
	}
}

func studentID(s *models.Student) *uuid.UUID { return &s.ID }

func (c *StudentController) student() relationEnd[models.Student] {
	return relationEnd[models.Student]{get: c.students.Get, param: "id", what: "student"}
}

func (c *StudentController) course() relationEnd[models.Course] {
	return relationEnd[models.Course]{get: c.courses.Get, param: "courseId", what: "course"}
}

func (c *StudentController) CreateStudent(ctx *gin.Context) {
	createEntity[models.Student](ctx, c.students, studentID)
}

func (c *StudentController) GetStudent(ctx *gin.Context) {
	getEntity[models.Student](ctx, c.students, "student")
}

func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	updateEntity[models.Student](ctx, c.students, studentID, "student")
}

// DeleteStudent removes a student along with progress and enrollments
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	deleteEntity[models.Student](ctx, c.students, "student")
}

// GetCompletedCourses lists the courses a student has completed
func (c *StudentController) GetCompletedCourses(ctx *gin.Context) {
	listFor(ctx, c.students.Get, "id", "student", c.courses.GetCompletedCoursesForStudent)
}

func (c *StudentController) MarkCompleted(ctx *gin.Context) {
	relate(ctx, c.student(), c.course(), flip(c.courses.MarkCourseAsCompletedForStudent))
}

func (c *StudentController) MarkUncompleted(ctx *gin.Context) {
	relate(ctx, c.student(), c.course(), flip(c.courses.MarkCourseAsUncompletedForStudent))
}

// GetInProgressCourses lists the courses a student is currently taking
func (c *StudentController) GetInProgressCourses(ctx *gin.Context) {
	listFor(ctx, c.students.Get, "id", "student", c.courses.GetInProgressCoursesForStudent)
}

func (c *StudentController) MarkInProgress(ctx *gin.Context) {
	relate(ctx, c.student(), c.course(), flip(c.courses.MarkCourseInProgressForStudent))
}

func (c *StudentController) MarkNotInProgress(ctx *gin.Context) {
	relate(ctx, c.student(), c.course(), flip(c.courses.MarkCourseNotInProgressForStudent))
}

// GetPrograms lists the programs a student is enrolled in
func (c *StudentController) GetPrograms(ctx *gin.Context) {
	listFor(ctx, c.students.Get, "id", "student", c.programs.GetProgramsForStudent)
}

func (c *StudentController) program() relationEnd[models.Program] {
	return relationEnd[models.Program]{get: c.programs.Get, param: "programId", what: "program"}
}

func (c *StudentController) EnrollInProgram(ctx *gin.Context) {
	relate(ctx, c.student(), c.program(), flip(c.programs.EnrollStudent))
}

func (c *StudentController) UnenrollFromProgram(ctx *gin.Context) {
	relate(ctx, c.student(), c.program(), flip(c.programs.UnenrollStudent))
}

// GetInstitutions lists the institutions a student is enrolled at
func (c *StudentController) GetInstitutions(ctx *gin.Context) {
	listFor(ctx, c.students.Get, "id", "student", c.institutions.GetInstitutionsForStudent)
}

func (c *StudentController) institution() relationEnd[models.Institution] {
	return relationEnd[models.Institution]{get: c.institutions.Get, param: "institutionId", what: "institution"}
}

func (c *StudentController) EnrollInInstitution(ctx *gin.Context) {
	relate(ctx, c.student(), c.institution(), flip(c.institutions.EnrollStudent))
}

func (c *StudentController) UnenrollFromInstitution(ctx *gin.Context) {
	relate(ctx, c.student(), c.institution(), flip(c.institutions.UnenrollStudent))
}
