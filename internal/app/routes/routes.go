package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/athena/internal/app/controllers"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/middleware"
)

// Controllers groups the handlers mounted under /api/v1
type Controllers struct {
	Health       *controllers.HealthController
	Institutions *controllers.InstitutionController
	Campuses     *controllers.CampusController
	Courses      *controllers.CourseController
	Offerings    *controllers.OfferingController
	Meetings     *controllers.MeetingController
	Requirements *controllers.RequirementController
	Programs     *controllers.ProgramController
	Students     *controllers.StudentController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.GET("/health", c.Health.Health)

	// Reads need a known API key, writes additionally the admin role
	read := v1.Group("")
	read.Use(authMiddleware.APIKeyAuth())

	write := read.Group("")
	write.Use(authMiddleware.RoleRequired(models.RoleAdmin))

	// Institutions
	read.GET("/institution", c.Institutions.GetInstitutions)
	read.GET("/institution/:id", c.Institutions.GetInstitution)
	read.GET("/institution/:id/courses", c.Institutions.GetCourses)
	read.GET("/institution/:id/campuses", c.Institutions.GetCampuses)
	read.GET("/institution/:id/programs", c.Institutions.GetPrograms)
	write.POST("/institution", c.Institutions.CreateInstitution)
	write.PUT("/institution/:id", c.Institutions.UpdateInstitution)
	write.DELETE("/institution/:id", c.Institutions.DeleteInstitution)

	// Campuses
	read.GET("/campus", c.Campuses.GetCampuses)
	read.GET("/campus/:id", c.Campuses.GetCampus)
	write.POST("/campus", c.Campuses.CreateCampus)
	write.PUT("/campus/:id", c.Campuses.UpdateCampus)
	write.DELETE("/campus/:id", c.Campuses.DeleteCampus)

	// Courses
	read.GET("/course/:id", c.Courses.GetCourse)
	read.GET("/course/:id/offerings", c.Courses.GetOfferings)
	read.GET("/course/:id/requirements", c.Courses.GetSatisfiedRequirements)
	read.GET("/course/:id/prerequisites", c.Courses.GetPrerequisites)
	read.GET("/course/:id/concurrentprerequisites", c.Courses.GetConcurrentPrerequisites)
	write.POST("/course", c.Courses.CreateCourse)
	write.PUT("/course/:id", c.Courses.UpdateCourse)
	write.DELETE("/course/:id", c.Courses.DeleteCourse)
	write.POST("/course/:id/offering/:offeringId", c.Courses.AddOffering)
	write.DELETE("/course/:id/offering/:offeringId", c.Courses.RemoveOffering)
	write.POST("/course/:id/requirement/:requirementId", c.Courses.AddSatisfiedRequirement)
	write.DELETE("/course/:id/requirement/:requirementId", c.Courses.RemoveSatisfiedRequirement)
	write.POST("/course/:id/prerequisite/:requirementId", c.Courses.AddPrerequisite)
	write.DELETE("/course/:id/prerequisite/:requirementId", c.Courses.RemovePrerequisite)
	write.POST("/course/:id/concurrentprerequisite/:requirementId", c.Courses.AddConcurrentPrerequisite)
	write.DELETE("/course/:id/concurrentprerequisite/:requirementId", c.Courses.RemoveConcurrentPrerequisite)

	// Offerings
	read.GET("/offering/:id", c.Offerings.GetOffering)
	read.GET("/offering/:id/meetings", c.Offerings.GetMeetings)
	write.POST("/offering", c.Offerings.CreateOffering)
	write.PUT("/offering/:id", c.Offerings.UpdateOffering)
	write.DELETE("/offering/:id", c.Offerings.DeleteOffering)
	write.POST("/offering/:id/meeting/:meetingId", c.Offerings.AddMeeting)
	write.DELETE("/offering/:id/meeting/:meetingId", c.Offerings.RemoveMeeting)

	// Meetings
	read.GET("/meeting/:id", c.Meetings.GetMeeting)
	write.POST("/meeting", c.Meetings.CreateMeeting)
	write.PUT("/meeting/:id", c.Meetings.UpdateMeeting)
	write.DELETE("/meeting/:id", c.Meetings.DeleteMeeting)

	// Requirements
	read.GET("/requirement/:id", c.Requirements.GetRequirement)
	write.POST("/requirement", c.Requirements.CreateRequirement)
	write.PUT("/requirement/:id", c.Requirements.UpdateRequirement)
	write.DELETE("/requirement/:id", c.Requirements.DeleteRequirement)

	// Programs
	read.GET("/program/:id", c.Programs.GetProgram)
	read.GET("/program/:id/requirements", c.Programs.GetRequirements)
	write.POST("/program", c.Programs.CreateProgram)
	write.PUT("/program/:id", c.Programs.UpdateProgram)
	write.DELETE("/program/:id", c.Programs.DeleteProgram)
	write.POST("/program/:id/requirement/:requirementId", c.Programs.AddRequirement)
	write.DELETE("/program/:id/requirement/:requirementId", c.Programs.RemoveRequirement)

	// Students
	read.GET("/student/:id", c.Students.GetStudent)
	read.GET("/student/:id/completed", c.Students.GetCompletedCourses)
	read.GET("/student/:id/inprogress", c.Students.GetInProgressCourses)
	read.GET("/student/:id/programs", c.Students.GetPrograms)
	read.GET("/student/:id/institutions", c.Students.GetInstitutions)
	write.POST("/student", c.Students.CreateStudent)
	write.PUT("/student/:id", c.Students.UpdateStudent)
	write.DELETE("/student/:id", c.Students.DeleteStudent)
	write.POST("/student/:id/completed/:courseId", c.Students.MarkCompleted)
	write.DELETE("/student/:id/completed/:courseId", c.Students.MarkUncompleted)
	write.POST("/student/:id/inprogress/:courseId", c.Students.MarkInProgress)
	write.DELETE("/student/:id/inprogress/:courseId", c.Students.MarkNotInProgress)
	write.POST("/student/:id/program/:programId", c.Students.EnrollInProgram)
	write.DELETE("/student/:id/program/:programId", c.Students.UnenrollFromProgram)
	write.POST("/student/:id/institution/:institutionId", c.Students.EnrollInInstitution)
	write.DELETE("/student/:id/institution/:institutionId", c.Students.UnenrollFromInstitution)
}
