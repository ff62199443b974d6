package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
)

// CourseController handles courses and the relations a course owns
type CourseController struct {
	courses      repositories.CourseRepository
	offerings    repositories.OfferingRepository
	requirements repositories.RequirementRepository
}

// NewCourseController creates a new CourseController
func NewCourseController(repos *repositories.Repositories) *CourseController {
	return &CourseController{
		courses:      repos.Courses,
		offerings:    repos.Offerings,
		requirements: repos.Requirements,
	}
}

func courseID(c *models.Course) *uuid.UUID { return &c.ID }

func (c *CourseController) course() relationEnd[models.Course] {
	return relationEnd[models.Course]{get: c.courses.Get, param: "id", what: "course"}
}

func (c *CourseController) requirement() relationEnd[models.Requirement] {
	return relationEnd[models.Requirement]{get: c.requirements.Get, param: "requirementId", what: "requirement"}
}

func (c *CourseController) offering() relationEnd[models.Offering] {
	return relationEnd[models.Offering]{get: c.offerings.Get, param: "offeringId", what: "offering"}
}

// CreateCourse handles course creation
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	createEntity[models.Course](ctx, c.courses, courseID)
}

// GetCourse retrieves a course by ID
func (c *CourseController) GetCourse(ctx *gin.Context) {
	getEntity[models.Course](ctx, c.courses, "course")
}

// UpdateCourse replaces a course
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	updateEntity[models.Course](ctx, c.courses, courseID, "course")
}

// DeleteCourse removes a course together with its relations
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	deleteEntity[models.Course](ctx, c.courses, "course")
}

// GetOfferings lists the offerings of a course
func (c *CourseController) GetOfferings(ctx *gin.Context) {
	listFor(ctx, c.courses.Get, "id", "course", c.offerings.GetOfferingsForCourse)
}

func (c *CourseController) AddOffering(ctx *gin.Context) {
	relate(ctx, c.course(), c.offering(), c.courses.AddOffering)
}

func (c *CourseController) RemoveOffering(ctx *gin.Context) {
	relate(ctx, c.course(), c.offering(), c.courses.RemoveOffering)
}

// GetSatisfiedRequirements lists the requirements a course satisfies
func (c *CourseController) GetSatisfiedRequirements(ctx *gin.Context) {
	listFor(ctx, c.courses.Get, "id", "course", c.requirements.GetRequirementsCourseSatisfies)
}

func (c *CourseController) AddSatisfiedRequirement(ctx *gin.Context) {
	relate(ctx, c.course(), c.requirement(), c.courses.AddSatisfiedRequirement)
}

func (c *CourseController) RemoveSatisfiedRequirement(ctx *gin.Context) {
	relate(ctx, c.course(), c.requirement(), c.courses.RemoveSatisfiedRequirement)
}

// GetPrerequisites lists the requirements that must be met before taking a course
func (c *CourseController) GetPrerequisites(ctx *gin.Context) {
	listFor(ctx, c.courses.Get, "id", "course", c.requirements.GetPrereqsForCourse)
}

func (c *CourseController) AddPrerequisite(ctx *gin.Context) {
	relate(ctx, c.course(), c.requirement(), c.courses.AddPrerequisite)
}

func (c *CourseController) RemovePrerequisite(ctx *gin.Context) {
	relate(ctx, c.course(), c.requirement(), c.courses.RemovePrerequisite)
}

// GetConcurrentPrerequisites lists the requirements that may also be met
// while taking a course
func (c *CourseController) GetConcurrentPrerequisites(ctx *gin.Context) {
	listFor(ctx, c.courses.Get, "id", "course", c.requirements.GetConcurrentPrereqsForCourse)
}

func (c *CourseController) AddConcurrentPrerequisite(ctx *gin.Context) {
	relate(ctx, c.course(), c.requirement(), c.courses.AddConcurrentPrerequisite)
}

func (c *CourseController) RemoveConcurrentPrerequisite(ctx *gin.Context) {
	relate(ctx, c.course(), c.requirement(), c.courses.RemoveConcurrentPrerequisite)
}
