package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/middleware"
	"github.com/yigit/athena/internal/pkg/helpers"
)

// InstitutionController handles institutions and the catalog listed under them
type InstitutionController struct {
	institutions repositories.InstitutionRepository
	courses      repositories.CourseRepository
	campuses     repositories.CampusRepository
	programs     repositories.ProgramRepository
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(repos *repositories.Repositories) *InstitutionController {
	return &InstitutionController{
		institutions: repos.Institutions,
		courses:      repos.Courses,
		campuses:     repos.Campuses,
		programs:     repos.Programs,
	}
}

func institutionID(i *models.Institution) *uuid.UUID { return &i.ID }

// GetInstitutions lists every institution. The page and size query
// parameters select a page of the listing.
func (c *InstitutionController) GetInstitutions(ctx *gin.Context) {
	items, err := c.institutions.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, helpers.Paginate(ctx, items))
}

func (c *InstitutionController) CreateInstitution(ctx *gin.Context) {
	createEntity[models.Institution](ctx, c.institutions, institutionID)
}

func (c *InstitutionController) GetInstitution(ctx *gin.Context) {
	getEntity[models.Institution](ctx, c.institutions, "institution")
}

func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	updateEntity[models.Institution](ctx, c.institutions, institutionID, "institution")
}

// DeleteInstitution removes an institution. Courses, campuses and programs
// that referenced it are kept without one.
func (c *InstitutionController) DeleteInstitution(ctx *gin.Context) {
	deleteEntity[models.Institution](ctx, c.institutions, "institution")
}

func (c *InstitutionController) GetCourses(ctx *gin.Context) {
	listFor(ctx, c.institutions.Get, "id", "institution", c.courses.GetCoursesForInstitution)
}

func (c *InstitutionController) GetCampuses(ctx *gin.Context) {
	listFor(ctx, c.institutions.Get, "id", "institution", c.campuses.GetCampusesForInstitution)
}

func (c *InstitutionController) GetPrograms(ctx *gin.Context) {
	listFor(ctx, c.institutions.Get, "id", "institution", c.programs.GetProgramsForInstitution)
}
