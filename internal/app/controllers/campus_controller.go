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

type CampusController struct {
	campuses repositories.CampusRepository
}

func NewCampusController(repos *repositories.Repositories) *CampusController {
	return &CampusController{campuses: repos.Campuses}
}

func campusID(c *models.Campus) *uuid.UUID { return &c.ID }

// GetCampuses lists every campus, one page at a time
func (c *CampusController) GetCampuses(ctx *gin.Context) {
	items, err := c.campuses.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, helpers.Paginate(ctx, items))
}

func (c *CampusController) CreateCampus(ctx *gin.Context) {
	createEntity[models.Campus](ctx, c.campuses, campusID)
}

func (c *CampusController) GetCampus(ctx *gin.Context) {
	getEntity[models.Campus](ctx, c.campuses, "campus")
}

func (c *CampusController) UpdateCampus(ctx *gin.Context) {
	updateEntity[models.Campus](ctx, c.campuses, campusID, "campus")
}

func (c *CampusController) DeleteCampus(ctx *gin.Context) {
	deleteEntity[models.Campus](ctx, c.campuses, "campus")
}
