package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
)

// RequirementController handles requirements. Links to courses and programs
// are managed from those resources.
type RequirementController struct {
	requirements repositories.RequirementRepository
}

func NewRequirementController(repos *repositories.Repositories) *RequirementController {
	return &RequirementController{requirements: repos.Requirements}
}

func requirementID(r *models.Requirement) *uuid.UUID { return &r.ID }

func (c *RequirementController) CreateRequirement(ctx *gin.Context) {
	createEntity[models.Requirement](ctx, c.requirements, requirementID)
}

func (c *RequirementController) GetRequirement(ctx *gin.Context) {
	getEntity[models.Requirement](ctx, c.requirements, "requirement")
}

func (c *RequirementController) UpdateRequirement(ctx *gin.Context) {
	updateEntity[models.Requirement](ctx, c.requirements, requirementID, "requirement")
}

func (c *RequirementController) DeleteRequirement(ctx *gin.Context) {
	deleteEntity[models.Requirement](ctx, c.requirements, "requirement")
}
