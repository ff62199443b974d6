package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
)

// ProgramController handles programs and the requirements they carry
type ProgramController struct {
	programs     repositories.ProgramRepository
	requirements repositories.RequirementRepository
}

// NewProgramController creates a new ProgramController
func NewProgramController(repos *repositories.Repositories) *ProgramController {
	return &ProgramController{
		programs:     repos.Programs,
		requirements: repos.Requirements,
	}
}

func programID(p *models.Program) *uuid.UUID { return &p.ID }

func (c *ProgramController) CreateProgram(ctx *gin.Context) {
	createEntity[models.Program](ctx, c.programs, programID)
}

func (c *ProgramController) GetProgram(ctx *gin.Context) {
	getEntity[models.Program](ctx, c.programs, "program")
}

func (c *ProgramController) UpdateProgram(ctx *gin.Context) {
	updateEntity[models.Program](ctx, c.programs, programID, "program")
}

func (c *ProgramController) DeleteProgram(ctx *gin.Context) {
	deleteEntity[models.Program](ctx, c.programs, "program")
}

// GetRequirements lists what a program requires
func (c *ProgramController) GetRequirements(ctx *gin.Context) {
	listFor(ctx, c.programs.Get, "id", "program", c.requirements.GetRequirementsForProgram)
}

func (c *ProgramController) ends() (relationEnd[models.Program], relationEnd[models.Requirement]) {
	return relationEnd[models.Program]{get: c.programs.Get, param: "id", what: "program"},
		relationEnd[models.Requirement]{get: c.requirements.Get, param: "requirementId", what: "requirement"}
}

func (c *ProgramController) AddRequirement(ctx *gin.Context) {
	program, requirement := c.ends()
	relate(ctx, program, requirement, c.programs.AddRequirement)
}

func (c *ProgramController) RemoveRequirement(ctx *gin.Context) {
	program, requirement := c.ends()
	relate(ctx, program, requirement, c.programs.RemoveRequirement)
}
