package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
)

// OfferingController handles course offerings and their meetings
type OfferingController struct {
	offerings repositories.OfferingRepository
	meetings  repositories.MeetingRepository
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(repos *repositories.Repositories) *OfferingController {
	return &OfferingController{
		offerings: repos.Offerings,
		meetings:  repos.Meetings,
	}
}

func offeringID(o *models.Offering) *uuid.UUID { return &o.ID }

func (c *OfferingController) CreateOffering(ctx *gin.Context) {
	createEntity[models.Offering](ctx, c.offerings, offeringID)
}

func (c *OfferingController) GetOffering(ctx *gin.Context) {
	getEntity[models.Offering](ctx, c.offerings, "offering")
}

func (c *OfferingController) UpdateOffering(ctx *gin.Context) {
	updateEntity[models.Offering](ctx, c.offerings, offeringID, "offering")
}

func (c *OfferingController) DeleteOffering(ctx *gin.Context) {
	deleteEntity[models.Offering](ctx, c.offerings, "offering")
}

// GetMeetings lists the weekly meetings of an offering
func (c *OfferingController) GetMeetings(ctx *gin.Context) {
	listFor(ctx, c.offerings.Get, "id", "offering", c.meetings.GetMeetingsForOffering)
}

func (c *OfferingController) ends() (relationEnd[models.Offering], relationEnd[models.Meeting]) {
	return relationEnd[models.Offering]{get: c.offerings.Get, param: "id", what: "offering"},
		relationEnd[models.Meeting]{get: c.meetings.Get, param: "meetingId", what: "meeting"}
}

func (c *OfferingController) AddMeeting(ctx *gin.Context) {
	offering, meeting := c.ends()
	relate(ctx, offering, meeting, c.offerings.AddMeeting)
}

func (c *OfferingController) RemoveMeeting(ctx *gin.Context) {
	offering, meeting := c.ends()
	relate(ctx, offering, meeting, c.offerings.RemoveMeeting)
}
