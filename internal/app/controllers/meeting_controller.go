package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
)

// MeetingController handles weekly meeting slots
type MeetingController struct {
	meetings repositories.MeetingRepository
}

func NewMeetingController(repos *repositories.Repositories) *MeetingController {
	return &MeetingController{meetings: repos.Meetings}
}

func meetingID(m *models.Meeting) *uuid.UUID { return &m.ID }

func (c *MeetingController) CreateMeeting(ctx *gin.Context) {
	createEntity[models.Meeting](ctx, c.meetings, meetingID)
}

func (c *MeetingController) GetMeeting(ctx *gin.Context) {
	getEntity[models.Meeting](ctx, c.meetings, "meeting")
}

func (c *MeetingController) UpdateMeeting(ctx *gin.Context) {
	updateEntity[models.Meeting](ctx, c.meetings, meetingID, "meeting")
}

func (c *MeetingController) DeleteMeeting(ctx *gin.Context) {
	deleteEntity[models.Meeting](ctx, c.meetings, "meeting")
}
