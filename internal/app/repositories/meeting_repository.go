package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type meetingRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewMeetingRepository creates a MeetingRepository running on q
func NewMeetingRepository(q db.Querier) MeetingRepository {
	return &meetingRepository{q: q, sb: newStatementBuilder()}
}

func (r *meetingRepository) selectMeetings() squirrel.SelectBuilder {
	return r.sb.Select("m.id", "m.day", "m.start_minute", "m.duration_minutes", "m.room").From("meetings m")
}

func scanMeeting(row scanner) (*models.Meeting, error) {
	m := &models.Meeting{}
	var day int16
	if err := row.Scan(&m.ID, &day, &m.StartMinute, &m.DurationMinutes, &m.Room); err != nil {
		return nil, err
	}
	m.Day = time.Weekday(day)
	return m, nil
}

func (r *meetingRepository) Get(ctx context.Context, id uuid.UUID) (*models.Meeting, error) {
	qb := r.selectMeetings().Where(squirrel.Eq{"m.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get meeting", qb, scanMeeting)
}

func (r *meetingRepository) Add(ctx context.Context, meeting *models.Meeting) error {
	ensureID(&meeting.ID)
	return exec(ctx, r.q, "add meeting", r.sb.Insert("meetings").
		Columns("id", "day", "start_minute", "duration_minutes", "room").
		Values(meeting.ID, int16(meeting.Day), meeting.StartMinute, meeting.DurationMinutes, meeting.Room))
}

func (r *meetingRepository) Edit(ctx context.Context, meeting *models.Meeting) error {
	return exec(ctx, r.q, "edit meeting", r.sb.Update("meetings").
		SetMap(map[string]interface{}{
			"day":              int16(meeting.Day),
			"start_minute":     meeting.StartMinute,
			"duration_minutes": meeting.DurationMinutes,
			"room":             meeting.Room,
		}).
		Where(squirrel.Eq{"id": meeting.ID}))
}

func (r *meetingRepository) Delete(ctx context.Context, meeting *models.Meeting) error {
	return exec(ctx, r.q, "delete meeting", r.sb.Delete("meetings").Where(squirrel.Eq{"id": meeting.ID}))
}

func (r *meetingRepository) GetMeetingsForOffering(ctx context.Context, offering *models.Offering) ([]*models.Meeting, error) {
	qb := r.selectMeetings().
		Join(OfferingMeetings.MemberJoin("m")).
		Where(OfferingMeetings.OwnerIs(offering.ID)).
		OrderBy("m.day", "m.start_minute", "m.id")
	return queryAll(ctx, r.q, "get meetings for offering", qb, scanMeeting)
}
