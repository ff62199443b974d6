package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/db"
)

type offeringRepository struct {
	q  db.Querier
	sb squirrel.StatementBuilderType
}

// NewOfferingRepository creates an OfferingRepository running on q
func NewOfferingRepository(q db.Querier) OfferingRepository {
	return &offeringRepository{q: q, sb: newStatementBuilder()}
}

func (r *offeringRepository) selectOfferings() squirrel.SelectBuilder {
	return r.sb.Select(
		"o.id", "o.term", "o.section", "o.starts_on", "o.ends_on",
		"ca.id", "ca.name", "ca.description",
	).From("offerings o")
}

func withOfferingCampus(qb squirrel.SelectBuilder) squirrel.SelectBuilder {
	return qb.LeftJoin("campuses ca ON ca.id = o.campus").OrderBy("o.starts_on", "o.section", "o.id")
}

func scanOffering(row scanner) (*models.Offering, error) {
	o := &models.Offering{}
	var (
		campusID   *uuid.UUID
		campusName *string
		campusDesc *string
	)
	if err := row.Scan(&o.ID, &o.Term, &o.Section, &o.StartsOn, &o.EndsOn, &campusID, &campusName, &campusDesc); err != nil {
		return nil, err
	}
	if campusID != nil {
		o.Campus = &models.Campus{ID: *campusID}
		if campusName != nil {
			o.Campus.Name = *campusName
		}
		if campusDesc != nil {
			o.Campus.Description = *campusDesc
		}
	}
	return o, nil
}

func offeringCampusID(o *models.Offering) *uuid.UUID {
	if o.Campus == nil {
		return nil
	}
	id := o.Campus.ID
	return &id
}

// Get retrieves an offering with its campus
func (r *offeringRepository) Get(ctx context.Context, id uuid.UUID) (*models.Offering, error) {
	qb := withOfferingCampus(r.selectOfferings()).Where(squirrel.Eq{"o.id": id}).Limit(1)
	return queryOne(ctx, r.q, "get offering", qb, scanOffering)
}

func (r *offeringRepository) Add(ctx context.Context, offering *models.Offering) error {
	ensureID(&offering.ID)
	return exec(ctx, r.q, "add offering", r.sb.Insert("offerings").
		Columns("id", "term", "section", "starts_on", "ends_on", "campus").
		Values(offering.ID, offering.Term, offering.Section, offering.StartsOn, offering.EndsOn, offeringCampusID(offering)))
}

func (r *offeringRepository) Edit(ctx context.Context, offering *models.Offering) error {
	return exec(ctx, r.q, "edit offering", r.sb.Update("offerings").
		SetMap(map[string]interface{}{
			"term":      offering.Term,
			"section":   offering.Section,
			"starts_on": offering.StartsOn,
			"ends_on":   offering.EndsOn,
			"campus":    offeringCampusID(offering),
		}).
		Where(squirrel.Eq{"id": offering.ID}))
}

func (r *offeringRepository) Delete(ctx context.Context, offering *models.Offering) error {
	return exec(ctx, r.q, "delete offering", r.sb.Delete("offerings").Where(squirrel.Eq{"id": offering.ID}))
}

// GetOfferingsForCourse reads the course_x_offering relation. It is written
// through CourseRepository.AddOffering and RemoveOffering only.
func (r *offeringRepository) GetOfferingsForCourse(ctx context.Context, course *models.Course) ([]*models.Offering, error) {
	qb := withOfferingCampus(r.selectOfferings().Join(CourseOfferings.MemberJoin("o"))).
		Where(CourseOfferings.OwnerIs(course.ID))
	return queryAll(ctx, r.q, "get offerings for course", qb, scanOffering)
}

func (r *offeringRepository) AddMeeting(ctx context.Context, offering *models.Offering, meeting *models.Meeting) error {
	return OfferingMeetings.Add(ctx, r.q, offering.ID, meeting.ID)
}

func (r *offeringRepository) RemoveMeeting(ctx context.Context, offering *models.Offering, meeting *models.Meeting) error {
	return OfferingMeetings.Remove(ctx, r.q, offering.ID, meeting.ID)
}
