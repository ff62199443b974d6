package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/app/repositories/testutil"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

func TestOfferingRepository_AddGetWithCampus(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repositories.NewOfferingRepository(tx)

	inst := testutil.SeedInstitution(t, ctx, tx, "State U")
	campus := testutil.SeedCampus(t, ctx, tx, "North", inst)

	offering := &models.Offering{
		Term:     "2026FA",
		Section:  "002",
		StartsOn: time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC),
		EndsOn:   time.Date(2026, time.December, 11, 0, 0, 0, 0, time.UTC),
		Campus:   &models.Campus{ID: campus.ID},
	}
	require.NoError(t, repo.Add(ctx, offering))

	got, err := repo.Get(ctx, offering.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2026FA", got.Term)
	assert.True(t, offering.StartsOn.Equal(got.StartsOn))
	assert.True(t, offering.EndsOn.Equal(got.EndsOn))
	require.NotNil(t, got.Campus)
	assert.Equal(t, campus.ID, got.Campus.ID)
	assert.Equal(t, "North", got.Campus.Name)
}

func TestOfferingRepository_GetOfferingsForCourse(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	course := testutil.SeedCourse(t, ctx, tx, "C", nil)
	other := testutil.SeedCourse(t, ctx, tx, "D", nil)
	offering := testutil.SeedOffering(t, ctx, tx, "2026FA", nil)
	unrelated := testutil.SeedOffering(t, ctx, tx, "2026SP", nil)

	require.NoError(t, repos.Courses.AddOffering(ctx, course, offering))
	require.NoError(t, repos.Courses.AddOffering(ctx, course, offering))
	require.NoError(t, repos.Courses.AddOffering(ctx, other, unrelated))

	got, err := repos.Offerings.GetOfferingsForCourse(ctx, course)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, offering.ID, got[0].ID)
	assert.Nil(t, got[0].Campus)

	require.NoError(t, repos.Courses.RemoveOffering(ctx, course, offering))
	got, err = repos.Offerings.GetOfferingsForCourse(ctx, course)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOfferingRepository_Meetings(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	offering := testutil.SeedOffering(t, ctx, tx, "2026FA", nil)
	tuesday := testutil.SeedMeeting(t, ctx, tx, time.Tuesday, 9*60)
	monday := testutil.SeedMeeting(t, ctx, tx, time.Monday, 13*60)

	require.NoError(t, repos.Offerings.AddMeeting(ctx, offering, tuesday))
	require.NoError(t, repos.Offerings.AddMeeting(ctx, offering, monday))
	require.NoError(t, repos.Offerings.AddMeeting(ctx, offering, monday))

	got, err := repos.Meetings.GetMeetingsForOffering(ctx, offering)
	require.NoError(t, err)
	assert.Equal(t, []*models.Meeting{monday, tuesday}, got)

	require.NoError(t, repos.Offerings.RemoveMeeting(ctx, offering, tuesday))
	require.NoError(t, repos.Offerings.RemoveMeeting(ctx, offering, tuesday))
	got, err = repos.Meetings.GetMeetingsForOffering(ctx, offering)
	require.NoError(t, err)
	assert.Equal(t, []*models.Meeting{monday}, got)
}

func TestMeetingRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repo := repositories.NewMeetingRepository(tx)

	meeting := &models.Meeting{Day: time.Friday, StartMinute: 600, DurationMinutes: 50, Room: "A-1"}
	require.NoError(t, repo.Add(ctx, meeting))

	meeting.Room = "A-2"
	meeting.Day = time.Thursday
	require.NoError(t, repo.Edit(ctx, meeting))

	got, err := repo.Get(ctx, meeting.ID)
	require.NoError(t, err)
	assert.Equal(t, meeting, got)

	require.NoError(t, repo.Delete(ctx, meeting))
	got, err = repo.Get(ctx, meeting.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.Get(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOfferingRepository_EditAndDelete(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	campus := testutil.SeedCampus(t, ctx, tx, "North", nil)
	course := testutil.SeedCourse(t, ctx, tx, "C", nil)
	offering := testutil.SeedOffering(t, ctx, tx, "2026FA", campus)
	require.NoError(t, repos.Courses.AddOffering(ctx, course, offering))

	offering.Term = "2027SP"
	offering.Section = "004"
	offering.StartsOn = time.Date(2027, time.January, 12, 0, 0, 0, 0, time.UTC)
	offering.EndsOn = time.Date(2027, time.May, 7, 0, 0, 0, 0, time.UTC)
	offering.Campus = nil
	require.NoError(t, repos.Offerings.Edit(ctx, offering))

	got, err := repos.Offerings.Get(ctx, offering.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2027SP", got.Term)
	assert.Equal(t, "004", got.Section)
	assert.True(t, offering.StartsOn.Equal(got.StartsOn))
	assert.True(t, offering.EndsOn.Equal(got.EndsOn))
	assert.Nil(t, got.Campus)

	require.NoError(t, repos.Offerings.Delete(ctx, offering))
	got, err = repos.Offerings.Get(ctx, offering.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, testutil.CountLinks(t, ctx, tx, "course_x_offering", "course", course.ID, "offering", offering.ID))

	// the campus is untouched
	left, err := repos.Campuses.Get(ctx, campus.ID)
	require.NoError(t, err)
	assert.NotNil(t, left)
}

func TestCourseRepository_OfferingBelongsToOneCourse(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	course := testutil.SeedCourse(t, ctx, tx, "C", nil)
	other := testutil.SeedCourse(t, ctx, tx, "D", nil)
	offering := testutil.SeedOffering(t, ctx, tx, "2026FA", nil)
	require.NoError(t, repos.Courses.AddOffering(ctx, course, offering))

	// run inside a savepoint so the failed insert leaves tx usable
	err := repos.InTransaction(ctx, func(ctx context.Context, inner *repositories.Repositories) error {
		return inner.Courses.AddOffering(ctx, other, offering)
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, repos.Courses.AddOffering(ctx, course, offering))
	got, err := repos.Offerings.GetOfferingsForCourse(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, got)

	// once detached it may move
	require.NoError(t, repos.Courses.RemoveOffering(ctx, course, offering))
	require.NoError(t, repos.Courses.AddOffering(ctx, other, offering))
}

func TestOfferingRepository_MeetingBelongsToOneOffering(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	repos := repositories.New(tx)

	first := testutil.SeedOffering(t, ctx, tx, "2026FA", nil)
	second := testutil.SeedOffering(t, ctx, tx, "2026SP", nil)
	meeting := testutil.SeedMeeting(t, ctx, tx, time.Wednesday, 8*60)
	require.NoError(t, repos.Offerings.AddMeeting(ctx, first, meeting))

	err := repos.InTransaction(ctx, func(ctx context.Context, inner *repositories.Repositories) error {
		return inner.Offerings.AddMeeting(ctx, second, meeting)
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	got, err := repos.Meetings.GetMeetingsForOffering(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, got)
}
