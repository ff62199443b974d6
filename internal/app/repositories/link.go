package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/athena/internal/db"
	"github.com/yigit/athena/internal/pkg/dberrors"
	"github.com/yigit/athena/internal/pkg/logger"
)

// linkAlias is the table alias used for the link table in join reads
const linkAlias = "lk"

// Link is a many-to-many relation stored in a table keyed on the
// (Owner, Member) pair. Every relationship mutation goes through Add and
// Remove, which are safe to repeat and safe to race.
type Link struct {
	Table  string
	Owner  string
	Member string
	// SingleOwner marks relations where a member belongs to at most one
	// owner. The table carries a UNIQUE constraint on the member column and
	// linking a member to a second owner fails with ErrConflict.
	SingleOwner bool
}

// Relation kinds
var (
	CompletedCourses        = Link{Table: "student_x_completed_course", Owner: "student", Member: "course"}
	InProgressCourses       = Link{Table: "student_x_in_progress_course", Owner: "student", Member: "course"}
	CourseOfferings         = Link{Table: "course_x_offering", Owner: "course", Member: "offering", SingleOwner: true}
	OfferingMeetings        = Link{Table: "offering_x_meeting", Owner: "offering", Member: "meeting", SingleOwner: true}
	SatisfiedRequirements   = Link{Table: "course_requirements", Owner: "course", Member: "requirement"}
	Prerequisites           = Link{Table: "course_prereqs", Owner: "course", Member: "prereq"}
	ConcurrentPrerequisites = Link{Table: "course_concurrent_prereqs", Owner: "course", Member: "prereq"}
	ProgramRequirements     = Link{Table: "program_requirements", Owner: "program", Member: "requirement"}
	ProgramEnrollments      = Link{Table: "student_x_program", Owner: "student", Member: "program"}
	InstitutionEnrollments  = Link{Table: "student_x_institution", Owner: "student", Member: "institution"}
	UserRoles               = Link{Table: "user_roles", Owner: "user_id", Member: "role"}
)

var linkBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (l Link) String() string {
	return l.Table
}

func (l Link) pair(owner, member any) squirrel.Eq {
	return squirrel.Eq{l.Owner: owner, l.Member: member}
}

func (l Link) insertSQL(owner, member any) (string, []any, error) {
	// Only the pair key is absorbed. Other unique constraints, such as the
	// member column of a SingleOwner link, still raise 23505.
	return linkBuilder.Insert(l.Table).
		Columns(l.Owner, l.Member).
		Values(owner, member).
		Suffix(fmt.Sprintf("ON CONFLICT (%s, %s) DO NOTHING", l.Owner, l.Member)).
		ToSql()
}

func (l Link) deleteSQL(owner, member any) (string, []any, error) {
	return linkBuilder.Delete(l.Table).Where(l.pair(owner, member)).ToSql()
}

func (l Link) existsSQL(owner, member any) (string, []any, error) {
	return linkBuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From(l.Table).
		Where(l.pair(owner, member)).
		Suffix(")").
		ToSql()
}

// Add links owner to member. Linking an already linked pair succeeds and
// leaves a single row. A missing owner or member fails with ErrNotFound, and
// a SingleOwner member that already has another owner with ErrConflict.
func (l Link) Add(ctx context.Context, q db.Querier, owner, member any) error {
	sql, args, err := l.insertSQL(owner, member)
	if err != nil {
		logger.Error().Err(err).Str("link", l.Table).Msg("Error building link insert SQL")
		return fmt.Errorf("failed to build %s insert query: %w", l.Table, err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).
			Str("link", l.Table).
			Interface(l.Owner, owner).
			Interface(l.Member, member).
			Msg("Error inserting link row")
		return dberrors.Classify("add "+l.Table, err)
	}
	if tag.RowsAffected() == 0 {
		logger.Debug().Str("link", l.Table).Interface(l.Owner, owner).Interface(l.Member, member).Msg("Link already present")
	}
	return nil
}

// Remove unlinks owner from member. Removing an absent pair succeeds.
func (l Link) Remove(ctx context.Context, q db.Querier, owner, member any) error {
	sql, args, err := l.deleteSQL(owner, member)
	if err != nil {
		logger.Error().Err(err).Str("link", l.Table).Msg("Error building link delete SQL")
		return fmt.Errorf("failed to build %s delete query: %w", l.Table, err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).
			Str("link", l.Table).
			Interface(l.Owner, owner).
			Interface(l.Member, member).
			Msg("Error deleting link row")
		return dberrors.Classify("remove "+l.Table, err)
	}
	if tag.RowsAffected() == 0 {
		logger.Debug().Str("link", l.Table).Interface(l.Owner, owner).Interface(l.Member, member).Msg("Link already absent")
	}
	return nil
}

// Has reports whether owner is linked to member.
func (l Link) Has(ctx context.Context, q db.Querier, owner, member any) (bool, error) {
	sql, args, err := l.existsSQL(owner, member)
	if err != nil {
		return false, fmt.Errorf("failed to build %s exists query: %w", l.Table, err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		logger.Error().Err(err).Str("link", l.Table).Msg("Error checking link row")
		return false, dberrors.Classify("check "+l.Table, err)
	}
	return exists, nil
}

// MemberJoin joins the link table onto member rows aliased as alias.
// Combine with OwnerIs to read every member of one owner.
func (l Link) MemberJoin(alias string) string {
	return fmt.Sprintf("%s %s ON %s.%s = %s.id", l.Table, linkAlias, linkAlias, l.Member, alias)
}

// OwnerJoin joins the link table onto owner rows aliased as alias.
// Combine with MemberIs to read every owner of one member.
func (l Link) OwnerJoin(alias string) string {
	return fmt.Sprintf("%s %s ON %s.%s = %s.id", l.Table, linkAlias, linkAlias, l.Owner, alias)
}

// OwnerIs filters a join read down to one owner
func (l Link) OwnerIs(owner any) squirrel.Eq {
	return squirrel.Eq{linkAlias + "." + l.Owner: owner}
}

// MemberIs filters a join read down to one member
func (l Link) MemberIs(member any) squirrel.Eq {
	return squirrel.Eq{linkAlias + "." + l.Member: member}
}
