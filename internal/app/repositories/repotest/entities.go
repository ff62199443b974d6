package repotest

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

// table implements the CRUD part of a contract over one map
type table[T any] struct {
	s    *Store
	what string
	rows func(*Store) map[uuid.UUID]T
	id   func(*T) *uuid.UUID
	name func(*T) string
	// view resolves references on the way out; nil returns a plain copy
	view func(*Store, T) *T
}

func (t table[T]) out(v T) *T {
	if t.view != nil {
		return t.view(t.s, v)
	}
	return &v
}

func (t table[T]) get(id uuid.UUID) (*T, error) {
	unlock, err := t.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	v, ok := t.rows(t.s)[id]
	if !ok {
		return nil, nil
	}
	return t.out(v), nil
}

func (t table[T]) add(v *T) error {
	unlock, err := t.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	id := t.id(v)
	ensureID(id)
	if _, ok := t.rows(t.s)[*id]; ok {
		return conflict(t.what, *id)
	}
	t.rows(t.s)[*id] = *v
	return nil
}

func (t table[T]) edit(v *T) error {
	unlock, err := t.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	id := *t.id(v)
	if _, ok := t.rows(t.s)[id]; ok {
		t.rows(t.s)[id] = *v
	}
	return nil
}

func (t table[T]) del(v *T) error {
	unlock, err := t.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	id := *t.id(v)
	delete(t.rows(t.s), id)
	t.s.dropLinks(id)
	return nil
}

func (t table[T]) filter(keep func(T) bool) ([]*T, error) {
	unlock, err := t.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []*T{}
	for _, v := range t.rows(t.s) {
		if keep == nil || keep(v) {
			out = append(out, t.out(v))
		}
	}
	return byName(out, t.name), nil
}

// linkedTo keeps the rows whose id is a member of owner in link
func (t table[T]) linkedTo(link repositories.Link, owner any) ([]*T, error) {
	t.s.mu.Lock()
	ids := t.s.members(link, owner)
	t.s.mu.Unlock()
	return t.filter(func(v T) bool { return ids[t.id(&v).String()] })
}

type offeringRepo struct{ s *Store }

func (r offeringRepo) t() table[models.Offering] {
	return table[models.Offering]{
		s: r.s, what: "offering",
		rows: func(s *Store) map[uuid.UUID]models.Offering { return s.offerings },
		id:   func(o *models.Offering) *uuid.UUID { return &o.ID },
		name: func(o *models.Offering) string { return o.StartsOn.Format("2006-01-02") + o.Section },
		view: func(s *Store, o models.Offering) *models.Offering {
			if o.Campus != nil {
				if c, ok := s.campuses[o.Campus.ID]; ok {
					o.Campus = &c
				} else {
					o.Campus = nil
				}
			}
			return &o
		},
	}
}

func (r offeringRepo) Get(_ context.Context, id uuid.UUID) (*models.Offering, error) {
	return r.t().get(id)
}
func (r offeringRepo) Add(_ context.Context, o *models.Offering) error    { return r.t().add(o) }
func (r offeringRepo) Edit(_ context.Context, o *models.Offering) error   { return r.t().edit(o) }
func (r offeringRepo) Delete(_ context.Context, o *models.Offering) error { return r.t().del(o) }

func (r offeringRepo) GetOfferingsForCourse(_ context.Context, course *models.Course) ([]*models.Offering, error) {
	return r.t().linkedTo(repositories.CourseOfferings, course.ID)
}

func (r offeringRepo) AddMeeting(_ context.Context, o *models.Offering, m *models.Meeting) error {
	return r.s.link(repositories.OfferingMeetings, o.ID, m.ID)
}

func (r offeringRepo) RemoveMeeting(_ context.Context, o *models.Offering, m *models.Meeting) error {
	return r.s.unlink(repositories.OfferingMeetings, o.ID, m.ID)
}

type meetingRepo struct{ s *Store }

func (r meetingRepo) t() table[models.Meeting] {
	return table[models.Meeting]{
		s: r.s, what: "meeting",
		rows: func(s *Store) map[uuid.UUID]models.Meeting { return s.meetings },
		id:   func(m *models.Meeting) *uuid.UUID { return &m.ID },
		name: func(m *models.Meeting) string { return m.Day.String() + m.Room },
	}
}

func (r meetingRepo) Get(_ context.Context, id uuid.UUID) (*models.Meeting, error) {
	return r.t().get(id)
}
func (r meetingRepo) Add(_ context.Context, m *models.Meeting) error    { return r.t().add(m) }
func (r meetingRepo) Edit(_ context.Context, m *models.Meeting) error   { return r.t().edit(m) }
func (r meetingRepo) Delete(_ context.Context, m *models.Meeting) error { return r.t().del(m) }

func (r meetingRepo) GetMeetingsForOffering(_ context.Context, o *models.Offering) ([]*models.Meeting, error) {
	return r.t().linkedTo(repositories.OfferingMeetings, o.ID)
}

type requirementRepo struct{ s *Store }

func (r requirementRepo) t() table[models.Requirement] {
	return table[models.Requirement]{
		s: r.s, what: "requirement",
		rows: func(s *Store) map[uuid.UUID]models.Requirement { return s.requirements },
		id:   func(q *models.Requirement) *uuid.UUID { return &q.ID },
		name: func(q *models.Requirement) string { return q.Name },
	}
}

func (r requirementRepo) Get(_ context.Context, id uuid.UUID) (*models.Requirement, error) {
	return r.t().get(id)
}
func (r requirementRepo) Add(_ context.Context, q *models.Requirement) error    { return r.t().add(q) }
func (r requirementRepo) Edit(_ context.Context, q *models.Requirement) error   { return r.t().edit(q) }
func (r requirementRepo) Delete(_ context.Context, q *models.Requirement) error { return r.t().del(q) }

func (r requirementRepo) GetRequirementsCourseSatisfies(_ context.Context, c *models.Course) ([]*models.Requirement, error) {
	return r.t().linkedTo(repositories.SatisfiedRequirements, c.ID)
}

func (r requirementRepo) GetPrereqsForCourse(_ context.Context, c *models.Course) ([]*models.Requirement, error) {
	return r.t().linkedTo(repositories.Prerequisites, c.ID)
}

func (r requirementRepo) GetConcurrentPrereqsForCourse(_ context.Context, c *models.Course) ([]*models.Requirement, error) {
	return r.t().linkedTo(repositories.ConcurrentPrerequisites, c.ID)
}

func (r requirementRepo) GetRequirementsForProgram(_ context.Context, p *models.Program) ([]*models.Requirement, error) {
	return r.t().linkedTo(repositories.ProgramRequirements, p.ID)
}

type studentRepo struct{ s *Store }

func (r studentRepo) t() table[models.Student] {
	return table[models.Student]{
		s: r.s, what: "student",
		rows: func(s *Store) map[uuid.UUID]models.Student { return s.students },
		id:   func(st *models.Student) *uuid.UUID { return &st.ID },
		name: func(st *models.Student) string { return st.Name },
	}
}

func (r studentRepo) Get(_ context.Context, id uuid.UUID) (*models.Student, error) {
	return r.t().get(id)
}

func (r studentRepo) GetByEmail(_ context.Context, email string) (*models.Student, error) {
	found, err := r.t().filter(func(st models.Student) bool { return st.Email == email })
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

func (r studentRepo) Add(_ context.Context, st *models.Student) error    { return r.t().add(st) }
func (r studentRepo) Edit(_ context.Context, st *models.Student) error   { return r.t().edit(st) }
func (r studentRepo) Delete(_ context.Context, st *models.Student) error { return r.t().del(st) }

type campusRepo struct{ s *Store }

func (r campusRepo) t() table[models.Campus] {
	return table[models.Campus]{
		s: r.s, what: "campus",
		rows: func(s *Store) map[uuid.UUID]models.Campus { return s.campuses },
		id:   func(c *models.Campus) *uuid.UUID { return &c.ID },
		name: func(c *models.Campus) string { return c.Name },
		view: func(s *Store, c models.Campus) *models.Campus {
			c.Institution = s.institution(c.Institution)
			return &c
		},
	}
}

func (r campusRepo) Get(_ context.Context, id uuid.UUID) (*models.Campus, error) {
	return r.t().get(id)
}
func (r campusRepo) GetAll(context.Context) ([]*models.Campus, error)   { return r.t().filter(nil) }
func (r campusRepo) Add(_ context.Context, c *models.Campus) error    { return r.t().add(c) }
func (r campusRepo) Edit(_ context.Context, c *models.Campus) error   { return r.t().edit(c) }
func (r campusRepo) Delete(_ context.Context, c *models.Campus) error { return r.t().del(c) }

func (r campusRepo) GetCampusesForInstitution(_ context.Context, inst *models.Institution) ([]*models.Campus, error) {
	return r.t().filter(func(c models.Campus) bool {
		return c.Institution != nil && c.Institution.ID == inst.ID
	})
}

type institutionRepo struct{ s *Store }

func (r institutionRepo) t() table[models.Institution] {
	return table[models.Institution]{
		s: r.s, what: "institution",
		rows: func(s *Store) map[uuid.UUID]models.Institution { return s.institutions },
		id:   func(i *models.Institution) *uuid.UUID { return &i.ID },
		name: func(i *models.Institution) string { return i.Name },
	}
}

func (r institutionRepo) Get(_ context.Context, id uuid.UUID) (*models.Institution, error) {
	return r.t().get(id)
}
func (r institutionRepo) GetAll(context.Context) ([]*models.Institution, error) {
	return r.t().filter(nil)
}
func (r institutionRepo) Add(_ context.Context, i *models.Institution) error    { return r.t().add(i) }
func (r institutionRepo) Edit(_ context.Context, i *models.Institution) error   { return r.t().edit(i) }
func (r institutionRepo) Delete(_ context.Context, i *models.Institution) error { return r.t().del(i) }

func (r institutionRepo) GetInstitutionsForStudent(_ context.Context, st *models.Student) ([]*models.Institution, error) {
	return r.t().linkedTo(repositories.InstitutionEnrollments, st.ID)
}

func (r institutionRepo) EnrollStudent(_ context.Context, i *models.Institution, st *models.Student) error {
	return r.s.link(repositories.InstitutionEnrollments, st.ID, i.ID)
}

func (r institutionRepo) UnenrollStudent(_ context.Context, i *models.Institution, st *models.Student) error {
	return r.s.unlink(repositories.InstitutionEnrollments, st.ID, i.ID)
}

type programRepo struct{ s *Store }

func (r programRepo) t() table[models.Program] {
	return table[models.Program]{
		s: r.s, what: "program",
		rows: func(s *Store) map[uuid.UUID]models.Program { return s.programs },
		id:   func(p *models.Program) *uuid.UUID { return &p.ID },
		name: func(p *models.Program) string { return p.Name },
		view: func(s *Store, p models.Program) *models.Program {
			p.Institution = s.institution(p.Institution)
			return &p
		},
	}
}

func (r programRepo) Get(_ context.Context, id uuid.UUID) (*models.Program, error) {
	return r.t().get(id)
}
func (r programRepo) Add(_ context.Context, p *models.Program) error    { return r.t().add(p) }
func (r programRepo) Edit(_ context.Context, p *models.Program) error   { return r.t().edit(p) }
func (r programRepo) Delete(_ context.Context, p *models.Program) error { return r.t().del(p) }

func (r programRepo) GetProgramsForInstitution(_ context.Context, inst *models.Institution) ([]*models.Program, error) {
	return r.t().filter(func(p models.Program) bool {
		return p.Institution != nil && p.Institution.ID == inst.ID
	})
}

func (r programRepo) GetProgramsForStudent(_ context.Context, st *models.Student) ([]*models.Program, error) {
	return r.t().linkedTo(repositories.ProgramEnrollments, st.ID)
}

func (r programRepo) EnrollStudent(_ context.Context, p *models.Program, st *models.Student) error {
	return r.s.link(repositories.ProgramEnrollments, st.ID, p.ID)
}

func (r programRepo) UnenrollStudent(_ context.Context, p *models.Program, st *models.Student) error {
	return r.s.unlink(repositories.ProgramEnrollments, st.ID, p.ID)
}

func (r programRepo) AddRequirement(_ context.Context, p *models.Program, q *models.Requirement) error {
	return r.s.link(repositories.ProgramRequirements, p.ID, q.ID)
}

func (r programRepo) RemoveRequirement(_ context.Context, p *models.Program, q *models.Requirement) error {
	return r.s.unlink(repositories.ProgramRequirements, p.ID, q.ID)
}

type userRepo struct{ s *Store }

func (r userRepo) t() table[models.User] {
	return table[models.User]{
		s: r.s, what: "user",
		rows: func(s *Store) map[uuid.UUID]models.User { return s.users },
		id:   func(u *models.User) *uuid.UUID { return &u.ID },
		name: func(u *models.User) string { return u.ID.String() },
		view: func(s *Store, u models.User) *models.User {
			if u.Student != nil {
				if st, ok := s.students[u.Student.ID]; ok {
					u.Student = &st
				} else {
					u.Student = nil
				}
			}
			return &u
		},
	}
}

func (r userRepo) Get(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.t().get(id)
}

func (r userRepo) Add(ctx context.Context, u *models.User) error {
	if u.Student != nil {
		students := studentRepo{r.s}
		existing, err := students.Get(ctx, u.Student.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := students.Add(ctx, u.Student); err != nil {
				return err
			}
		}
	}
	return r.t().add(u)
}

func (r userRepo) Delete(_ context.Context, u *models.User) error { return r.t().del(u) }

func (r userRepo) AddToRole(_ context.Context, u *models.User, role models.Role) error {
	if !role.Valid() {
		return apperrors.ErrInvalidArgument
	}
	return r.s.link(repositories.UserRoles, u.ID, role)
}

func (r userRepo) RemoveFromRole(_ context.Context, u *models.User, role models.Role) error {
	return r.s.unlink(repositories.UserRoles, u.ID, role)
}

func (r userRepo) IsInRole(_ context.Context, u *models.User, role models.Role) (bool, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return false, err
	}
	return r.s.links[repositories.UserRoles.Table][key(u.ID, role)], nil
}

func (r userRepo) GetUsersInRole(_ context.Context, role models.Role) ([]*models.User, error) {
	r.s.mu.Lock()
	want := string(role)
	ids := map[string]bool{}
	for p := range r.s.links[repositories.UserRoles.Table] {
		if p[1] == want {
			ids[p[0]] = true
		}
	}
	r.s.mu.Unlock()
	return r.t().filter(func(u models.User) bool { return ids[u.ID.String()] })
}

var (
	_ repositories.CourseRepository      = courseRepo{}
	_ repositories.OfferingRepository    = offeringRepo{}
	_ repositories.MeetingRepository     = meetingRepo{}
	_ repositories.RequirementRepository = requirementRepo{}
	_ repositories.StudentRepository     = studentRepo{}
	_ repositories.CampusRepository      = campusRepo{}
	_ repositories.InstitutionRepository = institutionRepo{}
	_ repositories.ProgramRepository     = programRepo{}
	_ repositories.UserRepository        = userRepo{}
)
