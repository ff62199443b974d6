// Package repotest provides an in-memory implementation of the repository
// contracts for handler and middleware tests.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/yigit/athena/internal/app/models"
	"github.com/yigit/athena/internal/app/repositories"
	"github.com/yigit/athena/internal/pkg/apperrors"
)

type pair [2]string

// state is everything a transaction can roll back
type state struct {
	institutions map[uuid.UUID]models.Institution
	campuses     map[uuid.UUID]models.Campus
	courses      map[uuid.UUID]models.Course
	offerings    map[uuid.UUID]models.Offering
	meetings     map[uuid.UUID]models.Meeting
	requirements map[uuid.UUID]models.Requirement
	programs     map[uuid.UUID]models.Program
	students     map[uuid.UUID]models.Student
	users        map[uuid.UUID]models.User

	links map[string]map[pair]bool
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (st state) clone() state {
	links := make(map[string]map[pair]bool, len(st.links))
	for table, pairs := range st.links {
		links[table] = copyMap(pairs)
	}
	return state{
		institutions: copyMap(st.institutions),
		campuses:     copyMap(st.campuses),
		courses:      copyMap(st.courses),
		offerings:    copyMap(st.offerings),
		meetings:     copyMap(st.meetings),
		requirements: copyMap(st.requirements),
		programs:     copyMap(st.programs),
		students:     copyMap(st.students),
		users:        copyMap(st.users),
		links:        links,
	}
}

// Store keeps every entity and link in maps. Set Err to make every
// operation fail with it.
//
// Links behave like the SQL tables: both ends must exist, a SingleOwner
// member takes one owner, and deleting an entity drops the links naming it.
// InTransaction rolls every map back when fn fails but does not isolate
// concurrent callers from each other.
type Store struct {
	mu sync.Mutex
	state

	Err error
}

// New returns an empty store
func New() *Store {
	return &Store{state: state{
		institutions: map[uuid.UUID]models.Institution{},
		campuses:     map[uuid.UUID]models.Campus{},
		courses:      map[uuid.UUID]models.Course{},
		offerings:    map[uuid.UUID]models.Offering{},
		meetings:     map[uuid.UUID]models.Meeting{},
		requirements: map[uuid.UUID]models.Requirement{},
		programs:     map[uuid.UUID]models.Program{},
		students:     map[uuid.UUID]models.Student{},
		users:        map[uuid.UUID]models.User{},
		links:        map[string]map[pair]bool{},
	}}
}

// Repositories binds every contract to the store
func (s *Store) Repositories() *repositories.Repositories {
	repos := &repositories.Repositories{
		Courses:      courseRepo{s},
		Offerings:    offeringRepo{s},
		Meetings:     meetingRepo{s},
		Requirements: requirementRepo{s},
		Students:     studentRepo{s},
		Campuses:     campusRepo{s},
		Institutions: institutionRepo{s},
		Programs:     programRepo{s},
		Users:        userRepo{s},
	}
	repos.SetTransactor(s.inTransaction)
	return repos
}

func (s *Store) inTransaction(ctx context.Context, fn func(ctx context.Context, repos *repositories.Repositories) error) error {
	s.mu.Lock()
	if s.Err != nil {
		err := s.Err
		s.mu.Unlock()
		return err
	}
	saved := s.state.clone()
	s.mu.Unlock()

	if err := fn(ctx, s.Repositories()); err != nil {
		s.mu.Lock()
		s.state = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

// Linked reports whether the pair is present in link
func (s *Store) Linked(link repositories.Link, owner, member any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links[link.Table][key(owner, member)]
}

func key(owner, member any) pair {
	return pair{fmt.Sprint(owner), fmt.Sprint(member)}
}

func (s *Store) lock() (func(), error) {
	s.mu.Lock()
	if s.Err != nil {
		err := s.Err
		s.mu.Unlock()
		return func() {}, err
	}
	return s.mu.Unlock, nil
}

func (s *Store) link(link repositories.Link, owner, member any) error {
	unlock, err := s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if !s.exists(link.Owner, owner) || !s.exists(link.Member, member) {
		return fmt.Errorf("add %s: %w", link.Table, apperrors.ErrNotFound)
	}
	k := key(owner, member)
	if link.SingleOwner {
		for p := range s.links[link.Table] {
			if p[1] == k[1] && p[0] != k[0] {
				return fmt.Errorf("add %s: %s already has an owner: %w", link.Table, k[1], apperrors.ErrConflict)
			}
		}
	}
	if s.links[link.Table] == nil {
		s.links[link.Table] = map[pair]bool{}
	}
	s.links[link.Table][k] = true
	return nil
}

// exists reports whether the row a link column refers to is present
func (s *Store) exists(column string, v any) bool {
	if column == "role" {
		return true
	}
	id, err := uuid.Parse(fmt.Sprint(v))
	if err != nil {
		return false
	}
	var ok bool
	switch column {
	case "student":
		_, ok = s.students[id]
	case "course":
		_, ok = s.courses[id]
	case "offering":
		_, ok = s.offerings[id]
	case "meeting":
		_, ok = s.meetings[id]
	case "requirement", "prereq":
		_, ok = s.requirements[id]
	case "program":
		_, ok = s.programs[id]
	case "institution":
		_, ok = s.institutions[id]
	case "user_id":
		_, ok = s.users[id]
	}
	return ok
}

// dropLinks removes every pair naming id. Ids are unique across tables.
func (s *Store) dropLinks(id uuid.UUID) {
	v := id.String()
	for _, pairs := range s.links {
		for p := range pairs {
			if p[0] == v || p[1] == v {
				delete(pairs, p)
			}
		}
	}
}

func (s *Store) unlink(link repositories.Link, owner, member any) error {
	unlock, err := s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	delete(s.links[link.Table], key(owner, member))
	return nil
}

// members returns the member ids linked to owner
func (s *Store) members(link repositories.Link, owner any) map[string]bool {
	out := map[string]bool{}
	o := fmt.Sprint(owner)
	for p := range s.links[link.Table] {
		if p[0] == o {
			out[p[1]] = true
		}
	}
	return out
}

func (s *Store) institution(ref *models.Institution) *models.Institution {
	if ref == nil {
		return nil
	}
	inst, ok := s.institutions[ref.ID]
	if !ok {
		return nil
	}
	return &inst
}

func conflict(what string, id uuid.UUID) error {
	return fmt.Errorf("add %s %s: %w", what, id, apperrors.ErrConflict)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func byName[T any](items []*T, name func(*T) string) []*T {
	sort.SliceStable(items, func(i, j int) bool { return name(items[i]) < name(items[j]) })
	return items
}

type courseRepo struct{ s *Store }

func (r courseRepo) view(c models.Course) *models.Course {
	c.Institution = r.s.institution(c.Institution)
	return &c
}

func (r courseRepo) Get(_ context.Context, id uuid.UUID) (*models.Course, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	c, ok := r.s.courses[id]
	if !ok {
		return nil, nil
	}
	return r.view(c), nil
}

func (r courseRepo) Add(_ context.Context, course *models.Course) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	ensureID(&course.ID)
	if _, ok := r.s.courses[course.ID]; ok {
		return conflict("course", course.ID)
	}
	r.s.courses[course.ID] = *course
	return nil
}

func (r courseRepo) Edit(_ context.Context, course *models.Course) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := r.s.courses[course.ID]; ok {
		r.s.courses[course.ID] = *course
	}
	return nil
}

func (r courseRepo) Delete(_ context.Context, course *models.Course) error {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return err
	}
	delete(r.s.courses, course.ID)
	r.s.dropLinks(course.ID)
	return nil
}

func (r courseRepo) filter(keep func(models.Course) bool) ([]*models.Course, error) {
	unlock, err := r.s.lock()
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := []*models.Course{}
	for _, c := range r.s.courses {
		if keep(c) {
			out = append(out, r.view(c))
		}
	}
	return byName(out, func(c *models.Course) string { return c.Name }), nil
}

func (r courseRepo) GetCoursesForInstitution(_ context.Context, institution *models.Institution) ([]*models.Course, error) {
	return r.filter(func(c models.Course) bool {
		return c.Institution != nil && c.Institution.ID == institution.ID
	})
}

func (r courseRepo) forStudent(link repositories.Link, student *models.Student) ([]*models.Course, error) {
	r.s.mu.Lock()
	ids := r.s.members(link, student.ID)
	r.s.mu.Unlock()
	return r.filter(func(c models.Course) bool { return ids[c.ID.String()] })
}

func (r courseRepo) GetCompletedCoursesForStudent(_ context.Context, student *models.Student) ([]*models.Course, error) {
	return r.forStudent(repositories.CompletedCourses, student)
}

func (r courseRepo) GetInProgressCoursesForStudent(_ context.Context, student *models.Student) ([]*models.Course, error) {
	return r.forStudent(repositories.InProgressCourses, student)
}

func (r courseRepo) MarkCourseAsCompletedForStudent(_ context.Context, course *models.Course, student *models.Student) error {
	return r.s.link(repositories.CompletedCourses, student.ID, course.ID)
}

func (r courseRepo) MarkCourseAsUncompletedForStudent(_ context.Context, course *models.Course, student *models.Student) error {
	return r.s.unlink(repositories.CompletedCourses, student.ID, course.ID)
}

func (r courseRepo) MarkCourseInProgressForStudent(_ context.Context, course *models.Course, student *models.Student) error {
	return r.s.link(repositories.InProgressCourses, student.ID, course.ID)
}

func (r courseRepo) MarkCourseNotInProgressForStudent(_ context.Context, course *models.Course, student *models.Student) error {
	return r.s.unlink(repositories.InProgressCourses, student.ID, course.ID)
}

func (r courseRepo) AddOffering(_ context.Context, course *models.Course, offering *models.Offering) error {
	return r.s.link(repositories.CourseOfferings, course.ID, offering.ID)
}

func (r courseRepo) RemoveOffering(_ context.Context, course *models.Course, offering *models.Offering) error {
	return r.s.unlink(repositories.CourseOfferings, course.ID, offering.ID)
}

func (r courseRepo) AddSatisfiedRequirement(_ context.Context, course *models.Course, req *models.Requirement) error {
	return r.s.link(repositories.SatisfiedRequirements, course.ID, req.ID)
}

func (r courseRepo) RemoveSatisfiedRequirement(_ context.Context, course *models.Course, req *models.Requirement) error {
	return r.s.unlink(repositories.SatisfiedRequirements, course.ID, req.ID)
}

func (r courseRepo) AddPrerequisite(_ context.Context, course *models.Course, req *models.Requirement) error {
	return r.s.link(repositories.Prerequisites, course.ID, req.ID)
}

func (r courseRepo) RemovePrerequisite(_ context.Context, course *models.Course, req *models.Requirement) error {
	return r.s.unlink(repositories.Prerequisites, course.ID, req.ID)
}

func (r courseRepo) AddConcurrentPrerequisite(_ context.Context, course *models.Course, req *models.Requirement) error {
	return r.s.link(repositories.ConcurrentPrerequisites, course.ID, req.ID)
}

func (r courseRepo) RemoveConcurrentPrerequisite(_ context.Context, course *models.Course, req *models.Requirement) error {
	return r.s.unlink(repositories.ConcurrentPrerequisites, course.ID, req.ID)
}
