package presenter

import (
	"context"
	"sync"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/store"
)

type recorder struct {
	mu            sync.Mutex
	notifications []Notification
	routes        []Route
}

func (r *recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *recorder) Navigate(_ context.Context, to Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, to)
}

// membersAPI is an in-memory stand-in for the team members endpoint.
type membersAPI struct {
	members []domain.TeamMember
	nextID  int64
	fail    error
	calls   int
}

func (a *membersAPI) List(context.Context) ([]domain.TeamMember, error) {
	a.calls++
	if a.fail != nil {
		return nil, a.fail
	}
	return append([]domain.TeamMember{}, a.members...), nil
}

func (a *membersAPI) Get(_ context.Context, id int64) (domain.TeamMember, error) {
	a.calls++
	if a.fail != nil {
		return domain.TeamMember{}, a.fail
	}
	for _, m := range a.members {
		if m.ID == id {
			return m, nil
		}
	}
	return domain.TeamMember{}, notFound()
}

func (a *membersAPI) Create(_ context.Context, d domain.TeamMemberDraft) (domain.TeamMember, error) {
	a.calls++
	if a.fail != nil {
		return domain.TeamMember{}, a.fail
	}
	a.nextID++
	m := fromDraft(a.nextID, d)
	a.members = append(a.members, m)
	return m, nil
}

func (a *membersAPI) Update(_ context.Context, id int64, d domain.TeamMemberDraft) (domain.TeamMember, error) {
	a.calls++
	if a.fail != nil {
		return domain.TeamMember{}, a.fail
	}
	for i, m := range a.members {
		if m.ID == id {
			a.members[i] = fromDraft(id, d)
			return a.members[i], nil
		}
	}
	return domain.TeamMember{}, notFound()
}

func (a *membersAPI) Delete(_ context.Context, id int64) error {
	a.calls++
	if a.fail != nil {
		return a.fail
	}
	for i, m := range a.members {
		if m.ID == id {
			a.members = append(a.members[:i], a.members[i+1:]...)
			return nil
		}
	}
	return notFound()
}

func fromDraft(id int64, d domain.TeamMemberDraft) domain.TeamMember {
	m := domain.TeamMember{
		ID:          id,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Email:       d.Email,
		PhoneNumber: d.PhoneNumber,
	}
	if d.RoleID != nil {
		m.Role = &domain.Role{ID: *d.RoleID, Name: domain.RoleRegular}
	}
	return m
}

type rolesAPI struct {
	roles []domain.Role
	fail  error
}

func (a *rolesAPI) List(context.Context) ([]domain.Role, error) {
	if a.fail != nil {
		return nil, a.fail
	}
	return a.roles, nil
}
func (a *rolesAPI) Get(context.Context, int64) (domain.Role, error) { return domain.Role{}, notFound() }
func (a *rolesAPI) Create(context.Context, domain.RoleDraft) (domain.Role, error) {
	return domain.Role{}, notFound()
}
func (a *rolesAPI) Update(context.Context, int64, domain.RoleDraft) (domain.Role, error) {
	return domain.Role{}, notFound()
}
func (a *rolesAPI) Delete(context.Context, int64) error { return notFound() }

func newSession(members *membersAPI, roles *rolesAPI) *store.Session {
	return store.NewSession(members, roles, nil)
}

func validDraft() domain.TeamMemberDraft {
	roleID := int64(1)
	return domain.TeamMemberDraft{
		FirstName:   "New",
		LastName:    "Member",
		Email:       "new@example.com",
		PhoneNumber: "(555) 123-4567",
		RoleID:      &roleID,
	}
}
