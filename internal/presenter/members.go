package presenter

import (
	"context"

	"go.uber.org/zap"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
	"github.com/mishasvintus/team_roster_admin/internal/remote"
)

// MemberStore is the part of the team members store the views use.
type MemberStore interface {
	Load(ctx context.Context) error
	LoadOne(ctx context.Context, id int64) (domain.TeamMember, error)
	Create(ctx context.Context, draft domain.TeamMemberDraft) (domain.TeamMember, error)
	Update(ctx context.Context, id int64, draft domain.TeamMemberDraft) (domain.TeamMember, error)
	Delete(ctx context.Context, id int64) error
	All() []domain.TeamMember
	Loading() bool
}

// RoleStore is the part of the roles store the views use.
type RoleStore interface {
	Load(ctx context.Context) error
	All() []domain.Role
}

// MemberForm drives the add and edit views.
type MemberForm struct {
	members   MemberStore
	roles     RoleStore
	validator *Validator
	sink      Sink
	nav       Navigator
	log       *zap.SugaredLogger
}

// NewMemberForm creates the form flow.
func NewMemberForm(members MemberStore, roles RoleStore, sink Sink, nav Navigator, log *zap.SugaredLogger) *MemberForm {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &MemberForm{
		members:   members,
		roles:     roles,
		validator: NewValidator(),
		sink:      sink,
		nav:       nav,
		log:       log.Named("member_form"),
	}
}

// Open prepares the form. A zero id opens an empty add form. Otherwise the
// member is fetched; when the lookup fails the user is sent back to the list.
func (f *MemberForm) Open(ctx context.Context, id int64) (domain.TeamMemberDraft, error) {
	if id == 0 {
		return domain.TeamMemberDraft{}, nil
	}

	m, err := f.members.LoadOne(ctx, id)
	if err != nil {
		n := Describe(err)
		if remote.IsNotFound(err) {
			n = Notification{Severity: SeverityError, Summary: SummaryNotFound, Detail: DetailMemberNotFound}
		}
		f.notify(ctx, n)
		f.nav.Navigate(ctx, RouteMembers)
		return domain.TeamMemberDraft{}, err
	}
	return m.Draft(), nil
}

// Roles loads the role options of the role selector.
func (f *MemberForm) Roles(ctx context.Context) ([]domain.Role, error) {
	if err := f.roles.Load(ctx); err != nil {
		f.notify(ctx, Describe(err))
		return f.roles.All(), err
	}
	return f.roles.All(), nil
}

// Submit validates draft and creates (zero id) or updates the member.
// Validation failures are returned as FieldErrors and never reach the store.
// On success the user is notified and sent to the list.
func (f *MemberForm) Submit(ctx context.Context, id int64, draft domain.TeamMemberDraft) (domain.TeamMember, error) {
	draft = NormalizeMember(draft)
	if err := f.validator.Member(draft); err != nil {
		return domain.TeamMember{}, err
	}

	var (
		m      domain.TeamMember
		err    error
		detail string
	)
	if id == 0 {
		m, err = f.members.Create(ctx, draft)
		detail = DetailMemberAdded
	} else {
		m, err = f.members.Update(ctx, id, draft)
		detail = DetailMemberUpdated
	}
	if err != nil {
		f.notify(ctx, Describe(err))
		return domain.TeamMember{}, err
	}

	f.notify(ctx, success(detail))
	f.nav.Navigate(ctx, RouteMembers)
	return m, nil
}

func (f *MemberForm) notify(ctx context.Context, n Notification) {
	if f.sink == nil {
		return
	}
	if err := f.sink.Notify(ctx, n); err != nil {
		f.log.Warnw("notification failed", "summary", n.Summary, "error", err)
	}
}

// MemberList drives the list view.
type MemberList struct {
	members MemberStore
	sink    Sink
	nav     Navigator
	log     *zap.SugaredLogger
}

// NewMemberList creates the list flow.
func NewMemberList(members MemberStore, sink Sink, nav Navigator, log *zap.SugaredLogger) *MemberList {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &MemberList{members: members, sink: sink, nav: nav, log: log.Named("member_list")}
}

// Refresh reloads the list. Items of the last successful load stay visible on failure.
func (l *MemberList) Refresh(ctx context.Context) error {
	if err := l.members.Load(ctx); err != nil {
		l.notify(ctx, Describe(err))
		return err
	}
	return nil
}

// Rows returns the members to render.
func (l *MemberList) Rows() []domain.TeamMember {
	return l.members.All()
}

// Loading reports whether a spinner should be shown.
func (l *MemberList) Loading() bool {
	return l.members.Loading()
}

// Remove deletes member id, then notifies and returns to the list.
func (l *MemberList) Remove(ctx context.Context, id int64) error {
	if err := l.members.Delete(ctx, id); err != nil {
		l.notify(ctx, Describe(err))
		return err
	}
	l.notify(ctx, success(DetailMemberDeleted))
	l.nav.Navigate(ctx, RouteMembers)
	return nil
}

// CanDelete reports whether a member holding role may delete members.
func CanDelete(role *domain.Role) bool {
	return role != nil && (role.IsAdmin || role.HasPermission(domain.PermissionDeleteMembers))
}

func (l *MemberList) notify(ctx context.Context, n Notification) {
	if l.sink == nil {
		return
	}
	if err := l.sink.Notify(ctx, n); err != nil {
		l.log.Warnw("notification failed", "summary", n.Summary, "error", err)
	}
}
