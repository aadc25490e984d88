package store

import (
	"go.uber.org/zap"

	"github.com/mishasvintus/team_roster_admin/internal/domain"
)

// TeamMembers is the store of roster members.
type TeamMembers = Store[domain.TeamMember, int64, domain.TeamMemberDraft]

// Roles is the store of roles.
type Roles = Store[domain.Role, int64, domain.RoleDraft]

// Store names used in action labels.
const (
	NameTeamMembers = "Team Members"
	NameRoles       = "Roles"
)

// Session owns the stores of one administrative session.
// Build it once, pass it to whatever renders or mutates roster data, and Close it
// when the session ends.
type Session struct {
	TeamMembers *TeamMembers
	Roles       *Roles
}

// NewSession creates the team member and role stores backed by the given clients.
func NewSession(
	members Remote[domain.TeamMember, int64, domain.TeamMemberDraft],
	roles Remote[domain.Role, int64, domain.RoleDraft],
	log *zap.SugaredLogger,
) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{
		TeamMembers: New(NameTeamMembers, members, domain.TeamMember.Key, WithLogger(log)),
		Roles:       New(NameRoles, roles, domain.Role.Key, WithLogger(log)),
	}
}

// Close tears down both stores.
func (s *Session) Close() {
	s.TeamMembers.Close()
	s.Roles.Close()
}
