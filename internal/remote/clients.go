package remote

import "github.com/mishasvintus/team_roster_admin/internal/domain"

// Collection paths exposed by the roster API.
const (
	CollectionTeamMembers = "team-members"
	CollectionRoles       = "roles"
	CollectionPermissions = "permissions"
)

// TeamMembers is the client for /team-members/.
type TeamMembers = Resource[domain.TeamMember, int64, domain.TeamMemberDraft]

// Roles is the client for /roles/.
type Roles = Resource[domain.Role, int64, domain.RoleDraft]

// Permissions is the client for /permissions/.
type Permissions = Resource[domain.Permission, int64, domain.PermissionDraft]

// NewTeamMembers creates the team members client.
func NewTeamMembers(baseURL string, opts ...Option) (*TeamMembers, error) {
	return NewResource[domain.TeamMember, int64, domain.TeamMemberDraft](baseURL, CollectionTeamMembers, opts...)
}

// NewRoles creates the roles client.
func NewRoles(baseURL string, opts ...Option) (*Roles, error) {
	return NewResource[domain.Role, int64, domain.RoleDraft](baseURL, CollectionRoles, opts...)
}

// NewPermissions creates the permissions client.
func NewPermissions(baseURL string, opts ...Option) (*Permissions, error) {
	return NewResource[domain.Permission, int64, domain.PermissionDraft](baseURL, CollectionPermissions, opts...)
}
