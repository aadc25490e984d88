package presenter

import (
	"context"
	"fmt"
)

// Route is a view location.
type Route string

// Views of the admin tool.
const (
	RouteMembers   Route = "/"
	RouteAddMember Route = "/add"
)

// EditMemberRoute returns the edit view of member id.
func EditMemberRoute(id int64) Route {
	return Route(fmt.Sprintf("/edit/%d", id))
}

// Navigator moves the user to another view.
type Navigator interface {
	Navigate(ctx context.Context, to Route)
}

// NavigatorFunc allows plain functions to satisfy Navigator.
type NavigatorFunc func(ctx context.Context, to Route)

// Navigate calls fn.
func (fn NavigatorFunc) Navigate(ctx context.Context, to Route) {
	if fn != nil {
		fn(ctx, to)
	}
}
