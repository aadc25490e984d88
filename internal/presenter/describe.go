package presenter

import (
	"errors"
	"fmt"

	"github.com/mishasvintus/team_roster_admin/internal/remote"
)

// User-facing texts.
const (
	SummaryNetworkError = "Network Error"
	DetailNetworkError  = "Please check your internet connection."
	SummaryError        = "Error"
	SummaryInvalidInput = "Invalid input"
	DetailFallback      = "An unexpected error occurred."
	SummaryNotFound     = "Not Found"
	SummarySuccess      = "Success"

	DetailMemberAdded    = "Team member added."
	DetailMemberUpdated  = "Team member updated."
	DetailMemberDeleted  = "Team member deleted."
	DetailMemberNotFound = "Team member not found."
)

// Describe turns an operation failure into an error notification.
// Connectivity failures get a fixed message; server failures carry the server
// message when there is one, otherwise a generic fallback.
func Describe(err error) Notification {
	n := Notification{Severity: SeverityError, Summary: SummaryError, Detail: DetailFallback}
	if err == nil {
		return n
	}

	var fields FieldErrors
	if errors.As(err, &fields) {
		n.Summary = SummaryInvalidInput
		n.Detail = fields.Error()
		return n
	}

	re, ok := remote.AsError(err)
	if !ok {
		return n
	}
	if re.Connectivity() {
		n.Summary = SummaryNetworkError
		n.Detail = DetailNetworkError
		return n
	}
	n.Summary = fmt.Sprintf("Error %d", re.Status)
	if re.Message != "" {
		n.Detail = re.Message
	}
	return n
}

func success(detail string) Notification {
	return Notification{Severity: SeveritySuccess, Summary: SummarySuccess, Detail: detail}
}
