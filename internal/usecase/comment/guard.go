package comment

import (
	"github.com/Guyuepp/blog-comments/domain"
)

// Action is a mutation gated by Authorize
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
	ActionApprove
	ActionDisapprove
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionApprove:
		return "approve"
	case ActionDisapprove:
		return "disapprove"
	default:
		return "unknown"
	}
}

// Authorize decides whether principal may perform action on a comment owned
// by ownerID. A nil principal is an anonymous request.
// Every denial is ErrInsufficientPermissions.
func Authorize(principal *domain.Principal, action Action, ownerID int64) error {
	if principal == nil {
		return domain.ErrInsufficientPermissions
	}
	switch action {
	case ActionCreate:
		return nil
	case ActionUpdate, ActionDelete:
		if principal.UserID == ownerID || principal.IsAdmin() {
			return nil
		}
	case ActionApprove, ActionDisapprove:
		if principal.IsAdmin() {
			return nil
		}
	}
	return domain.ErrInsufficientPermissions
}
