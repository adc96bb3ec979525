// Package authz is the access-control gate. Every project-, user- and
// admin-scoped operation asks Authorize before reading or mutating anything.
package authz

import "github.com/clientbridge-dev/clientbridge/internal/types"

// Identity is the authenticated requester, as established by the auth
// middleware. The zero value is an unauthenticated caller.
type Identity struct {
	UserID        uint
	Role          string
	Authenticated bool
}

type Action int

const (
	// Project-scoped reads and writes available to the owning client.
	ActionViewProject Action = iota
	ActionPostMessage
	ActionUploadFile

	// Admin-only lifecycle operations.
	ActionManageProject
	ActionManageInquiries
	ActionManageContent

	// Ownership-specific rules.
	ActionDeleteFile
	ActionAccessNotification
)

// Resource carries the ownership facts the gate rules consult. Fields not
// relevant to a given action are left zero.
type Resource struct {
	ProjectClientID uint // clientId of the owning project
	OwnerID         uint // recipient of a user-owned record (notifications)
	UploaderID      uint // uploader/sender, for deletion rights
}

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Reason: r} }

// Authorize evaluates the gate rules in order:
//
//  1. unauthenticated callers are denied outright
//  2. admins may perform any action
//  3. project-scoped actions require the requester to own the project
//  4. user-owned records require the requester to be the recipient
//  5. deletion requires the requester to be the uploader (admins pass at 2)
//
// Admin-only actions reach rule 3 with no ownership that a client could
// satisfy, so they fall through to a deny.
func Authorize(id Identity, action Action, res Resource) Decision {
	if !id.Authenticated {
		return deny(ReasonUnauthenticated)
	}

	if id.Role == types.RoleAdmin {
		return allow()
	}

	switch action {
	case ActionViewProject, ActionPostMessage, ActionUploadFile:
		if res.ProjectClientID != 0 && res.ProjectClientID == id.UserID {
			return allow()
		}
		return deny(ReasonForbidden)

	case ActionAccessNotification:
		if res.OwnerID != 0 && res.OwnerID == id.UserID {
			return allow()
		}
		return deny(ReasonForbidden)

	case ActionDeleteFile:
		if res.UploaderID != 0 && res.UploaderID == id.UserID {
			return allow()
		}
		return deny(ReasonForbidden)
	}

	// Admin-only actions: ActionManageProject, ActionManageInquiries,
	// ActionManageContent.
	return deny(ReasonForbidden)
}
