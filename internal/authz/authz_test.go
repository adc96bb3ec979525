package authz

import (
	"testing"

	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	client := Identity{UserID: 7, Role: types.RoleClient, Authenticated: true}
	admin := Identity{UserID: 1, Role: types.RoleAdmin, Authenticated: true}

	tests := []struct {
		name     string
		identity Identity
		action   Action
		resource Resource
		allowed  bool
		reason   string
	}{
		{
			name:     "unauthenticated denied before any other rule",
			identity: Identity{},
			action:   ActionViewProject,
			resource: Resource{ProjectClientID: 7},
			allowed:  false,
			reason:   ReasonUnauthenticated,
		},
		{
			name:     "admin allowed on project management",
			identity: admin,
			action:   ActionManageProject,
			allowed:  true,
		},
		{
			name:     "admin allowed on another user's project",
			identity: admin,
			action:   ActionViewProject,
			resource: Resource{ProjectClientID: 7},
			allowed:  true,
		},
		{
			name:     "owning client may view project",
			identity: client,
			action:   ActionViewProject,
			resource: Resource{ProjectClientID: 7},
			allowed:  true,
		},
		{
			name:     "non-owner client denied project view",
			identity: client,
			action:   ActionViewProject,
			resource: Resource{ProjectClientID: 8},
			allowed:  false,
			reason:   ReasonForbidden,
		},
		{
			name:     "owning client may post messages",
			identity: client,
			action:   ActionPostMessage,
			resource: Resource{ProjectClientID: 7},
			allowed:  true,
		},
		{
			name:     "owning client may upload files",
			identity: client,
			action:   ActionUploadFile,
			resource: Resource{ProjectClientID: 7},
			allowed:  true,
		},
		{
			name:     "client denied inquiry management",
			identity: client,
			action:   ActionManageInquiries,
			allowed:  false,
			reason:   ReasonForbidden,
		},
		{
			name:     "client denied content management even on own project",
			identity: client,
			action:   ActionManageContent,
			resource: Resource{ProjectClientID: 7},
			allowed:  false,
			reason:   ReasonForbidden,
		},
		{
			name:     "notification recipient allowed",
			identity: client,
			action:   ActionAccessNotification,
			resource: Resource{OwnerID: 7},
			allowed:  true,
		},
		{
			name:     "notification non-recipient denied",
			identity: client,
			action:   ActionAccessNotification,
			resource: Resource{OwnerID: 9},
			allowed:  false,
			reason:   ReasonForbidden,
		},
		{
			name:     "uploader may delete own file",
			identity: client,
			action:   ActionDeleteFile,
			resource: Resource{ProjectClientID: 7, UploaderID: 7},
			allowed:  true,
		},
		{
			name:     "project owner may not delete another uploader's file",
			identity: client,
			action:   ActionDeleteFile,
			resource: Resource{ProjectClientID: 7, UploaderID: 1},
			allowed:  false,
			reason:   ReasonForbidden,
		},
		{
			name:     "zero ownership facts never match a client",
			identity: client,
			action:   ActionViewProject,
			resource: Resource{},
			allowed:  false,
			reason:   ReasonForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.identity, tt.action, tt.resource)

			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestAuthorizeAdminBypassesOwnership(t *testing.T) {
	admin := Identity{UserID: 1, Role: types.RoleAdmin, Authenticated: true}

	for _, action := range []Action{
		ActionViewProject, ActionPostMessage, ActionUploadFile,
		ActionManageProject, ActionManageInquiries, ActionManageContent,
		ActionDeleteFile, ActionAccessNotification,
	} {
		decision := Authorize(admin, action, Resource{ProjectClientID: 99, OwnerID: 99, UploaderID: 99})
		assert.True(t, decision.Allowed)
	}
}
