package service

import (
	"context"

	"tickr/internal/model"
	"tickr/internal/repository"

	"github.com/google/uuid"
)

// Access is the caller's standing in one workspace.
type Access struct {
	Workspace *model.Workspace
	Role      model.Role
}

// Authorizer answers "may this caller do that here" questions. It only reads.
type Authorizer struct {
	store *repository.Store
}

func NewAuthorizer(store *repository.Store) *Authorizer {
	return &Authorizer{store: store}
}

// Resolve returns the caller's effective role in the workspace. The owner is
// ADMIN whether or not a member row exists; strangers get RoleNone.
func (a *Authorizer) Resolve(ctx context.Context, caller Caller, workspaceID uuid.UUID) (Access, error) {
	if !caller.authenticated() {
		return Access{}, errUnauthenticated()
	}
	ws, err := a.store.Workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return Access{}, translate(err, "Failed to retrieve workspace")
	}
	if ws.IsOwner(caller.UserID) {
		return Access{Workspace: ws, Role: model.RoleAdmin}, nil
	}

	member, err := a.store.Members.Get(ctx, workspaceID, caller.UserID)
	if err != nil {
		return Access{}, errInternal("Failed to check access", err)
	}
	if member == nil {
		return Access{Workspace: ws, Role: model.RoleNone}, nil
	}
	return Access{Workspace: ws, Role: member.Role}, nil
}

// Require fails with Forbidden unless the caller's role is at least min.
func (a *Authorizer) Require(ctx context.Context, caller Caller, workspaceID uuid.UUID, min model.Role) (Access, error) {
	access, err := a.Resolve(ctx, caller, workspaceID)
	if err != nil {
		return Access{}, err
	}
	if access.Role == model.RoleNone {
		return Access{}, errForbidden("You don't have access to this workspace")
	}
	if !access.Role.AtLeast(min) {
		return Access{}, errForbidden("Your role does not permit this action")
	}
	return access, nil
}
