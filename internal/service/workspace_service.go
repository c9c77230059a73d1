package service

import (
	"context"
	"fmt"

	"tickr/internal/model"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const DefaultMaxWorkspaces = 5

type WorkspaceService struct {
	base
	maxWorkspaces int
}

func NewWorkspaceService(store *repository.Store, log logrus.FieldLogger, maxWorkspaces int) *WorkspaceService {
	if maxWorkspaces <= 0 {
		maxWorkspaces = DefaultMaxWorkspaces
	}
	return &WorkspaceService{base: newBase(store, log), maxWorkspaces: maxWorkspaces}
}

type WorkspaceInput struct {
	Name        string
	Description *string
}

type WorkspacePatch struct {
	Name        *string
	Description *string
}

// List returns the workspaces the caller owns or belongs to.
func (s *WorkspaceService) List(ctx context.Context, caller Caller) ([]repository.WorkspaceWithRole, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	workspaces, err := s.store.Workspaces.ListForUser(ctx, caller.UserID)
	if err != nil {
		return nil, errInternal("Failed to retrieve workspaces", err)
	}
	return workspaces, nil
}

func (s *WorkspaceService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*repository.WorkspaceWithRole, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	access, err := s.auth.Require(ctx, caller, id, model.RoleViewer)
	if err != nil {
		return nil, err
	}
	return &repository.WorkspaceWithRole{Workspace: *access.Workspace, Role: access.Role}, nil
}

// Create makes a shared workspace owned by the caller, with the owner's ADMIN
// membership and the default columns.
func (s *WorkspaceService) Create(ctx context.Context, caller Caller, in WorkspaceInput) (*model.Workspace, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	name := trimmed(in.Name)
	if name == "" {
		return nil, errValidation("Workspace name is required")
	}

	ws := &model.Workspace{
		Name:        name,
		Description: optional(in.Description),
		OwnerID:     caller.UserID,
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		// serializes creates by the same owner so the cap holds
		if err := tx.Lock(ctx, userLock(caller.UserID)); err != nil {
			return err
		}
		count, err := tx.Workspaces.CountOwned(ctx, caller.UserID)
		if err != nil {
			return errInternal("Failed to check workspace count", err)
		}
		if count >= int64(s.maxWorkspaces) {
			return errQuota(fmt.Sprintf("Maximum number of workspaces reached (%d)", s.maxWorkspaces))
		}
		return createWorkspace(ctx, tx, ws)
	})
	if err != nil {
		return nil, translate(err, "Failed to create workspace")
	}

	s.log.WithFields(logrus.Fields{"workspace_id": ws.ID, "user_id": caller.UserID}).Info("workspace created")
	return ws, nil
}

func createWorkspace(ctx context.Context, tx *repository.Store, ws *model.Workspace) error {
	if err := tx.Workspaces.Create(ctx, ws); err != nil {
		return err
	}
	if err := tx.Members.Create(ctx, &model.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      ws.OwnerID,
		Role:        model.RoleAdmin,
	}); err != nil {
		return err
	}
	return seedColumns(ctx, tx, ws.ID)
}

func (s *WorkspaceService) Update(ctx context.Context, caller Caller, id uuid.UUID, patch WorkspacePatch) (*model.Workspace, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	access, err := s.auth.Require(ctx, caller, id, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	ws := access.Workspace
	if ws.IsPersonal && !ws.IsOwner(caller.UserID) {
		return nil, errForbidden("Only the owner can change a personal workspace")
	}

	if patch.Name != nil {
		name := trimmed(*patch.Name)
		if name == "" {
			return nil, errValidation("Workspace name cannot be empty")
		}
		ws.Name = name
	}
	if patch.Description != nil {
		ws.Description = optional(patch.Description)
	}

	if err := s.store.Workspaces.UpdateDetails(ctx, ws); err != nil {
		return nil, errInternal("Failed to update workspace", err)
	}
	return ws, nil
}

// Delete removes the workspace with all columns, tasks, subtasks, invites and
// memberships. Only the owner may do it.
func (s *WorkspaceService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if !caller.authenticated() {
		return errUnauthenticated()
	}
	ws, err := s.store.Workspaces.GetByID(ctx, id)
	if err != nil {
		return translate(err, "Failed to retrieve workspace")
	}
	if !ws.IsOwner(caller.UserID) {
		return errForbidden("Only the workspace owner can delete it")
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		return tx.Workspaces.DeleteCascade(ctx, id)
	})
	if err != nil {
		return errInternal("Failed to delete workspace", err)
	}

	s.log.WithFields(logrus.Fields{"workspace_id": id, "user_id": caller.UserID}).Info("workspace deleted")
	return nil
}
