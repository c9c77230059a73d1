package service

import (
	"context"

	"tickr/internal/model"
	"tickr/internal/ordering"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ColumnService struct {
	base
}

func NewColumnService(store *repository.Store, log logrus.FieldLogger) *ColumnService {
	return &ColumnService{base: newBase(store, log)}
}

// Board returns the workspace's columns with tasks and subtasks. A workspace
// without columns gets the default ones first.
func (s *ColumnService) Board(ctx context.Context, caller Caller, workspaceID uuid.UUID) ([]model.Column, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleViewer); err != nil {
		return nil, err
	}

	count, err := s.store.Columns.Count(ctx, workspaceID)
	if err != nil {
		return nil, errInternal("Failed to retrieve columns", err)
	}
	if count == 0 {
		err := s.store.Transaction(ctx, func(tx *repository.Store) error {
			if err := tx.Lock(ctx, workspaceID); err != nil {
				return err
			}
			// another request may have seeded while we waited for the lock
			n, err := tx.Columns.Count(ctx, workspaceID)
			if err != nil || n > 0 {
				return err
			}
			return seedColumns(ctx, tx, workspaceID)
		})
		if err != nil {
			return nil, errInternal("Failed to create default columns", err)
		}
	}

	columns, err := s.store.Columns.GetBoard(ctx, workspaceID)
	if err != nil {
		return nil, errInternal("Failed to retrieve columns", err)
	}
	return columns, nil
}

// Create appends a column at the end of the workspace.
func (s *ColumnService) Create(ctx context.Context, caller Caller, workspaceID uuid.UUID, name string) (*model.Column, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	name = trimmed(name)
	if name == "" {
		return nil, errValidation("Column name is required")
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}

	column := &model.Column{WorkspaceID: workspaceID, Name: name}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, workspaceID); err != nil {
			return err
		}
		n, err := tx.Columns.Count(ctx, workspaceID)
		if err != nil {
			return err
		}
		column.Order = int(n)
		return tx.Columns.Create(ctx, column)
	})
	if err != nil {
		return nil, errInternal("Failed to create column", err)
	}
	return column, nil
}

// columnIn loads a column and checks it belongs to the workspace.
func (s *ColumnService) columnIn(ctx context.Context, workspaceID, columnID uuid.UUID) (*model.Column, error) {
	column, err := s.store.Columns.GetByID(ctx, columnID)
	if err != nil {
		return nil, translate(err, "Failed to retrieve column")
	}
	if column.WorkspaceID != workspaceID {
		return nil, errNotFound("Column not found")
	}
	return column, nil
}

func (s *ColumnService) Rename(ctx context.Context, caller Caller, workspaceID, columnID uuid.UUID, name string) (*model.Column, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	name = trimmed(name)
	if name == "" {
		return nil, errValidation("Column name is required")
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}
	column, err := s.columnIn(ctx, workspaceID, columnID)
	if err != nil {
		return nil, err
	}

	if err := s.store.Columns.Rename(ctx, columnID, name); err != nil {
		return nil, translate(err, "Failed to update column")
	}
	column.Name = name
	return column, nil
}

// Delete removes the column with its tasks and subtasks and closes the gap
// in the remaining columns' order.
func (s *ColumnService) Delete(ctx context.Context, caller Caller, workspaceID, columnID uuid.UUID) error {
	if !caller.authenticated() {
		return errUnauthenticated()
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleMember); err != nil {
		return err
	}
	if _, err := s.columnIn(ctx, workspaceID, columnID); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, workspaceID); err != nil {
			return err
		}
		if err := tx.Columns.DeleteCascade(ctx, columnID); err != nil {
			return err
		}
		ids, err := tx.Columns.IDs(ctx, workspaceID)
		if err != nil {
			return err
		}
		return tx.Columns.RewriteOrder(ctx, ids)
	})
	if err != nil {
		return translate(err, "Failed to delete column")
	}
	return nil
}

// Reorder moves a column to index to among its siblings and returns the
// workspace's columns in their new order.
func (s *ColumnService) Reorder(ctx context.Context, caller Caller, workspaceID, columnID uuid.UUID, to int) ([]model.Column, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	if _, err := s.auth.Require(ctx, caller, workspaceID, model.RoleMember); err != nil {
		return nil, err
	}
	if _, err := s.columnIn(ctx, workspaceID, columnID); err != nil {
		return nil, err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, workspaceID); err != nil {
			return err
		}
		ids, err := tx.Columns.IDs(ctx, workspaceID)
		if err != nil {
			return err
		}
		return tx.Columns.RewriteOrder(ctx, ordering.Reorder(ids, columnID, to))
	})
	if err != nil {
		return nil, errInternal("Failed to reorder columns", err)
	}

	columns, err := s.store.Columns.GetByWorkspaceID(ctx, workspaceID)
	if err != nil {
		return nil, errInternal("Failed to retrieve columns", err)
	}
	return columns, nil
}
