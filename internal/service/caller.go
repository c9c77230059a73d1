package service

import (
	"context"
	"strings"

	"tickr/internal/model"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Caller is the authenticated user on whose behalf an operation runs. Every
// operation receives it explicitly.
type Caller struct {
	UserID string
}

func (c Caller) authenticated() bool {
	return strings.TrimSpace(c.UserID) != ""
}

type base struct {
	store *repository.Store
	auth  *Authorizer
	log   logrus.FieldLogger
}

func newBase(store *repository.Store, log logrus.FieldLogger) base {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return base{store: store, auth: NewAuthorizer(store), log: log}
}

// seedColumns creates the default board layout of a fresh workspace.
func seedColumns(ctx context.Context, tx *repository.Store, workspaceID uuid.UUID) error {
	for i, name := range []string{"To do", "Done"} {
		if err := tx.Columns.Create(ctx, &model.Column{
			WorkspaceID: workspaceID,
			Name:        name,
			Order:       i,
		}); err != nil {
			return err
		}
	}
	return nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}

// optional trims s and maps an empty result to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
