package handler

import (
	"context"
	"errors"
	"net/http"

	"tickr/internal/middleware"
	"tickr/internal/model"
	"tickr/internal/repository"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type WorkspaceService interface {
	List(ctx context.Context, caller service.Caller) ([]repository.WorkspaceWithRole, error)
	Get(ctx context.Context, caller service.Caller, id uuid.UUID) (*repository.WorkspaceWithRole, error)
	Create(ctx context.Context, caller service.Caller, in service.WorkspaceInput) (*model.Workspace, error)
	Update(ctx context.Context, caller service.Caller, id uuid.UUID, patch service.WorkspacePatch) (*model.Workspace, error)
	Delete(ctx context.Context, caller service.Caller, id uuid.UUID) error
}

type ColumnService interface {
	Board(ctx context.Context, caller service.Caller, workspaceID uuid.UUID) ([]model.Column, error)
	Create(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, name string) (*model.Column, error)
	Rename(ctx context.Context, caller service.Caller, workspaceID, columnID uuid.UUID, name string) (*model.Column, error)
	Delete(ctx context.Context, caller service.Caller, workspaceID, columnID uuid.UUID) error
	Reorder(ctx context.Context, caller service.Caller, workspaceID, columnID uuid.UUID, to int) ([]model.Column, error)
}

type TaskService interface {
	Create(ctx context.Context, caller service.Caller, in service.TaskInput) (*model.Task, error)
	Get(ctx context.Context, caller service.Caller, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, caller service.Caller, id uuid.UUID, patch service.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, caller service.Caller, id uuid.UUID) error
	Move(ctx context.Context, caller service.Caller, in service.MoveInput) (*service.MoveResult, error)
	AddSubtask(ctx context.Context, caller service.Caller, taskID uuid.UUID, title string) (*model.Subtask, error)
	SetSubtaskCompleted(ctx context.Context, caller service.Caller, id uuid.UUID, completed bool) (*model.Subtask, error)
	DeleteSubtask(ctx context.Context, caller service.Caller, id uuid.UUID) error
}

type MemberService interface {
	List(ctx context.Context, caller service.Caller, workspaceID uuid.UUID) ([]service.MemberView, error)
	Invite(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, email string, role model.Role) (*model.WorkspaceInvite, error)
	ListInvites(ctx context.Context, caller service.Caller, workspaceID uuid.UUID) ([]model.WorkspaceInvite, error)
	RevokeInvite(ctx context.Context, caller service.Caller, workspaceID, inviteID uuid.UUID) error
	ChangeRole(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, userID string, role model.Role) (*service.MemberView, error)
	Remove(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, userID string) error
	Pending(ctx context.Context, caller service.Caller) ([]model.WorkspaceInvite, error)
	Accept(ctx context.Context, caller service.Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error)
	Decline(ctx context.Context, caller service.Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error)
}

type UserProfiles interface {
	Me(ctx context.Context, caller service.Caller) (*model.User, error)
}

type UserSyncer interface {
	Sync(ctx context.Context, id service.Identity) (*model.User, error)
	Delete(ctx context.Context, userID string) error
}

func callerOf(c *gin.Context) service.Caller {
	return service.Caller{UserID: middleware.UserID(c)}
}

// parseID reads a uuid path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func statusOf(kind service.Kind) int {
	switch kind {
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindValidation, service.KindQuota:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": msg}. Causes of internal failures are
// logged and never sent to the client.
func respondError(c *gin.Context, log logrus.FieldLogger, err error) {
	kind := service.KindOf(err)
	msg := "Internal server error"
	var e *service.Error
	if errors.As(err, &e) {
		msg = e.Message
	}

	if kind == service.KindInternal {
		log.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"path":       c.Request.URL.Path,
			"user_id":    middleware.UserID(c),
		}).WithError(err).Error(msg)
	}
	c.JSON(statusOf(kind), gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func silentLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}
