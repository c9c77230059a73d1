package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"tickr/internal/model"
	"tickr/internal/ordering"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TaskService struct {
	base
}

func NewTaskService(store *repository.Store, log logrus.FieldLogger) *TaskService {
	return &TaskService{base: newBase(store, log)}
}

type TaskInput struct {
	ColumnID   uuid.UUID
	Title      string
	Subtitle   *string
	Details    *string
	Priority   string
	DueDate    *time.Time
	AssigneeID *string
	Subtasks   []string
}

// TaskPatch holds the fields to change; nil leaves a field as is. An empty
// Subtitle, Details or AssigneeID clears it.
type TaskPatch struct {
	Title        *string
	Subtitle     *string
	Details      *string
	Priority     *string
	DueDate      *time.Time
	ClearDueDate bool
	AssigneeID   *string
}

type MoveInput struct {
	TaskID     uuid.UUID
	ToColumnID uuid.UUID
	ToIndex    int
}

// MoveResult is the canonical state after a move: the task and both affected
// columns' tasks in order. For a move within one column Source and
// Destination hold the same list.
type MoveResult struct {
	Task        *model.Task
	Source      []model.Task
	Destination []model.Task
}

// taskAccess loads a task with its column and checks the caller's role in the
// owning workspace.
func (s *TaskService) taskAccess(ctx context.Context, caller Caller, taskID uuid.UUID, min model.Role) (*model.Task, *model.Column, Access, error) {
	task, err := s.store.Tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, Access{}, translate(err, "Failed to retrieve task")
	}
	column, err := s.store.Columns.GetByID(ctx, task.ColumnID)
	if err != nil {
		return nil, nil, Access{}, translate(err, "Failed to retrieve column")
	}
	access, err := s.auth.Require(ctx, caller, column.WorkspaceID, min)
	if err != nil {
		return nil, nil, Access{}, err
	}
	return task, column, access, nil
}

// checkAssignee verifies that userID may be assigned tasks in the workspace.
func checkAssignee(ctx context.Context, store *repository.Store, ws *model.Workspace, userID string) error {
	if ws.IsOwner(userID) {
		return nil
	}
	member, err := store.Members.Get(ctx, ws.ID, userID)
	if err != nil {
		return errInternal("Failed to check assignee", err)
	}
	if member == nil {
		return errValidation("Assignee must be a member of the workspace")
	}
	return nil
}

// Create appends a task to a column, optionally with subtasks that keep
// their input order.
func (s *TaskService) Create(ctx context.Context, caller Caller, in TaskInput) (*model.Task, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	title := trimmed(in.Title)
	if title == "" {
		return nil, errValidation("Task title is required")
	}
	priority := model.PriorityMedium
	if in.Priority != "" {
		p, ok := model.ParsePriority(in.Priority)
		if !ok {
			return nil, errValidation("Priority must be LOW, MEDIUM or HIGH")
		}
		priority = p
	}
	subtasks := make([]string, 0, len(in.Subtasks))
	for _, st := range in.Subtasks {
		st = trimmed(st)
		if st == "" {
			return nil, errValidation("Subtask title is required")
		}
		subtasks = append(subtasks, st)
	}

	column, err := s.store.Columns.GetByID(ctx, in.ColumnID)
	if err != nil {
		return nil, translate(err, "Failed to retrieve column")
	}
	access, err := s.auth.Require(ctx, caller, column.WorkspaceID, model.RoleMember)
	if err != nil {
		return nil, err
	}

	assignee := optional(in.AssigneeID)
	if assignee != nil {
		if err := checkAssignee(ctx, s.store, access.Workspace, *assignee); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ColumnID:    column.ID,
		Title:       title,
		Subtitle:    optional(in.Subtitle),
		Details:     optional(in.Details),
		Priority:    priority,
		DueDate:     in.DueDate,
		AssigneeID:  assignee,
		CreatedByID: caller.UserID,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, column.ID); err != nil {
			return err
		}
		n, err := tx.Tasks.Count(ctx, column.ID)
		if err != nil {
			return err
		}
		task.Order = int(n)
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		for i, title := range subtasks {
			if err := tx.Subtasks.Create(ctx, &model.Subtask{TaskID: task.ID, Title: title, Order: i}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errInternal("Failed to create task", err)
	}

	return s.detailed(ctx, task.ID)
}

func (s *TaskService) detailed(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.store.Tasks.GetDetailed(ctx, id)
	if err != nil {
		return nil, translate(err, "Failed to retrieve task")
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*model.Task, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	if _, _, _, err := s.taskAccess(ctx, caller, id, model.RoleViewer); err != nil {
		return nil, err
	}
	return s.detailed(ctx, id)
}

func (s *TaskService) Update(ctx context.Context, caller Caller, id uuid.UUID, patch TaskPatch) (*model.Task, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	task, _, access, err := s.taskAccess(ctx, caller, id, model.RoleMember)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := trimmed(*patch.Title)
		if title == "" {
			return nil, errValidation("Task title cannot be empty")
		}
		task.Title = title
	}
	if patch.Subtitle != nil {
		task.Subtitle = optional(patch.Subtitle)
	}
	if patch.Details != nil {
		task.Details = optional(patch.Details)
	}
	if patch.Priority != nil {
		p, ok := model.ParsePriority(*patch.Priority)
		if !ok {
			return nil, errValidation("Priority must be LOW, MEDIUM or HIGH")
		}
		task.Priority = p
	}
	if patch.ClearDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}
	if patch.AssigneeID != nil {
		task.AssigneeID = optional(patch.AssigneeID)
		if task.AssigneeID != nil {
			if err := checkAssignee(ctx, s.store, access.Workspace, *task.AssigneeID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.store.Tasks.UpdateFields(ctx, task); err != nil {
		return nil, translate(err, "Failed to update task")
	}
	return s.detailed(ctx, id)
}

// Delete removes a task with its subtasks and closes the gap in its column.
func (s *TaskService) Delete(ctx context.Context, caller Caller, id uuid.UUID) error {
	if !caller.authenticated() {
		return errUnauthenticated()
	}
	task, _, _, err := s.taskAccess(ctx, caller, id, model.RoleMember)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, task.ColumnID); err != nil {
			return err
		}
		if err := tx.Tasks.Delete(ctx, id); err != nil {
			return err
		}
		ids, err := tx.Tasks.IDs(ctx, task.ColumnID)
		if err != nil {
			return err
		}
		return tx.Tasks.RewriteOrder(ctx, ids)
	})
	if err != nil {
		return translate(err, "Failed to delete task")
	}
	return nil
}

// Move relocates a task within its column or into another column of the same
// workspace. Entering a column named "Done" completes every subtask. All
// writes commit together or not at all.
func (s *TaskService) Move(ctx context.Context, caller Caller, in MoveInput) (*MoveResult, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	_, source, _, err := s.taskAccess(ctx, caller, in.TaskID, model.RoleMember)
	if err != nil {
		return nil, err
	}
	dest, err := s.store.Columns.GetByID(ctx, in.ToColumnID)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotFound) {
			return nil, errNotFound("Target column not found")
		}
		return nil, errInternal("Failed to retrieve target column", err)
	}
	if dest.WorkspaceID != source.WorkspaceID {
		return nil, errForbidden("Cannot move a task to a column of another workspace")
	}

	locks := []uuid.UUID{source.ID, dest.ID}
	var fromID uuid.UUID
	for attempt := 1; ; attempt++ {
		err = s.store.Transaction(ctx, func(tx *repository.Store) error {
			var err error
			fromID, err = moveLocked(ctx, tx, locks, in, dest)
			return err
		})
		// the task left the locked columns before the locks were taken;
		// retry holding its current column too
		if errors.Is(err, errColumnChanged) && attempt < maxMoveAttempts {
			locks = append(locks, fromID)
			continue
		}
		break
	}
	if err != nil {
		return nil, translate(err, "Failed to move task")
	}

	s.log.WithFields(logrus.Fields{
		"task_id":        in.TaskID,
		"from_column_id": fromID,
		"to_column_id":   dest.ID,
		"user_id":        caller.UserID,
	}).Debug("task moved")

	return s.moveResult(ctx, in.TaskID, fromID, dest.ID)
}

func (s *TaskService) moveResult(ctx context.Context, taskID, fromID, toID uuid.UUID) (*MoveResult, error) {
	task, err := s.detailed(ctx, taskID)
	if err != nil {
		return nil, err
	}
	dst, err := s.store.Tasks.GetByColumnID(ctx, toID)
	if err != nil {
		return nil, errInternal("Failed to retrieve tasks", err)
	}
	src := dst
	if fromID != toID {
		if src, err = s.store.Tasks.GetByColumnID(ctx, fromID); err != nil {
			return nil, errInternal("Failed to retrieve tasks", err)
		}
	}
	return &MoveResult{Task: task, Source: src, Destination: dst}, nil
}

// errColumnChanged aborts a move whose task is no longer in any locked column.
var errColumnChanged = errors.New("task changed column")

const maxMoveAttempts = 3

// moveLocked takes the advisory locks of every column in locks, then moves
// the task. It returns the column the task was taken from.
func moveLocked(ctx context.Context, tx *repository.Store, locks []uuid.UUID, in MoveInput, dest *model.Column) (uuid.UUID, error) {
	for _, id := range lockOrder(locks...) {
		if err := tx.Lock(ctx, id); err != nil {
			return uuid.Nil, err
		}
	}
	// re-read under the locks; a concurrent move may have changed the column
	task, err := tx.Tasks.GetByID(ctx, in.TaskID)
	if err != nil {
		return uuid.Nil, err
	}
	fromID := task.ColumnID
	if !slices.Contains(locks, fromID) {
		return fromID, errColumnChanged
	}

	if fromID == dest.ID {
		ids, err := tx.Tasks.IDs(ctx, dest.ID)
		if err != nil {
			return fromID, err
		}
		if ordering.IndexOf(ids, task.ID) == ordering.ClampWithin(in.ToIndex, len(ids)) {
			return fromID, nil
		}
		return fromID, tx.Tasks.RewriteOrder(ctx, ordering.Reorder(ids, task.ID, in.ToIndex))
	}

	srcIDs, err := tx.Tasks.IDs(ctx, fromID)
	if err != nil {
		return fromID, err
	}
	dstIDs, err := tx.Tasks.IDs(ctx, dest.ID)
	if err != nil {
		return fromID, err
	}
	srcIDs, dstIDs = ordering.MoveAcross(srcIDs, dstIDs, task.ID, in.ToIndex)

	if err := tx.Tasks.RewriteOrder(ctx, srcIDs); err != nil {
		return fromID, err
	}
	if err := tx.Tasks.SetColumn(ctx, task.ID, dest.ID); err != nil {
		return fromID, err
	}
	if err := tx.Tasks.RewriteOrder(ctx, dstIDs); err != nil {
		return fromID, err
	}
	if dest.IsDone() {
		return fromID, tx.Subtasks.CompleteAll(ctx, task.ID)
	}
	return fromID, nil
}

// lockOrder returns the distinct ids in a fixed order so that concurrent
// moves over overlapping columns take their locks in the same sequence.
func lockOrder(ids ...uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// AddSubtask appends a subtask to a task.
func (s *TaskService) AddSubtask(ctx context.Context, caller Caller, taskID uuid.UUID, title string) (*model.Subtask, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	title = trimmed(title)
	if title == "" {
		return nil, errValidation("Subtask title is required")
	}
	if _, _, _, err := s.taskAccess(ctx, caller, taskID, model.RoleMember); err != nil {
		return nil, err
	}

	subtask := &model.Subtask{TaskID: taskID, Title: title}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, taskID); err != nil {
			return err
		}
		n, err := tx.Subtasks.Count(ctx, taskID)
		if err != nil {
			return err
		}
		subtask.Order = int(n)
		return tx.Subtasks.Create(ctx, subtask)
	})
	if err != nil {
		return nil, errInternal("Failed to create subtask", err)
	}
	return subtask, nil
}

// SetSubtaskCompleted toggles a subtask. Any member of the workspace may do
// it, viewers included.
func (s *TaskService) SetSubtaskCompleted(ctx context.Context, caller Caller, id uuid.UUID, completed bool) (*model.Subtask, error) {
	if !caller.authenticated() {
		return nil, errUnauthenticated()
	}
	subtask, err := s.store.Subtasks.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "Failed to retrieve subtask")
	}
	if _, _, _, err := s.taskAccess(ctx, caller, subtask.TaskID, model.RoleViewer); err != nil {
		return nil, err
	}

	if err := s.store.Subtasks.SetCompleted(ctx, id, completed); err != nil {
		return nil, translate(err, "Failed to update subtask")
	}
	subtask.Completed = completed
	return subtask, nil
}

func (s *TaskService) DeleteSubtask(ctx context.Context, caller Caller, id uuid.UUID) error {
	if !caller.authenticated() {
		return errUnauthenticated()
	}
	subtask, err := s.store.Subtasks.GetByID(ctx, id)
	if err != nil {
		return translate(err, "Failed to retrieve subtask")
	}
	if _, _, _, err := s.taskAccess(ctx, caller, subtask.TaskID, model.RoleMember); err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Lock(ctx, subtask.TaskID); err != nil {
			return err
		}
		if err := tx.Subtasks.Delete(ctx, id); err != nil {
			return err
		}
		ids, err := tx.Subtasks.IDs(ctx, subtask.TaskID)
		if err != nil {
			return err
		}
		return tx.Subtasks.RewriteOrder(ctx, ids)
	})
	if err != nil {
		return translate(err, "Failed to delete subtask")
	}
	return nil
}
