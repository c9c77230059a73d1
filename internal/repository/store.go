package repository

import (
	"context"
	"hash/fnv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store groups the repositories that share one *gorm.DB handle. Inside
// Transaction every repository is bound to the same transaction.
type Store struct {
	db *gorm.DB

	Users      *UserRepository
	Workspaces *WorkspaceRepository
	Members    *MemberRepository
	Invites    *InviteRepository
	Columns    *ColumnRepository
	Tasks      *TaskRepository
	Subtasks   *SubtaskRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Workspaces: NewWorkspaceRepository(db),
		Members:    NewMemberRepository(db),
		Invites:    NewInviteRepository(db),
		Columns:    NewColumnRepository(db),
		Tasks:      NewTaskRepository(db),
		Subtasks:   NewSubtaskRepository(db),
	}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn with a Store bound to a single database transaction.
// Any error returned by fn rolls the whole transaction back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// Lock takes a transaction-scoped advisory lock keyed by id. It serializes
// count-then-write sequences on the same parent (column, task, workspace).
// Only PostgreSQL supports it; other dialects rely on their own write locking.
func (s *Store) Lock(ctx context.Context, id uuid.UUID) error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	return s.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", LockKey(id)).Error
}

// LockKey folds a uuid into the int64 key space of pg_advisory_xact_lock.
func LockKey(id uuid.UUID) int64 {
	h := fnv.New64a()
	_, _ = h.Write(id[:])
	return int64(h.Sum64())
}
