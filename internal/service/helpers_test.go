package service

import (
	"context"
	"testing"

	"tickr/internal/database/dbtest"
	"tickr/internal/model"
	"tickr/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	t          *testing.T
	ctx        context.Context
	db         *gorm.DB
	store      *repository.Store
	workspaces *WorkspaceService
	columns    *ColumnService
	tasks      *TaskService
	members    *MemberService
	users      *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	store := repository.NewStore(db)
	return &fixture{
		t:          t,
		ctx:        context.Background(),
		db:         db,
		store:      store,
		workspaces: NewWorkspaceService(store, nil, 0),
		columns:    NewColumnService(store, nil),
		tasks:      NewTaskService(store, nil),
		members:    NewMemberService(store, nil),
		users:      NewUserService(store, nil),
	}
}

func (f *fixture) user(id string) Caller {
	f.t.Helper()
	dbtest.User(f.t, f.db, id)
	return Caller{UserID: id}
}

// workspace creates a shared workspace owned by owner and returns it with its
// seeded columns ("To do", "Done").
func (f *fixture) workspace(owner Caller) (*model.Workspace, []model.Column) {
	f.t.Helper()
	ws, err := f.workspaces.Create(f.ctx, owner, WorkspaceInput{Name: "Team"})
	require.NoError(f.t, err)
	cols, err := f.columns.Board(f.ctx, owner, ws.ID)
	require.NoError(f.t, err)
	return ws, cols
}

// join adds userID to the workspace directly.
func (f *fixture) join(ws *model.Workspace, userID string, role model.Role) Caller {
	f.t.Helper()
	c := f.user(userID)
	require.NoError(f.t, f.db.Create(&model.WorkspaceMember{
		WorkspaceID: ws.ID,
		UserID:      userID,
		Role:        role,
	}).Error)
	return c
}

func (f *fixture) task(caller Caller, columnID uuid.UUID, title string, subtasks ...string) *model.Task {
	f.t.Helper()
	task, err := f.tasks.Create(f.ctx, caller, TaskInput{ColumnID: columnID, Title: title, Subtasks: subtasks})
	require.NoError(f.t, err)
	return task
}

// orders returns the task titles of a column with their stored order.
func (f *fixture) orders(columnID uuid.UUID) map[string]int {
	f.t.Helper()
	var tasks []model.Task
	require.NoError(f.t, f.db.Where("column_id = ?", columnID).Find(&tasks).Error)
	out := make(map[string]int, len(tasks))
	for _, task := range tasks {
		out[task.Title] = task.Order
	}
	return out
}

func (f *fixture) count(m interface{}, query string, args ...interface{}) int64 {
	f.t.Helper()
	var n int64
	require.NoError(f.t, f.db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), err.Error())
}
