package service

import (
	"fmt"
	"sync"
	"testing"

	"tickr/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceService_Create(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")

	desc := "  sprint board "
	ws, err := f.workspaces.Create(f.ctx, owner, WorkspaceInput{Name: " Team ", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Team", ws.Name)
	require.NotNil(t, ws.Description)
	assert.Equal(t, "sprint board", *ws.Description)
	assert.False(t, ws.IsPersonal)

	member, err := f.store.Members.Get(f.ctx, ws.ID, "owner")
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, model.RoleAdmin, member.Role)

	cols, err := f.store.Columns.GetByWorkspaceID(f.ctx, ws.ID)
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "To do", cols[0].Name)
	assert.Equal(t, 0, cols[0].Order)
	assert.Equal(t, "Done", cols[1].Name)
	assert.Equal(t, 1, cols[1].Order)
}

func TestWorkspaceService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")

	_, err := f.workspaces.Create(f.ctx, owner, WorkspaceInput{Name: "   "})
	requireKind(t, err, KindValidation)

	_, err = f.workspaces.Create(f.ctx, Caller{}, WorkspaceInput{Name: "x"})
	requireKind(t, err, KindUnauthenticated)
}

func TestWorkspaceService_CreateQuota(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")

	for i := 0; i < DefaultMaxWorkspaces; i++ {
		_, err := f.workspaces.Create(f.ctx, owner, WorkspaceInput{Name: fmt.Sprintf("ws-%d", i)})
		require.NoError(t, err)
	}
	_, err := f.workspaces.Create(f.ctx, owner, WorkspaceInput{Name: "one too many"})
	requireKind(t, err, KindQuota)
}

func TestWorkspaceService_CreateQuotaConcurrent(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	svc := NewWorkspaceService(f.store, nil, 2)

	const attempts = 6
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(f.ctx, owner, WorkspaceInput{Name: fmt.Sprintf("ws-%d", i)})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		requireKind(t, err, KindQuota)
	}
	assert.Equal(t, 2, created)

	count, err := f.store.Workspaces.CountOwned(f.ctx, "owner")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestWorkspaceService_ListAndGet(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, _ := f.workspace(owner)
	viewer := f.join(ws, "viewer", model.RoleViewer)
	stranger := f.user("stranger")

	list, err := f.workspaces.List(f.ctx, viewer)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ws.ID, list[0].ID)
	assert.Equal(t, model.RoleViewer, list[0].Role)

	got, err := f.workspaces.Get(f.ctx, owner, ws.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)

	_, err = f.workspaces.Get(f.ctx, stranger, ws.ID)
	requireKind(t, err, KindForbidden)

	_, err = f.workspaces.Get(f.ctx, owner, uuid.New())
	requireKind(t, err, KindNotFound)
}

func TestWorkspaceService_Update(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, _ := f.workspace(owner)
	member := f.join(ws, "member", model.RoleMember)

	name := "Renamed"
	_, err := f.workspaces.Update(f.ctx, member, ws.ID, WorkspacePatch{Name: &name})
	requireKind(t, err, KindForbidden)

	updated, err := f.workspaces.Update(f.ctx, owner, ws.ID, WorkspacePatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	empty := " "
	_, err = f.workspaces.Update(f.ctx, owner, ws.ID, WorkspacePatch{Name: &empty})
	requireKind(t, err, KindValidation)
}

func TestWorkspaceService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, cols := f.workspace(owner)
	admin := f.join(ws, "admin", model.RoleAdmin)

	f.task(owner, cols[0].ID, "T1", "a", "b")
	f.task(owner, cols[1].ID, "T2", "c")
	_, err := f.members.Invite(f.ctx, owner, ws.ID, "someone@example.com", model.RoleViewer)
	require.NoError(t, err)

	err = f.workspaces.Delete(f.ctx, admin, ws.ID)
	requireKind(t, err, KindForbidden)

	require.NoError(t, f.workspaces.Delete(f.ctx, owner, ws.ID))

	colIDs := []uuid.UUID{cols[0].ID, cols[1].ID}
	assert.Zero(t, f.count(&model.Workspace{}, "id = ?", ws.ID))
	assert.Zero(t, f.count(&model.Column{}, "workspace_id = ?", ws.ID))
	assert.Zero(t, f.count(&model.Task{}, "column_id IN ?", colIDs))
	assert.Zero(t, f.count(&model.Subtask{}, "1 = 1"))
	assert.Zero(t, f.count(&model.WorkspaceMember{}, "workspace_id = ?", ws.ID))
	assert.Zero(t, f.count(&model.WorkspaceInvite{}, "workspace_id = ?", ws.ID))

	err = f.workspaces.Delete(f.ctx, owner, ws.ID)
	requireKind(t, err, KindNotFound)
}
