package service

import (
	"testing"
	"time"

	"tickr/internal/model"
	"tickr/internal/ordering"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskService_CreateAppendsAndDeleteCloses(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	a := cols[0].ID

	t1 := f.task(owner, a, "T1")
	assert.Equal(t, 0, t1.Order)
	t2 := f.task(owner, a, "T2")
	assert.Equal(t, 1, t2.Order)

	require.NoError(t, f.tasks.Delete(f.ctx, owner, t1.ID))
	assert.Equal(t, map[string]int{"T2": 0}, f.orders(a))

	_, err := f.tasks.Get(f.ctx, owner, t1.ID)
	requireKind(t, err, KindNotFound)
}

func TestTaskService_CreateDefaults(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)

	task := f.task(owner, cols[0].ID, "  Write docs ", "outline", "draft")
	assert.Equal(t, "Write docs", task.Title)
	assert.Equal(t, model.PriorityMedium, task.Priority)
	assert.Equal(t, "owner", task.CreatedByID)
	require.Len(t, task.Subtasks, 2)
	assert.Equal(t, "outline", task.Subtasks[0].Title)
	assert.Equal(t, 0, task.Subtasks[0].Order)
	assert.Equal(t, "draft", task.Subtasks[1].Title)
	assert.Equal(t, 1, task.Subtasks[1].Order)
}

func TestTaskService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, cols := f.workspace(owner)
	f.user("outsider")

	tests := []struct {
		name string
		in   TaskInput
		kind Kind
	}{
		{"empty title", TaskInput{ColumnID: cols[0].ID, Title: " "}, KindValidation},
		{"bad priority", TaskInput{ColumnID: cols[0].ID, Title: "x", Priority: "URGENT"}, KindValidation},
		{"empty subtask", TaskInput{ColumnID: cols[0].ID, Title: "x", Subtasks: []string{""}}, KindValidation},
		{"unknown column", TaskInput{ColumnID: uuid.New(), Title: "x"}, KindNotFound},
		{"assignee outside workspace", TaskInput{ColumnID: cols[0].ID, Title: "x", AssigneeID: strPtr("outsider")}, KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.tasks.Create(f.ctx, owner, tt.in)
			requireKind(t, err, tt.kind)
		})
	}
	assert.Zero(t, f.count(&model.Task{}, "1 = 1"))

	member := f.join(ws, "member", model.RoleMember)
	task, err := f.tasks.Create(f.ctx, owner, TaskInput{
		ColumnID:   cols[0].ID,
		Title:      "assigned",
		Priority:   "high",
		AssigneeID: &member.UserID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, task.Priority)
	require.NotNil(t, task.Assignee)
	assert.Equal(t, "member", task.Assignee.ID)
}

func TestTaskService_Update(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	task, err := f.tasks.Create(f.ctx, owner, TaskInput{
		ColumnID: cols[0].ID,
		Title:    "draft",
		Subtitle: strPtr("sub"),
		DueDate:  &due,
	})
	require.NoError(t, err)

	updated, err := f.tasks.Update(f.ctx, owner, task.ID, TaskPatch{
		Title:        strPtr("final"),
		Subtitle:     strPtr(""),
		Details:      strPtr("more"),
		Priority:     strPtr("LOW"),
		ClearDueDate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.Nil(t, updated.Subtitle)
	require.NotNil(t, updated.Details)
	assert.Equal(t, "more", *updated.Details)
	assert.Equal(t, model.PriorityLow, updated.Priority)
	assert.Nil(t, updated.DueDate)

	_, err = f.tasks.Update(f.ctx, owner, task.ID, TaskPatch{Title: strPtr(" ")})
	requireKind(t, err, KindValidation)
}

func TestTaskService_MoveAcrossColumns(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, _ := f.workspace(owner)
	// A and B both empty; "Done" is not involved
	a, err := f.columns.Create(f.ctx, owner, ws.ID, "A")
	require.NoError(t, err)
	b, err := f.columns.Create(f.ctx, owner, ws.ID, "B")
	require.NoError(t, err)
	task := f.task(owner, a.ID, "T", "open")

	res, err := f.tasks.Move(f.ctx, owner, MoveInput{TaskID: task.ID, ToColumnID: b.ID, ToIndex: 0})
	require.NoError(t, err)
	assert.Equal(t, b.ID, res.Task.ColumnID)
	assert.Equal(t, 0, res.Task.Order)
	assert.Empty(t, res.Source)
	require.Len(t, res.Destination, 1)
	assert.Equal(t, task.ID, res.Destination[0].ID)
	assert.False(t, res.Task.Subtasks[0].Completed)

	assert.Empty(t, f.orders(a.ID))
	assert.Equal(t, map[string]int{"T": 0}, f.orders(b.ID))
}

func TestTaskService_MoveAbortsWhenTaskLeftLockedColumns(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, _ := f.workspace(owner)
	a, err := f.columns.Create(f.ctx, owner, ws.ID, "A")
	require.NoError(t, err)
	b, err := f.columns.Create(f.ctx, owner, ws.ID, "B")
	require.NoError(t, err)
	c, err := f.columns.Create(f.ctx, owner, ws.ID, "C")
	require.NoError(t, err)
	task := f.task(owner, a.ID, "T")

	// locks were computed while the task still sat in B
	in := MoveInput{TaskID: task.ID, ToColumnID: c.ID, ToIndex: 0}
	fromID, err := moveLocked(f.ctx, f.store, []uuid.UUID{b.ID, c.ID}, in, c)
	require.ErrorIs(t, err, errColumnChanged)
	assert.Equal(t, a.ID, fromID)
	assert.Equal(t, map[string]int{"T": 0}, f.orders(a.ID))

	fromID, err = moveLocked(f.ctx, f.store, []uuid.UUID{b.ID, c.ID, a.ID}, in, c)
	require.NoError(t, err)
	assert.Equal(t, a.ID, fromID)
	assert.Equal(t, map[string]int{"T": 0}, f.orders(c.ID))
}

func TestLockOrder(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	assert.Equal(t, []uuid.UUID{a, b, c}, lockOrder(c, a, b))
	assert.Equal(t, []uuid.UUID{a, b, c}, lockOrder(b, c, a, b))
	assert.Equal(t, []uuid.UUID{a}, lockOrder(a, a))
}

func TestTaskService_MoveKeepsOrderContiguous(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	todo, done := cols[0].ID, cols[1].ID

	t0 := f.task(owner, todo, "t0")
	t1 := f.task(owner, todo, "t1")
	f.task(owner, todo, "t2")
	d0 := f.task(owner, done, "d0")

	// within the column, to the end
	_, err := f.tasks.Move(f.ctx, owner, MoveInput{TaskID: t0.ID, ToColumnID: todo, ToIndex: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"t1": 0, "t2": 1, "t0": 2}, f.orders(todo))

	// across columns, index past the end clamps to append
	_, err = f.tasks.Move(f.ctx, owner, MoveInput{TaskID: t1.ID, ToColumnID: done, ToIndex: 99})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"t2": 0, "t0": 1}, f.orders(todo))
	assert.Equal(t, map[string]int{"d0": 0, "t1": 1}, f.orders(done))

	// negative index clamps to the front
	_, err = f.tasks.Move(f.ctx, owner, MoveInput{TaskID: d0.ID, ToColumnID: todo, ToIndex: -3})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"d0": 0, "t2": 1, "t0": 2}, f.orders(todo))
	assert.Equal(t, map[string]int{"t1": 0}, f.orders(done))

	for _, col := range []uuid.UUID{todo, done} {
		var orders []int
		for _, o := range f.orders(col) {
			orders = append(orders, o)
		}
		assert.True(t, ordering.Contiguous(orders))
	}
}

func TestTaskService_MoveSamePositionIsNoop(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	f.task(owner, cols[0].ID, "t0")
	t1 := f.task(owner, cols[0].ID, "t1")

	res, err := f.tasks.Move(f.ctx, owner, MoveInput{TaskID: t1.ID, ToColumnID: cols[0].ID, ToIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Task.Order)
	assert.Equal(t, res.Source, res.Destination)
	assert.Equal(t, map[string]int{"t0": 0, "t1": 1}, f.orders(cols[0].ID))
}

func TestTaskService_MoveIntoDoneCompletesSubtasks(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	task := f.task(owner, cols[0].ID, "ship", "build", "test", "deploy")
	_, err := f.tasks.SetSubtaskCompleted(f.ctx, owner, task.Subtasks[1].ID, true)
	require.NoError(t, err)

	// "DONE" in a different case counts too
	require.NoError(t, f.db.Model(&model.Column{}).Where("id = ?", cols[1].ID).Update("name", " DONE ").Error)

	_, err = f.tasks.Move(f.ctx, owner, MoveInput{TaskID: task.ID, ToColumnID: cols[1].ID, ToIndex: 0})
	require.NoError(t, err)

	got, err := f.tasks.Get(f.ctx, owner, task.ID)
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 3)
	for _, st := range got.Subtasks {
		assert.True(t, st.Completed, st.Title)
	}

	// leaving Done does not reopen anything
	_, err = f.tasks.Move(f.ctx, owner, MoveInput{TaskID: task.ID, ToColumnID: cols[0].ID, ToIndex: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(3), f.count(&model.Subtask{}, "task_id = ? AND completed = ?", task.ID, true))
}

func TestTaskService_MoveRejectsOtherWorkspace(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	_, otherCols := f.workspace(owner)
	task := f.task(owner, cols[0].ID, "stay")

	_, err := f.tasks.Move(f.ctx, owner, MoveInput{TaskID: task.ID, ToColumnID: otherCols[0].ID})
	requireKind(t, err, KindForbidden)

	_, err = f.tasks.Move(f.ctx, owner, MoveInput{TaskID: task.ID, ToColumnID: uuid.New()})
	requireKind(t, err, KindNotFound)

	assert.Equal(t, map[string]int{"stay": 0}, f.orders(cols[0].ID))
}

func TestTaskService_ViewerCannotChangeTasks(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	ws, cols := f.workspace(owner)
	viewer := f.join(ws, "viewer", model.RoleViewer)
	task := f.task(owner, cols[0].ID, "keep", "sub")

	_, err := f.tasks.Create(f.ctx, viewer, TaskInput{ColumnID: cols[0].ID, Title: "nope"})
	requireKind(t, err, KindForbidden)

	_, err = f.tasks.Move(f.ctx, viewer, MoveInput{TaskID: task.ID, ToColumnID: cols[1].ID})
	requireKind(t, err, KindForbidden)

	err = f.tasks.Delete(f.ctx, viewer, task.ID)
	requireKind(t, err, KindForbidden)

	_, err = f.tasks.AddSubtask(f.ctx, viewer, task.ID, "nope")
	requireKind(t, err, KindForbidden)

	assert.Equal(t, map[string]int{"keep": 0}, f.orders(cols[0].ID))
	assert.Empty(t, f.orders(cols[1].ID))
	assert.Equal(t, int64(1), f.count(&model.Subtask{}, "task_id = ?", task.ID))
	assert.Equal(t, int64(0), f.count(&model.Subtask{}, "completed = ?", true))

	// viewers may still read and tick subtasks
	got, err := f.tasks.Get(f.ctx, viewer, task.ID)
	require.NoError(t, err)
	st, err := f.tasks.SetSubtaskCompleted(f.ctx, viewer, got.Subtasks[0].ID, true)
	require.NoError(t, err)
	assert.True(t, st.Completed)
}

func TestTaskService_StrangerIsForbidden(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	stranger := f.user("stranger")
	task := f.task(owner, cols[0].ID, "private")

	_, err := f.tasks.Get(f.ctx, stranger, task.ID)
	requireKind(t, err, KindForbidden)
}

func TestTaskService_Subtasks(t *testing.T) {
	f := newFixture(t)
	owner := f.user("owner")
	_, cols := f.workspace(owner)
	task := f.task(owner, cols[0].ID, "parent", "first")

	second, err := f.tasks.AddSubtask(f.ctx, owner, task.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)
	third, err := f.tasks.AddSubtask(f.ctx, owner, task.ID, "third")
	require.NoError(t, err)
	assert.Equal(t, 2, third.Order)

	require.NoError(t, f.tasks.DeleteSubtask(f.ctx, owner, task.Subtasks[0].ID))

	got, err := f.tasks.Get(f.ctx, owner, task.ID)
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 2)
	assert.Equal(t, "second", got.Subtasks[0].Title)
	assert.Equal(t, 0, got.Subtasks[0].Order)
	assert.Equal(t, "third", got.Subtasks[1].Title)
	assert.Equal(t, 1, got.Subtasks[1].Order)

	_, err = f.tasks.AddSubtask(f.ctx, owner, task.ID, " ")
	requireKind(t, err, KindValidation)
	err = f.tasks.DeleteSubtask(f.ctx, owner, uuid.New())
	requireKind(t, err, KindNotFound)
}

func strPtr(s string) *string {
	return &s
}
