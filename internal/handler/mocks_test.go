package handler_test

import (
	"context"

	"tickr/internal/model"
	"tickr/internal/repository"
	"tickr/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Мок сервиса рабочих пространств
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) List(ctx context.Context, caller service.Caller) ([]repository.WorkspaceWithRole, error) {
	args := m.Called(ctx, caller)
	list, _ := args.Get(0).([]repository.WorkspaceWithRole)
	return list, args.Error(1)
}

func (m *MockWorkspaceService) Get(ctx context.Context, caller service.Caller, id uuid.UUID) (*repository.WorkspaceWithRole, error) {
	args := m.Called(ctx, caller, id)
	ws, _ := args.Get(0).(*repository.WorkspaceWithRole)
	return ws, args.Error(1)
}

func (m *MockWorkspaceService) Create(ctx context.Context, caller service.Caller, in service.WorkspaceInput) (*model.Workspace, error) {
	args := m.Called(ctx, caller, in)
	ws, _ := args.Get(0).(*model.Workspace)
	return ws, args.Error(1)
}

func (m *MockWorkspaceService) Update(ctx context.Context, caller service.Caller, id uuid.UUID, patch service.WorkspacePatch) (*model.Workspace, error) {
	args := m.Called(ctx, caller, id, patch)
	ws, _ := args.Get(0).(*model.Workspace)
	return ws, args.Error(1)
}

func (m *MockWorkspaceService) Delete(ctx context.Context, caller service.Caller, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

// Мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, caller service.Caller, in service.TaskInput) (*model.Task, error) {
	args := m.Called(ctx, caller, in)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, caller service.Caller, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, caller, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, caller service.Caller, id uuid.UUID, patch service.TaskPatch) (*model.Task, error) {
	args := m.Called(ctx, caller, id, patch)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, caller service.Caller, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockTaskService) Move(ctx context.Context, caller service.Caller, in service.MoveInput) (*service.MoveResult, error) {
	args := m.Called(ctx, caller, in)
	res, _ := args.Get(0).(*service.MoveResult)
	return res, args.Error(1)
}

func (m *MockTaskService) AddSubtask(ctx context.Context, caller service.Caller, taskID uuid.UUID, title string) (*model.Subtask, error) {
	args := m.Called(ctx, caller, taskID, title)
	st, _ := args.Get(0).(*model.Subtask)
	return st, args.Error(1)
}

func (m *MockTaskService) SetSubtaskCompleted(ctx context.Context, caller service.Caller, id uuid.UUID, completed bool) (*model.Subtask, error) {
	args := m.Called(ctx, caller, id, completed)
	st, _ := args.Get(0).(*model.Subtask)
	return st, args.Error(1)
}

func (m *MockTaskService) DeleteSubtask(ctx context.Context, caller service.Caller, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

// Мок сервиса участников
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) List(ctx context.Context, caller service.Caller, workspaceID uuid.UUID) ([]service.MemberView, error) {
	args := m.Called(ctx, caller, workspaceID)
	list, _ := args.Get(0).([]service.MemberView)
	return list, args.Error(1)
}

func (m *MockMemberService) Invite(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, email string, role model.Role) (*model.WorkspaceInvite, error) {
	args := m.Called(ctx, caller, workspaceID, email, role)
	inv, _ := args.Get(0).(*model.WorkspaceInvite)
	return inv, args.Error(1)
}

func (m *MockMemberService) ListInvites(ctx context.Context, caller service.Caller, workspaceID uuid.UUID) ([]model.WorkspaceInvite, error) {
	args := m.Called(ctx, caller, workspaceID)
	list, _ := args.Get(0).([]model.WorkspaceInvite)
	return list, args.Error(1)
}

func (m *MockMemberService) RevokeInvite(ctx context.Context, caller service.Caller, workspaceID, inviteID uuid.UUID) error {
	return m.Called(ctx, caller, workspaceID, inviteID).Error(0)
}

func (m *MockMemberService) ChangeRole(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, userID string, role model.Role) (*service.MemberView, error) {
	args := m.Called(ctx, caller, workspaceID, userID, role)
	mv, _ := args.Get(0).(*service.MemberView)
	return mv, args.Error(1)
}

func (m *MockMemberService) Remove(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, userID string) error {
	return m.Called(ctx, caller, workspaceID, userID).Error(0)
}

func (m *MockMemberService) Pending(ctx context.Context, caller service.Caller) ([]model.WorkspaceInvite, error) {
	args := m.Called(ctx, caller)
	list, _ := args.Get(0).([]model.WorkspaceInvite)
	return list, args.Error(1)
}

func (m *MockMemberService) Accept(ctx context.Context, caller service.Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error) {
	args := m.Called(ctx, caller, inviteID)
	inv, _ := args.Get(0).(*model.WorkspaceInvite)
	return inv, args.Error(1)
}

func (m *MockMemberService) Decline(ctx context.Context, caller service.Caller, inviteID uuid.UUID) (*model.WorkspaceInvite, error) {
	args := m.Called(ctx, caller, inviteID)
	inv, _ := args.Get(0).(*model.WorkspaceInvite)
	return inv, args.Error(1)
}

// Мок синхронизации пользователей
type MockUserSyncer struct {
	mock.Mock
}

func (m *MockUserSyncer) Sync(ctx context.Context, id service.Identity) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserSyncer) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockColumnService struct {
	mock.Mock
}

func (m *MockColumnService) Board(ctx context.Context, caller service.Caller, workspaceID uuid.UUID) ([]model.Column, error) {
	args := m.Called(ctx, caller, workspaceID)
	cols, _ := args.Get(0).([]model.Column)
	return cols, args.Error(1)
}

func (m *MockColumnService) Create(ctx context.Context, caller service.Caller, workspaceID uuid.UUID, name string) (*model.Column, error) {
	args := m.Called(ctx, caller, workspaceID, name)
	col, _ := args.Get(0).(*model.Column)
	return col, args.Error(1)
}

func (m *MockColumnService) Rename(ctx context.Context, caller service.Caller, workspaceID, columnID uuid.UUID, name string) (*model.Column, error) {
	args := m.Called(ctx, caller, workspaceID, columnID, name)
	col, _ := args.Get(0).(*model.Column)
	return col, args.Error(1)
}

func (m *MockColumnService) Delete(ctx context.Context, caller service.Caller, workspaceID, columnID uuid.UUID) error {
	return m.Called(ctx, caller, workspaceID, columnID).Error(0)
}

func (m *MockColumnService) Reorder(ctx context.Context, caller service.Caller, workspaceID, columnID uuid.UUID, to int) ([]model.Column, error) {
	args := m.Called(ctx, caller, workspaceID, columnID, to)
	cols, _ := args.Get(0).([]model.Column)
	return cols, args.Error(1)
}

func (m *MockUserSyncer) Me(ctx context.Context, caller service.Caller) (*model.User, error) {
	args := m.Called(ctx, caller)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}
