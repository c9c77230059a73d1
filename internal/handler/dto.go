package handler

import (
	"time"

	"tickr/internal/model"
	"tickr/internal/repository"
	"tickr/internal/service"
)

type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type WorkspaceResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	IsPersonal  bool       `json:"isPersonal"`
	Role        model.Role `json:"role,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ColumnResponse struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspaceId"`
	Name        string         `json:"name"`
	Order       int            `json:"order"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
}

type SubtaskResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"taskId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Order     int    `json:"order"`
}

type TaskResponse struct {
	ID          string            `json:"id"`
	ColumnID    string            `json:"columnId"`
	Title       string            `json:"title"`
	Subtitle    *string           `json:"subtitle,omitempty"`
	Details     *string           `json:"details,omitempty"`
	Priority    model.Priority    `json:"priority"`
	Order       int               `json:"order"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	AssigneeID  *string           `json:"assigneeId,omitempty"`
	Assignee    *UserResponse     `json:"assignee,omitempty"`
	CreatedByID string            `json:"createdById"`
	Subtasks    []SubtaskResponse `json:"subtasks"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type MoveResponse struct {
	Task        TaskResponse   `json:"task"`
	Source      []TaskResponse `json:"source"`
	Destination []TaskResponse `json:"destination"`
}

type MemberResponse struct {
	UserID    string     `json:"userId"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	Role      model.Role `json:"role"`
	IsOwner   bool       `json:"isOwner"`
	JoinedAt  time.Time  `json:"joinedAt"`
}

type InviteResponse struct {
	ID            string             `json:"id"`
	WorkspaceID   string             `json:"workspaceId"`
	WorkspaceName string             `json:"workspaceName,omitempty"`
	Email         string             `json:"email"`
	Role          model.Role         `json:"role"`
	Status        model.InviteStatus `json:"status"`
	InvitedByID   string             `json:"invitedById"`
	CreatedAt     time.Time          `json:"createdAt"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, Name: u.Name, AvatarURL: u.AvatarURL}
}

func toWorkspaceResponse(ws *model.Workspace, role model.Role) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID.String(),
		Name:        ws.Name,
		Description: ws.Description,
		OwnerID:     ws.OwnerID,
		IsPersonal:  ws.IsPersonal,
		Role:        role,
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

func toWorkspaceList(list []repository.WorkspaceWithRole) []WorkspaceResponse {
	out := make([]WorkspaceResponse, len(list))
	for i := range list {
		out[i] = toWorkspaceResponse(&list[i].Workspace, list[i].Role)
	}
	return out
}

func toColumnResponse(col *model.Column, withTasks bool) ColumnResponse {
	resp := ColumnResponse{
		ID:          col.ID.String(),
		WorkspaceID: col.WorkspaceID.String(),
		Name:        col.Name,
		Order:       col.Order,
	}
	if withTasks {
		resp.Tasks = toTaskList(col.Tasks)
		if resp.Tasks == nil {
			resp.Tasks = []TaskResponse{}
		}
	}
	return resp
}

func toColumnList(cols []model.Column, withTasks bool) []ColumnResponse {
	out := make([]ColumnResponse, len(cols))
	for i := range cols {
		out[i] = toColumnResponse(&cols[i], withTasks)
	}
	return out
}

func toSubtaskResponse(st *model.Subtask) SubtaskResponse {
	return SubtaskResponse{
		ID:        st.ID.String(),
		TaskID:    st.TaskID.String(),
		Title:     st.Title,
		Completed: st.Completed,
		Order:     st.Order,
	}
}

func toTaskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		ColumnID:    task.ColumnID.String(),
		Title:       task.Title,
		Subtitle:    task.Subtitle,
		Details:     task.Details,
		Priority:    task.Priority,
		Order:       task.Order,
		DueDate:     task.DueDate,
		AssigneeID:  task.AssigneeID,
		CreatedByID: task.CreatedByID,
		Subtasks:    make([]SubtaskResponse, len(task.Subtasks)),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Assignee != nil {
		assignee := toUserResponse(task.Assignee)
		resp.Assignee = &assignee
	}
	for i := range task.Subtasks {
		resp.Subtasks[i] = toSubtaskResponse(&task.Subtasks[i])
	}
	return resp
}

func toTaskList(tasks []model.Task) []TaskResponse {
	if tasks == nil {
		return nil
	}
	out := make([]TaskResponse, len(tasks))
	for i := range tasks {
		out[i] = toTaskResponse(&tasks[i])
	}
	return out
}

func toMemberResponse(m service.MemberView) MemberResponse {
	return MemberResponse{
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		AvatarURL: m.AvatarURL,
		Role:      m.Role,
		IsOwner:   m.IsOwner,
		JoinedAt:  m.JoinedAt,
	}
}

func toInviteResponse(inv *model.WorkspaceInvite) InviteResponse {
	return InviteResponse{
		ID:            inv.ID.String(),
		WorkspaceID:   inv.WorkspaceID.String(),
		WorkspaceName: inv.Workspace.Name,
		Email:         inv.Email,
		Role:          inv.Role,
		Status:        inv.Status,
		InvitedByID:   inv.InvitedByID,
		CreatedAt:     inv.CreatedAt,
	}
}

func toInviteList(invites []model.WorkspaceInvite) []InviteResponse {
	out := make([]InviteResponse, len(invites))
	for i := range invites {
		out[i] = toInviteResponse(&invites[i])
	}
	return out
}
