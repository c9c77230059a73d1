package handler

import (
	"net/http"
	"time"

	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	tasks TaskService
	log   logrus.FieldLogger
}

func NewTaskHandler(tasks TaskService, log logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{tasks: tasks, log: silentLogger(log)}
}

type CreateTaskRequest struct {
	ColumnID   string     `json:"columnId" binding:"required,uuid"`
	Title      string     `json:"title" binding:"required,max=200"`
	Subtitle   *string    `json:"subtitle" binding:"omitempty,max=200"`
	Details    *string    `json:"details"`
	Priority   string     `json:"priority" binding:"omitempty,priority"`
	DueDate    *time.Time `json:"dueDate"`
	AssigneeID *string    `json:"assigneeId"`
	Subtasks   []string   `json:"subtasks" binding:"omitempty,max=50,dive,required,max=200"`
}

// UpdateTaskRequest changes only the fields present. An empty subtitle,
// details or assigneeId clears the field; clearDueDate removes the due date.
type UpdateTaskRequest struct {
	Title        *string    `json:"title" binding:"omitempty,max=200"`
	Subtitle     *string    `json:"subtitle" binding:"omitempty,max=200"`
	Details      *string    `json:"details"`
	Priority     *string    `json:"priority" binding:"omitempty,priority"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
	AssigneeID   *string    `json:"assigneeId"`
}

type MoveTaskRequest struct {
	TaskID     string `json:"taskId" binding:"required,uuid"`
	ToColumnID string `json:"toColumnId" binding:"required,uuid"`
	ToIndex    *int   `json:"toIndex" binding:"required"`
}

type CreateSubtaskRequest struct {
	Title string `json:"title" binding:"required,max=200"`
}

// Create godoc
// @Summary      Create a task at the end of a column
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateTaskRequest  true  "Task"
// @Success      201      {object}  TaskResponse
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), callerOf(c), service.TaskInput{
		ColumnID:   uuid.MustParse(req.ColumnID),
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Details:    req.Details,
		Priority:   req.Priority,
		DueDate:    req.DueDate,
		AssigneeID: req.AssigneeID,
		Subtasks:   req.Subtasks,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetByID godoc
// @Summary      Get a task with its subtasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  TaskResponse
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), callerOf(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update godoc
// @Summary      Update task fields
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Task ID"
// @Param        request  body      UpdateTaskRequest  true  "Fields to change"
// @Success      200      {object}  TaskResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), callerOf(c), id, service.TaskPatch{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Details:      req.Details,
		Priority:     req.Priority,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		AssigneeID:   req.AssigneeID,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete godoc
// @Summary      Delete a task
// @Tags         Tasks
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), callerOf(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// MoveTask godoc
// @Summary      Move a task within or across columns
// @Description  Returns the moved task and both affected columns in their new order.
// @Description  On any error the client should reload the board.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      MoveTaskRequest  true  "Move"
// @Success      200      {object}  MoveResponse
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /tasks/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	res, err := h.tasks.Move(c.Request.Context(), callerOf(c), service.MoveInput{
		TaskID:     uuid.MustParse(req.TaskID),
		ToColumnID: uuid.MustParse(req.ToColumnID),
		ToIndex:    *req.ToIndex,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, MoveResponse{
		Task:        toTaskResponse(res.Task),
		Source:      nonNil(toTaskList(res.Source)),
		Destination: nonNil(toTaskList(res.Destination)),
	})
}

// AddSubtask godoc
// @Summary      Append a subtask
// @Tags         Subtasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Task ID"
// @Param        request  body      CreateSubtaskRequest  true  "Subtask"
// @Success      201      {object}  SubtaskResponse
// @Router       /tasks/{id}/subtasks [post]
func (h *TaskHandler) AddSubtask(c *gin.Context) {
	id, ok := parseID(c, "id", "task")
	if !ok {
		return
	}
	var req CreateSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	subtask, err := h.tasks.AddSubtask(c.Request.Context(), callerOf(c), id, req.Title)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toSubtaskResponse(subtask))
}

func nonNil(tasks []TaskResponse) []TaskResponse {
	if tasks == nil {
		return []TaskResponse{}
	}
	return tasks
}
