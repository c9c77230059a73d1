package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SubtaskHandler struct {
	tasks TaskService
	log   logrus.FieldLogger
}

func NewSubtaskHandler(tasks TaskService, log logrus.FieldLogger) *SubtaskHandler {
	return &SubtaskHandler{tasks: tasks, log: silentLogger(log)}
}

type ToggleSubtaskRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// Toggle godoc
// @Summary      Mark a subtask done or not done
// @Tags         Subtasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Subtask ID"
// @Param        request  body      ToggleSubtaskRequest  true  "State"
// @Success      200      {object}  SubtaskResponse
// @Failure      400      {object}  map[string]string
// @Router       /subtasks/{id} [patch]
func (h *SubtaskHandler) Toggle(c *gin.Context) {
	id, ok := parseID(c, "id", "subtask")
	if !ok {
		return
	}
	var req ToggleSubtaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "completed must be a boolean")
		return
	}

	subtask, err := h.tasks.SetSubtaskCompleted(c.Request.Context(), callerOf(c), id, *req.Completed)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toSubtaskResponse(subtask))
}

// Delete godoc
// @Summary      Delete a subtask
// @Tags         Subtasks
// @Security     BearerAuth
// @Param        id   path      string  true  "Subtask ID"
// @Success      200  {object}  map[string]string
// @Router       /subtasks/{id} [delete]
func (h *SubtaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "subtask")
	if !ok {
		return
	}

	if err := h.tasks.DeleteSubtask(c.Request.Context(), callerOf(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subtask deleted successfully"})
}
