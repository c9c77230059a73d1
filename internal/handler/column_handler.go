package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ColumnHandler struct {
	columns ColumnService
	log     logrus.FieldLogger
}

func NewColumnHandler(columns ColumnService, log logrus.FieldLogger) *ColumnHandler {
	return &ColumnHandler{columns: columns, log: silentLogger(log)}
}

type CreateColumnRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateColumnRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type ReorderColumnRequest struct {
	ColumnID string `json:"columnId" binding:"required,uuid"`
	ToIndex  *int   `json:"toIndex" binding:"required"`
}

// GetAll godoc
// @Summary      Board of a workspace
// @Description  Columns in order with their tasks and subtasks. An empty workspace gets the default columns.
// @Tags         Columns
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace ID"
// @Success      200  {array}   ColumnResponse
// @Router       /workspaces/{id}/columns [get]
func (h *ColumnHandler) GetAll(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}

	columns, err := h.columns.Board(c.Request.Context(), callerOf(c), workspaceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toColumnList(columns, true))
}

// Create godoc
// @Summary      Append a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Workspace ID"
// @Param        request  body      CreateColumnRequest  true  "Column"
// @Success      201      {object}  ColumnResponse
// @Router       /workspaces/{id}/columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	var req CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	column, err := h.columns.Create(c.Request.Context(), callerOf(c), workspaceID, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toColumnResponse(column, false))
}

// Update godoc
// @Summary      Rename a column
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string               true  "Workspace ID"
// @Param        columnId  path      string               true  "Column ID"
// @Param        request   body      UpdateColumnRequest  true  "Column"
// @Success      200       {object}  ColumnResponse
// @Router       /workspaces/{id}/columns/{columnId} [patch]
func (h *ColumnHandler) Update(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	columnID, ok := parseID(c, "columnId", "column")
	if !ok {
		return
	}
	var req UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	column, err := h.columns.Rename(c.Request.Context(), callerOf(c), workspaceID, columnID, req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toColumnResponse(column, false))
}

// Delete godoc
// @Summary      Delete a column with its tasks
// @Tags         Columns
// @Security     BearerAuth
// @Param        id        path      string  true  "Workspace ID"
// @Param        columnId  path      string  true  "Column ID"
// @Success      200       {object}  map[string]string
// @Router       /workspaces/{id}/columns/{columnId} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	columnID, ok := parseID(c, "columnId", "column")
	if !ok {
		return
	}

	if err := h.columns.Delete(c.Request.Context(), callerOf(c), workspaceID, columnID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Column deleted successfully"})
}

// Reorder godoc
// @Summary      Move a column to another index
// @Tags         Columns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Workspace ID"
// @Param        request  body      ReorderColumnRequest  true  "Move"
// @Success      200      {array}   ColumnResponse
// @Router       /workspaces/{id}/columns/reorder [post]
func (h *ColumnHandler) Reorder(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	var req ReorderColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	columns, err := h.columns.Reorder(c.Request.Context(), callerOf(c), workspaceID, uuid.MustParse(req.ColumnID), *req.ToIndex)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toColumnList(columns, false))
}
