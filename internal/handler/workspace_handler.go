package handler

import (
	"net/http"

	"tickr/internal/model"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WorkspaceHandler struct {
	workspaces WorkspaceService
	log        logrus.FieldLogger
}

func NewWorkspaceHandler(workspaces WorkspaceService, log logrus.FieldLogger) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, log: silentLogger(log)}
}

type CreateWorkspaceRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// List godoc
// @Summary      List workspaces
// @Description  Workspaces the caller owns or belongs to, with the caller's role
// @Tags         Workspaces
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   WorkspaceResponse
// @Failure      401  {object}  map[string]string
// @Router       /workspaces [get]
func (h *WorkspaceHandler) List(c *gin.Context) {
	list, err := h.workspaces.List(c.Request.Context(), callerOf(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toWorkspaceList(list))
}

// Create godoc
// @Summary      Create a workspace
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateWorkspaceRequest  true  "Workspace"
// @Success      201      {object}  WorkspaceResponse
// @Failure      400      {object}  map[string]string
// @Router       /workspaces [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	ws, err := h.workspaces.Create(c.Request.Context(), callerOf(c), service.WorkspaceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toWorkspaceResponse(ws, model.RoleAdmin))
}

// Get godoc
// @Summary      Get a workspace
// @Tags         Workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace ID"
// @Success      200  {object}  WorkspaceResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /workspaces/{id} [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}

	ws, err := h.workspaces.Get(c.Request.Context(), callerOf(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toWorkspaceResponse(&ws.Workspace, ws.Role))
}

// Update godoc
// @Summary      Rename a workspace or change its description
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Workspace ID"
// @Param        request  body      UpdateWorkspaceRequest  true  "Fields to change"
// @Success      200      {object}  WorkspaceResponse
// @Router       /workspaces/{id} [patch]
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}

	ws, err := h.workspaces.Update(c.Request.Context(), callerOf(c), id, service.WorkspacePatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toWorkspaceResponse(ws, model.RoleAdmin))
}

// Delete godoc
// @Summary      Delete a workspace with everything in it
// @Tags         Workspaces
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace ID"
// @Success      200  {object}  map[string]string
// @Router       /workspaces/{id} [delete]
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	if err := h.workspaces.Delete(c.Request.Context(), callerOf(c), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}
