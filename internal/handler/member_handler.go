package handler

import (
	"net/http"

	"tickr/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MemberHandler struct {
	members MemberService
	log     logrus.FieldLogger
}

func NewMemberHandler(members MemberService, log logrus.FieldLogger) *MemberHandler {
	return &MemberHandler{members: members, log: silentLogger(log)}
}

type InviteMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,role"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// GetAll godoc
// @Summary      List workspace members
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace ID"
// @Success      200  {array}   MemberResponse
// @Router       /workspaces/{id}/members [get]
func (h *MemberHandler) GetAll(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}

	members, err := h.members.List(c.Request.Context(), callerOf(c), workspaceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	resp := make([]MemberResponse, len(members))
	for i, m := range members {
		resp[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, resp)
}

// Invite godoc
// @Summary      Invite someone by email
// @Tags         Members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Workspace ID"
// @Param        request  body      InviteMemberRequest  true  "Invitation"
// @Success      201      {object}  InviteResponse
// @Failure      400      {object}  map[string]string
// @Router       /workspaces/{id}/members [post]
func (h *MemberHandler) Invite(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	var req InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	role, _ := model.ParseRole(req.Role)

	invite, err := h.members.Invite(c.Request.Context(), callerOf(c), workspaceID, req.Email, role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, toInviteResponse(invite))
}

// UpdateRole godoc
// @Summary      Change a member's role
// @Tags         Members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string                   true  "Workspace ID"
// @Param        memberId  path      string                   true  "Member user ID"
// @Param        request   body      UpdateMemberRoleRequest  true  "Role"
// @Success      200       {object}  MemberResponse
// @Router       /workspaces/{id}/members/{memberId} [patch]
func (h *MemberHandler) UpdateRole(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	var req UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	role, _ := model.ParseRole(req.Role)

	member, err := h.members.ChangeRole(c.Request.Context(), callerOf(c), workspaceID, c.Param("memberId"), role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(*member))
}

// Remove godoc
// @Summary      Remove a member, or leave the workspace
// @Tags         Members
// @Security     BearerAuth
// @Param        id        path      string  true  "Workspace ID"
// @Param        memberId  path      string  true  "Member user ID"
// @Success      200       {object}  map[string]string
// @Router       /workspaces/{id}/members/{memberId} [delete]
func (h *MemberHandler) Remove(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}

	if err := h.members.Remove(c.Request.Context(), callerOf(c), workspaceID, c.Param("memberId")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed successfully"})
}

// GetInvites godoc
// @Summary      Pending invitations of a workspace
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace ID"
// @Success      200  {array}   InviteResponse
// @Router       /workspaces/{id}/invites [get]
func (h *MemberHandler) GetInvites(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}

	invites, err := h.members.ListInvites(c.Request.Context(), callerOf(c), workspaceID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toInviteList(invites))
}

// RevokeInvite godoc
// @Summary      Revoke an invitation
// @Tags         Members
// @Security     BearerAuth
// @Param        id        path      string  true  "Workspace ID"
// @Param        inviteId  path      string  true  "Invitation ID"
// @Success      200       {object}  map[string]string
// @Router       /workspaces/{id}/invites/{inviteId} [delete]
func (h *MemberHandler) RevokeInvite(c *gin.Context) {
	workspaceID, ok := parseID(c, "id", "workspace")
	if !ok {
		return
	}
	inviteID, ok := parseID(c, "inviteId", "invitation")
	if !ok {
		return
	}

	if err := h.members.RevokeInvite(c.Request.Context(), callerOf(c), workspaceID, inviteID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation revoked successfully"})
}
