package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// InvitationHandler serves the invited user's side of invitations.
type InvitationHandler struct {
	members MemberService
	log     logrus.FieldLogger
}

func NewInvitationHandler(members MemberService, log logrus.FieldLogger) *InvitationHandler {
	return &InvitationHandler{members: members, log: silentLogger(log)}
}

// Pending godoc
// @Summary      Invitations addressed to the caller
// @Description  Failures are logged and answered with an empty list.
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  InviteResponse
// @Router       /invitations/pending [get]
func (h *InvitationHandler) Pending(c *gin.Context) {
	invites, err := h.members.Pending(c.Request.Context(), callerOf(c))
	if err != nil {
		h.log.WithError(err).WithField("user_id", callerOf(c).UserID).Warn("failed to list pending invitations")
		c.JSON(http.StatusOK, []InviteResponse{})
		return
	}
	c.JSON(http.StatusOK, toInviteList(invites))
}

// Accept godoc
// @Summary      Accept an invitation
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invitation ID"
// @Success      200  {object}  InviteResponse
// @Failure      403  {object}  map[string]string
// @Router       /invitations/{id}/accept [post]
func (h *InvitationHandler) Accept(c *gin.Context) {
	id, ok := parseID(c, "id", "invitation")
	if !ok {
		return
	}

	invite, err := h.members.Accept(c.Request.Context(), callerOf(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toInviteResponse(invite))
}

// Decline godoc
// @Summary      Decline an invitation
// @Tags         Invitations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invitation ID"
// @Success      200  {object}  InviteResponse
// @Router       /invitations/{id}/decline [post]
func (h *InvitationHandler) Decline(c *gin.Context) {
	id, ok := parseID(c, "id", "invitation")
	if !ok {
		return
	}

	invite, err := h.members.Decline(c.Request.Context(), callerOf(c), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toInviteResponse(invite))
}
