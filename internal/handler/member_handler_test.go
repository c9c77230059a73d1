package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"tickr/internal/handler"
	"tickr/internal/model"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupMemberTest() (*gin.Engine, *MockMemberService) {
	r := newRouter()
	members := new(MockMemberService)
	h := handler.NewMemberHandler(members, nil)

	r.GET("/workspaces/:id/members", h.GetAll)
	r.POST("/workspaces/:id/members", h.Invite)
	r.PATCH("/workspaces/:id/members/:memberId", h.UpdateRole)
	r.DELETE("/workspaces/:id/members/:memberId", h.Remove)
	r.GET("/workspaces/:id/invites", h.GetInvites)
	r.DELETE("/workspaces/:id/invites/:inviteId", h.RevokeInvite)
	return r, members
}

func TestMemberHandler_Invite(t *testing.T) {
	router, members := setupMemberTest()
	wsID := uuid.New()
	members.On("Invite", mock.Anything, testCaller, wsID, "bob@example.com", model.RoleMember).
		Return(&model.WorkspaceInvite{ID: uuid.New(), WorkspaceID: wsID, Email: "bob@example.com", Role: model.RoleMember, Status: model.InvitePending}, nil)

	resp := doJSON(router, "POST", "/workspaces/"+wsID.String()+"/members", map[string]string{
		"email": "bob@example.com",
		"role":  "member",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body handler.InviteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, model.InvitePending, body.Status)
	members.AssertExpectations(t)
}

func TestMemberHandler_InviteValidation(t *testing.T) {
	router, members := setupMemberTest()
	path := "/workspaces/" + uuid.NewString() + "/members"

	for _, body := range []map[string]string{
		{"email": "bob@example.com", "role": "OWNER"},
		{"email": "not-an-email", "role": "VIEWER"},
		{"role": "VIEWER"},
	} {
		resp := doJSON(router, "POST", path, body)
		assert.Equal(t, http.StatusBadRequest, resp.Code, body)
	}
	members.AssertNotCalled(t, "Invite", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMemberHandler_InviteQuota(t *testing.T) {
	router, members := setupMemberTest()
	wsID := uuid.New()
	members.On("Invite", mock.Anything, testCaller, wsID, "fifth@example.com", model.RoleMember).
		Return(nil, &service.Error{Kind: service.KindQuota, Message: "Maximum number of members reached (5)"})

	resp := doJSON(router, "POST", "/workspaces/"+wsID.String()+"/members", map[string]string{
		"email": "fifth@example.com",
		"role":  "MEMBER",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "Maximum number of members reached (5)", errorOf(resp))
}

func TestMemberHandler_ListAndChangeRole(t *testing.T) {
	router, members := setupMemberTest()
	wsID := uuid.New()
	members.On("List", mock.Anything, testCaller, wsID).Return([]service.MemberView{
		{UserID: testUserID, Role: model.RoleAdmin, IsOwner: true},
		{UserID: "bob", Email: "bob@example.com", Role: model.RoleMember},
	}, nil)
	members.On("ChangeRole", mock.Anything, testCaller, wsID, "bob", model.RoleAdmin).
		Return(&service.MemberView{UserID: "bob", Role: model.RoleAdmin}, nil)

	resp := doJSON(router, "GET", "/workspaces/"+wsID.String()+"/members", nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	var list []handler.MemberResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.True(t, list[0].IsOwner)

	resp = doJSON(router, "PATCH", "/workspaces/"+wsID.String()+"/members/bob", map[string]string{"role": "ADMIN"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"role":"ADMIN"`)
}

func TestMemberHandler_RemoveOwner(t *testing.T) {
	router, members := setupMemberTest()
	wsID := uuid.New()
	members.On("Remove", mock.Anything, testCaller, wsID, "owner").
		Return(&service.Error{Kind: service.KindValidation, Message: "The workspace owner cannot be removed"})

	resp := doJSON(router, "DELETE", "/workspaces/"+wsID.String()+"/members/owner", nil)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func setupInvitationTest() (*gin.Engine, *MockMemberService, *test.Hook) {
	r := newRouter()
	members := new(MockMemberService)
	log, hook := test.NewNullLogger()
	h := handler.NewInvitationHandler(members, log)

	r.GET("/invitations/pending", h.Pending)
	r.POST("/invitations/:id/accept", h.Accept)
	r.POST("/invitations/:id/decline", h.Decline)
	return r, members, hook
}

func TestInvitationHandler_PendingSwallowsErrors(t *testing.T) {
	router, members, hook := setupInvitationTest()
	members.On("Pending", mock.Anything, testCaller).Return(nil, errors.New("db down"))

	resp := doJSON(router, "GET", "/invitations/pending", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
	require.NotNil(t, hook.LastEntry())
}

func TestInvitationHandler_Accept(t *testing.T) {
	router, members, _ := setupInvitationTest()
	id := uuid.New()
	members.On("Accept", mock.Anything, testCaller, id).
		Return(&model.WorkspaceInvite{ID: id, Status: model.InviteAccepted, Workspace: model.Workspace{Name: "Team"}}, nil)

	resp := doJSON(router, "POST", "/invitations/"+id.String()+"/accept", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body handler.InviteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, model.InviteAccepted, body.Status)
	assert.Equal(t, "Team", body.WorkspaceName)
}

func TestInvitationHandler_AcceptOtherRecipient(t *testing.T) {
	router, members, _ := setupInvitationTest()
	id := uuid.New()
	members.On("Accept", mock.Anything, testCaller, id).
		Return(nil, &service.Error{Kind: service.KindForbidden, Message: "This invitation was sent to a different email"})

	resp := doJSON(router, "POST", "/invitations/"+id.String()+"/accept", nil)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}
