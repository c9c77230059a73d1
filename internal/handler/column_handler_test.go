package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"tickr/internal/handler"
	"tickr/internal/model"
	"tickr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupColumnTest() (*gin.Engine, *MockColumnService) {
	r := newRouter()
	columns := new(MockColumnService)
	h := handler.NewColumnHandler(columns, nil)

	r.GET("/workspaces/:id/columns", h.GetAll)
	r.POST("/workspaces/:id/columns", h.Create)
	r.PATCH("/workspaces/:id/columns/:columnId", h.Update)
	r.DELETE("/workspaces/:id/columns/:columnId", h.Delete)
	r.POST("/workspaces/:id/columns/reorder", h.Reorder)
	return r, columns
}

func TestColumnHandler_Board(t *testing.T) {
	router, columns := setupColumnTest()
	wsID := uuid.New()
	todo := uuid.New()
	columns.On("Board", mock.Anything, testCaller, wsID).Return([]model.Column{
		{ID: todo, WorkspaceID: wsID, Name: "To Do", Order: 0, Tasks: []model.Task{
			{ID: uuid.New(), ColumnID: todo, Title: "T1", Priority: model.PriorityMedium},
		}},
		{ID: uuid.New(), WorkspaceID: wsID, Name: "Done", Order: 1},
	}, nil)

	resp := doJSON(router, "GET", "/workspaces/"+wsID.String()+"/columns", nil)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []handler.ColumnResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 2)
	require.Len(t, body[0].Tasks, 1)
	assert.Equal(t, "T1", body[0].Tasks[0].Title)
	assert.Equal(t, 1, body[1].Order)
}

func TestColumnHandler_CreateAndRename(t *testing.T) {
	router, columns := setupColumnTest()
	wsID, colID := uuid.New(), uuid.New()
	columns.On("Create", mock.Anything, testCaller, wsID, "Review").
		Return(&model.Column{ID: colID, WorkspaceID: wsID, Name: "Review", Order: 3}, nil)
	columns.On("Rename", mock.Anything, testCaller, wsID, colID, "QA").
		Return(&model.Column{ID: colID, WorkspaceID: wsID, Name: "QA", Order: 3}, nil)

	resp := doJSON(router, "POST", "/workspaces/"+wsID.String()+"/columns", map[string]string{"name": "Review"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = doJSON(router, "PATCH", "/workspaces/"+wsID.String()+"/columns/"+colID.String(), map[string]string{"name": "QA"})
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"name":"QA"`)

	resp = doJSON(router, "POST", "/workspaces/"+wsID.String()+"/columns", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	columns.AssertExpectations(t)
}

func TestColumnHandler_DeleteNotFound(t *testing.T) {
	router, columns := setupColumnTest()
	wsID, colID := uuid.New(), uuid.New()
	columns.On("Delete", mock.Anything, testCaller, wsID, colID).
		Return(&service.Error{Kind: service.KindNotFound, Message: "Column not found"})

	resp := doJSON(router, "DELETE", "/workspaces/"+wsID.String()+"/columns/"+colID.String(), nil)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Column not found", errorOf(resp))
}

func TestColumnHandler_Reorder(t *testing.T) {
	router, columns := setupColumnTest()
	wsID, colID := uuid.New(), uuid.New()
	columns.On("Reorder", mock.Anything, testCaller, wsID, colID, 0).
		Return([]model.Column{{ID: colID, WorkspaceID: wsID, Name: "Done", Order: 0}}, nil)

	resp := doJSON(router, "POST", "/workspaces/"+wsID.String()+"/columns/reorder", map[string]interface{}{
		"columnId": colID.String(),
		"toIndex":  0,
	})
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = doJSON(router, "POST", "/workspaces/"+wsID.String()+"/columns/reorder", map[string]interface{}{
		"columnId": "not-a-uuid",
		"toIndex":  0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	columns.AssertNumberOfCalls(t, "Reorder", 1)
}
