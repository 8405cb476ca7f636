package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
)

func (suite *HandlerTestSuite) createTask(owner *models.User, title string) dto.TaskDTO {
	w := suite.request(http.MethodPost, "/api/tasks", owner, map[string]string{
		"title":       title,
		"description": "Write the handler tests",
		"due_date":    "2025-02-01",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	return task
}

func (suite *HandlerTestSuite) TestCreateTask_Defaults() {
	task := suite.createTask(suite.alice, "Ship it")

	suite.Equal(suite.alice.ID, task.OwnerID)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Equal(models.TaskPriorityMedium, task.Priority)
}

func (suite *HandlerTestSuite) TestCreateTask_MissingFields() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.alice, map[string]string{
		"title": "No description",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)
}

func (suite *HandlerTestSuite) TestCreateTask_InvalidPriority() {
	w := suite.request(http.MethodPost, "/api/tasks", suite.alice, map[string]string{
		"title":       "Bad priority",
		"description": "x",
		"due_date":    "2025-02-01",
		"priority":    "urgent",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (suite *HandlerTestSuite) TestListTasks_OnlyOwn() {
	suite.createTask(suite.alice, "Alice 1")
	suite.createTask(suite.alice, "Alice 2")
	suite.createTask(suite.bob, "Bob 1")

	w := suite.request(http.MethodGet, "/api/tasks", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("2", w.Header().Get("X-Total-Count"))

	var tasks []dto.TaskDTO
	suite.decode(w, &tasks)
	suite.Len(tasks, 2)
	for _, task := range tasks {
		suite.Equal(suite.alice.ID, task.OwnerID)
	}
}

func (suite *HandlerTestSuite) TestListTasks_Unauthenticated() {
	w := suite.request(http.MethodGet, "/api/tasks", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask_NotOwner() {
	task := suite.createTask(suite.alice, "Private")

	for _, caller := range []*models.User{suite.bob, suite.manager, suite.admin} {
		w := suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), caller, nil)
		suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)
	}
}

func (suite *HandlerTestSuite) TestGetTask_NotFound() {
	w := suite.request(http.MethodGet, "/api/tasks/999", suite.alice, nil)
	suite.requireError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

func (suite *HandlerTestSuite) TestGetTask_InvalidID() {
	w := suite.request(http.MethodGet, "/api/tasks/abc", suite.alice, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask() {
	task := suite.createTask(suite.alice, "Before")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.alice, map[string]string{
		"title":  "After",
		"status": "completed",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.TaskDTO
	suite.decode(w, &updated)
	suite.Equal("After", updated.Title)
	suite.Equal(models.TaskStatusCompleted, updated.Status)
	suite.Equal(task.Description, updated.Description)
}

func (suite *HandlerTestSuite) TestUpdateTask_NotOwnerLeavesRecord() {
	task := suite.createTask(suite.alice, "Mine")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", task.ID), suite.bob, map[string]string{
		"title": "Stolen",
	})
	suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Equal("Mine", stored.Title)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	task := suite.createTask(suite.alice, "Disposable")
	path := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.request(http.MethodDelete, path, suite.bob, nil)
	suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.request(http.MethodDelete, path, suite.alice, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"success":true`)

	w = suite.request(http.MethodGet, path, suite.alice, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}
