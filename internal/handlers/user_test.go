package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
)

func (suite *HandlerTestSuite) TestListUsers_RequiresElevatedRole() {
	suite.requireError(suite.request(http.MethodGet, "/api/users", suite.alice, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)

	w := suite.request(http.MethodGet, "/api/users", suite.manager, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var users []dto.UserDTO
	suite.decode(w, &users)
	suite.Len(users, 4)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestGetUser() {
	self := fmt.Sprintf("/api/users/%d", suite.alice.ID)

	suite.Equal(http.StatusOK, suite.request(http.MethodGet, self, suite.alice, nil).Code)
	suite.Equal(http.StatusOK, suite.request(http.MethodGet, self, suite.manager, nil).Code)
	suite.requireError(suite.request(http.MethodGet, self, suite.bob, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)
}

func (suite *HandlerTestSuite) TestUpdateUser_Self() {
	path := fmt.Sprintf("/api/users/%d", suite.alice.ID)

	w := suite.request(http.MethodPut, path, suite.alice, map[string]string{"name": "Alicia"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal("Alicia", user.Name)

	// users cannot promote themselves
	w = suite.request(http.MethodPut, path, suite.alice, map[string]string{"role": "admin"})
	suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)
}

func (suite *HandlerTestSuite) TestUpdateUser_AdminChangesRole() {
	w := suite.request(http.MethodPut, fmt.Sprintf("/api/users/%d", suite.bob.ID), suite.admin, map[string]string{"role": "manager"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.Equal(models.RoleManager, user.Role)

	w = suite.request(http.MethodPut, fmt.Sprintf("/api/users/%d", suite.bob.ID), suite.manager, map[string]string{"name": "Robert"})
	suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)
}

func (suite *HandlerTestSuite) TestUpdateUser_PasswordChange() {
	path := fmt.Sprintf("/api/users/%d", suite.alice.ID)

	w := suite.request(http.MethodPut, path, suite.alice, map[string]string{"password": "abc"})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.request(http.MethodPut, path, suite.alice, map[string]string{"password": "brand-new-secret"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    "alice@example.com",
		"password": "brand-new-secret",
	})
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteUser() {
	path := fmt.Sprintf("/api/users/%d", suite.bob.ID)

	suite.requireError(suite.request(http.MethodDelete, path, suite.alice, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)

	w := suite.request(http.MethodDelete, path, suite.manager, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, path, suite.admin, nil).Code)
}

func (suite *HandlerTestSuite) TestDeleteUser_Self() {
	w := suite.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", suite.admin.ID), suite.admin, nil)
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeSelfDeletion)

	var count int64
	suite.db.Model(&models.User{}).Where("id = ?", suite.admin.ID).Count(&count)
	suite.Equal(int64(1), count)
}

func (suite *HandlerTestSuite) TestRegister_EmailOfDeletedUser() {
	suite.Require().Equal(http.StatusOK, suite.request(http.MethodDelete, fmt.Sprintf("/api/users/%d", suite.bob.ID), suite.admin, nil).Code)

	w := suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name":     "New Bob",
		"email":    "bob@example.com",
		"password": "supersecret",
	})
	suite.requireError(w, http.StatusConflict, apierrors.ErrCodeConflict)
}
