package handlers

import (
	"net/http"
	"net/http/httptest"

	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
)

func (suite *HandlerTestSuite) TestRegister() {
	w := suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name":     "Carol",
		"email":    "Carol@Example.com",
		"password": "supersecret",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var user dto.UserDTO
	suite.decode(w, &user)
	suite.NotZero(user.ID)
	suite.Equal("carol@example.com", user.Email)
	suite.Equal(models.RoleUser, user.Role)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestRegister_DuplicateEmail() {
	w := suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"name":     "Alice again",
		"email":    "alice@example.com",
		"password": "supersecret",
	})
	suite.requireError(w, http.StatusConflict, apierrors.ErrCodeConflict)
}

func (suite *HandlerTestSuite) TestRegister_MissingFields() {
	w := suite.request(http.MethodPost, "/api/auth/register", nil, map[string]string{
		"email": "nobody@example.com",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)
}

func (suite *HandlerTestSuite) TestLogin_IssuesTokenAndSession() {
	w := suite.request(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    "alice@example.com",
		"password": testPassword,
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	suite.decode(w, &resp)
	suite.Equal(suite.alice.ID, resp.User.ID)
	suite.NotEmpty(resp.Token)

	// bearer token
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	me := httptest.NewRecorder()
	suite.router.ServeHTTP(me, req)
	suite.Equal(http.StatusOK, me.Code)

	// session cookie
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	me = httptest.NewRecorder()
	suite.router.ServeHTTP(me, req)
	suite.Require().Equal(http.StatusOK, me.Code)

	var user dto.UserDTO
	suite.decode(me, &user)
	suite.Equal("alice@example.com", user.Email)
}

func (suite *HandlerTestSuite) TestLogin_WrongPassword() {
	w := suite.request(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	suite.requireError(w, http.StatusUnauthorized, apierrors.ErrCodeInvalidCredentials)
}

func (suite *HandlerTestSuite) TestGetCurrentUser_Unauthenticated() {
	w := suite.request(http.MethodGet, "/api/auth/me", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogout() {
	w := suite.request(http.MethodPost, "/api/auth/logout", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
}
