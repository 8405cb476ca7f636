package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
)

func (suite *HandlerTestSuite) logHours(owner *models.User, date string, hours float64) dto.HourLogDTO {
	w := suite.request(http.MethodPost, "/api/hours", owner, map[string]interface{}{
		"date":        date,
		"hours":       hours,
		"description": "Pairing",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var log dto.HourLogDTO
	suite.decode(w, &log)
	return log
}

func (suite *HandlerTestSuite) TestCreateHourLog_Validation() {
	w := suite.request(http.MethodPost, "/api/hours", suite.alice, map[string]interface{}{
		"date":        "2025-01-06",
		"hours":       0,
		"description": "Nothing",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)

	w = suite.request(http.MethodPost, "/api/hours", suite.alice, map[string]interface{}{
		"hours":       2,
		"description": "No date",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)

	w = suite.request(http.MethodPost, "/api/hours", suite.alice, map[string]interface{}{
		"date":        "next tuesday",
		"hours":       2,
		"description": "Bad date",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

func (suite *HandlerTestSuite) TestListHourLogsInRange_Inclusive() {
	suite.logHours(suite.alice, "2025-01-05", 1)
	suite.logHours(suite.alice, "2025-01-06", 2)
	suite.logHours(suite.alice, "2025-01-12", 3)
	suite.logHours(suite.alice, "2025-01-13", 4)
	suite.logHours(suite.bob, "2025-01-08", 5)

	w := suite.request(http.MethodGet, "/api/hours/range?startDate=2025-01-06&endDate=2025-01-12", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var logs []dto.HourLogDTO
	suite.decode(w, &logs)
	suite.Require().Len(logs, 2)
	suite.Equal(2.0, logs[0].Hours)
	suite.Equal(3.0, logs[1].Hours)
}

func (suite *HandlerTestSuite) TestListHourLogsInRange_MissingBound() {
	w := suite.request(http.MethodGet, "/api/hours/range?startDate=2025-01-06", suite.alice, nil)
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)
}

func (suite *HandlerTestSuite) TestUpdateHourLog() {
	log := suite.logHours(suite.alice, "2025-01-06", 2)
	path := fmt.Sprintf("/api/hours/%d", log.ID)

	w := suite.request(http.MethodPut, path, suite.manager, map[string]interface{}{"hours": 8})
	suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)

	w = suite.request(http.MethodPut, path, suite.alice, map[string]interface{}{"hours": 6.5})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated dto.HourLogDTO
	suite.decode(w, &updated)
	suite.Equal(6.5, updated.Hours)
	suite.Equal("Pairing", updated.Description)
}

func (suite *HandlerTestSuite) TestDeleteHourLog() {
	log := suite.logHours(suite.alice, "2025-01-06", 2)
	path := fmt.Sprintf("/api/hours/%d", log.ID)

	suite.requireError(suite.request(http.MethodDelete, path, suite.bob, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)
	suite.Equal(http.StatusOK, suite.request(http.MethodDelete, path, suite.alice, nil).Code)
}
