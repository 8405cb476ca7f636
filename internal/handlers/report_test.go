package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/worklog-api/internal/dto"
	apierrors "github.com/yukikurage/worklog-api/internal/errors"
	"github.com/yukikurage/worklog-api/internal/models"
)

func (suite *HandlerTestSuite) createReport(owner *models.User, title string) dto.ReportDTO {
	w := suite.request(http.MethodPost, "/api/reports", owner, map[string]string{
		"title":   title,
		"content": "Progress this week",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var report dto.ReportDTO
	suite.decode(w, &report)
	return report
}

func (suite *HandlerTestSuite) TestCreateReport_DefaultsToDraft() {
	report := suite.createReport(suite.alice, "Week 1")

	suite.Equal(models.ReportStatusDraft, report.Status)
	suite.Equal(suite.alice.ID, report.OwnerID)
	suite.Nil(report.SubmittedAt)
	suite.Require().NotNil(report.Owner)
	suite.Equal("Alice", report.Owner.Name)
}

func (suite *HandlerTestSuite) TestCreateReport_MissingFields() {
	w := suite.request(http.MethodPost, "/api/reports", suite.alice, map[string]string{"title": "No content"})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeMissingField)
}

func (suite *HandlerTestSuite) TestListReports_ScopedByRole() {
	suite.createReport(suite.alice, "Alice report")
	suite.createReport(suite.bob, "Bob report")

	w := suite.request(http.MethodGet, "/api/reports", suite.alice, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var own []dto.ReportDTO
	suite.decode(w, &own)
	suite.Require().Len(own, 1)
	suite.Equal(suite.alice.ID, own[0].OwnerID)

	w = suite.request(http.MethodGet, "/api/reports", suite.manager, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var all []dto.ReportDTO
	suite.decode(w, &all)
	suite.Len(all, 2)
	suite.Equal("2", w.Header().Get("X-Total-Count"))
}

func (suite *HandlerTestSuite) TestGetReport_Access() {
	report := suite.createReport(suite.alice, "Week 1")
	path := fmt.Sprintf("/api/reports/%d", report.ID)

	suite.Equal(http.StatusOK, suite.request(http.MethodGet, path, suite.alice, nil).Code)
	suite.Equal(http.StatusOK, suite.request(http.MethodGet, path, suite.manager, nil).Code)
	suite.Equal(http.StatusOK, suite.request(http.MethodGet, path, suite.admin, nil).Code)
	suite.requireError(suite.request(http.MethodGet, path, suite.bob, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)
}

func (suite *HandlerTestSuite) TestSubmitReport() {
	report := suite.createReport(suite.alice, "Week 1")
	path := fmt.Sprintf("/api/reports/%d/submit", report.ID)

	suite.requireError(suite.request(http.MethodPut, path, suite.manager, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)

	w := suite.request(http.MethodPut, path, suite.alice, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var submitted dto.ReportDTO
	suite.decode(w, &submitted)
	suite.Equal(models.ReportStatusSubmitted, submitted.Status)
	suite.NotNil(submitted.SubmittedAt)
}

func (suite *HandlerTestSuite) TestUpdateReport_ManagerApproves() {
	report := suite.createReport(suite.alice, "Week 1")
	path := fmt.Sprintf("/api/reports/%d", report.ID)

	w := suite.request(http.MethodPut, path, suite.manager, map[string]string{"status": "approved"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var approved dto.ReportDTO
	suite.decode(w, &approved)
	suite.Equal(models.ReportStatusApproved, approved.Status)
	suite.Equal(report.Title, approved.Title)
	suite.Equal(report.Content, approved.Content)
}

func (suite *HandlerTestSuite) TestUpdateReport_ManagerCannotEditContent() {
	report := suite.createReport(suite.alice, "Week 1")
	path := fmt.Sprintf("/api/reports/%d", report.ID)

	w := suite.request(http.MethodPut, path, suite.admin, map[string]string{
		"status":  "rejected",
		"content": "rewritten",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidOperation)

	// an unchanged status is not a review either
	w = suite.request(http.MethodPut, path, suite.manager, map[string]string{"status": "draft"})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidOperation)

	var stored models.Report
	suite.Require().NoError(suite.db.First(&stored, report.ID).Error)
	suite.Equal(models.ReportStatusDraft, stored.Status)
	suite.Equal("Progress this week", stored.Content)
}

func (suite *HandlerTestSuite) TestUpdateReport_OtherUserForbidden() {
	report := suite.createReport(suite.alice, "Week 1")

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/reports/%d", report.ID), suite.bob, map[string]string{"status": "approved"})
	suite.requireError(w, http.StatusForbidden, apierrors.ErrCodeForbidden)
}

func (suite *HandlerTestSuite) TestDeleteReport_OwnerOnly() {
	report := suite.createReport(suite.alice, "Week 1")
	path := fmt.Sprintf("/api/reports/%d", report.ID)

	suite.requireError(suite.request(http.MethodDelete, path, suite.admin, nil), http.StatusForbidden, apierrors.ErrCodeForbidden)
	suite.Equal(http.StatusOK, suite.request(http.MethodDelete, path, suite.alice, nil).Code)
	suite.Equal(http.StatusNotFound, suite.request(http.MethodGet, path, suite.alice, nil).Code)
}

func (suite *HandlerTestSuite) TestDraftReport() {
	for _, date := range []string{"2025-01-06", "2025-01-07", "2025-01-20"} {
		w := suite.request(http.MethodPost, "/api/hours", suite.alice, map[string]interface{}{
			"date":        date,
			"hours":       4,
			"description": "API work",
		})
		suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	}

	w := suite.request(http.MethodPost, "/api/reports/draft", suite.alice, map[string]string{
		"start_date": "2025-01-06",
		"end_date":   "2025-01-12",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var report dto.ReportDTO
	suite.decode(w, &report)
	suite.Equal(models.ReportStatusDraft, report.Status)
	suite.Equal("2 hour logs", report.Content)
}

func (suite *HandlerTestSuite) TestDraftReport_EmptyRange() {
	w := suite.request(http.MethodPost, "/api/reports/draft", suite.alice, map[string]string{
		"start_date": "2025-01-06",
		"end_date":   "2025-01-12",
	})
	suite.requireError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}
