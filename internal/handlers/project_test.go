package handlers

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectProjectRow(mock sqlmock.Sqlmock, projectID, clientID uint) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "client_projects"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "status"}).
			AddRow(projectID, clientID, types.ProjectStatusInProgress))
}

func TestListProjectsScopedToClient(t *testing.T) {
	mock := setupMockDB(t)

	// The whole query is pinned so a dropped client_id filter fails the match.
	mock.ExpectQuery("^" + regexp.QuoteMeta(`SELECT * FROM "client_projects" WHERE client_id = $1 AND "client_projects"."deleted_at" IS NULL ORDER BY created_at DESC`) + "$").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "project_name", "status"}).
			AddRow(3, 7, "Site build", types.ProjectStatusInProgress).
			AddRow(4, 7, "Brand refresh", types.ProjectStatusInquiry))

	ctx, recorder := newTestContext(t, http.MethodGet, "/api/projects", nil)
	asUser(ctx, 7, types.RoleClient)

	ListProjects(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["count"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProjectsAdminSeesAllClients(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery("^" + regexp.QuoteMeta(`SELECT * FROM "client_projects" WHERE "client_projects"."deleted_at" IS NULL ORDER BY created_at DESC`) + "$").
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "project_name", "status"}).
			AddRow(3, 7, "Site build", types.ProjectStatusInProgress).
			AddRow(5, 8, "Shop setup", types.ProjectStatusCompleted))

	ctx, recorder := newTestContext(t, http.MethodGet, "/api/projects", nil)
	asUser(ctx, 1, types.RoleAdmin)

	ListProjects(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["count"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProjectsUnauthenticated(t *testing.T) {
	mock := setupMockDB(t)

	ctx, recorder := newTestContext(t, http.MethodGet, "/api/projects", nil)

	ListProjects(ctx)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProjectUnauthenticated(t *testing.T) {
	mock := setupMockDB(t)

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects", gin.H{
		"client_id":    7,
		"project_name": "Site build",
		"service_type": "Web Development",
	})

	CreateProject(ctx)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProjectDeniedForClient(t *testing.T) {
	mock := setupMockDB(t)

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects", gin.H{
		"client_id":    7,
		"project_name": "Site build",
		"service_type": "Web Development",
	})
	asUser(ctx, 7, types.RoleClient)

	CreateProject(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectRejectsOutOfRangeProgress(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/projects/3", gin.H{
		"progress_percentage": 150,
	})
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 1, types.RoleAdmin)

	UpdateProject(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "Progress percentage must be between 0 and 100", body["message"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectRejectsNegativeBudget(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/projects/3", gin.H{
		"budget": -100.0,
	})
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 1, types.RoleAdmin)

	UpdateProject(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProjectDeniedForClient(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/projects/3", gin.H{
		"project_name": "Renamed",
	})
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 7, types.RoleClient)

	UpdateProject(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMilestoneStatusCompletionStampsDate(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "milestones"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "position", "status"}).
			AddRow(9, 3, "Design", 1, types.MilestoneStatusInProgress))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "milestones" SET "completed_date"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// current_milestone refresh finds the next open milestone.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "milestones"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "position", "status"}).
			AddRow(10, 3, "Build", 2, types.MilestoneStatusNotStarted))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "client_projects"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/projects/3/milestones/9", gin.H{
		"status": types.MilestoneStatusCompleted,
	})
	ctx.Params = gin.Params{
		{Key: "project_id", Value: "3"},
		{Key: "milestone_id", Value: "9"},
	}
	asUser(ctx, 1, types.RoleAdmin)

	UpdateMilestoneStatus(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})

	assert.Equal(t, types.MilestoneStatusCompleted, data["status"])
	assert.NotNil(t, data["completed_date"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMilestoneStatusRevertKeepsStamp(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "milestones"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "position", "status"}).
			AddRow(9, 3, "Design", 1, types.MilestoneStatusCompleted))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "milestones" SET "status"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "milestones"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "project_id", "name", "position", "status"}).
			AddRow(9, 3, "Design", 1, types.MilestoneStatusInProgress))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "client_projects"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/projects/3/milestones/9", gin.H{
		"status": types.MilestoneStatusInProgress,
	})
	ctx.Params = gin.Params{
		{Key: "project_id", Value: "3"},
		{Key: "milestone_id", Value: "9"},
	}
	asUser(ctx, 1, types.RoleAdmin)

	UpdateMilestoneStatus(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMilestoneStatusRejectsUnknownStatus(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/projects/3/milestones/9", gin.H{
		"status": "almost-done",
	})
	ctx.Params = gin.Params{
		{Key: "project_id", Value: "3"},
		{Key: "milestone_id", Value: "9"},
	}
	asUser(ctx, 1, types.RoleAdmin)

	UpdateMilestoneStatus(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
