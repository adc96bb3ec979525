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

func TestMarkMessagesReadOnlyTouchesCounterpartMessages(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	// A client marking the thread read must only flip admin-sent rows.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages"`)).
		WithArgs(true, sqlmock.AnyArg(), 3, types.RoleAdmin, false).
		WillReturnResult(sqlmock.NewResult(0, 2))

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects/3/messages/read", nil)
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 7, types.RoleClient)

	MarkMessagesRead(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	assert.Equal(t, float64(2), body["count"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkMessagesReadAsAdminTargetsClientMessages(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "messages"`)).
		WithArgs(true, sqlmock.AnyArg(), 3, types.RoleClient, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects/3/messages/read", nil)
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 1, types.RoleAdmin)

	MarkMessagesRead(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessageStampsSenderFromRequester(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	// Sender identity comes from the authenticated context, not the payload.
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			3, 7, types.RoleClient, "The draft looks great", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects/3/messages", gin.H{
		"content":   "The draft looks great",
		"sender_id": 999,
	})
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 7, types.RoleClient)

	SendMessage(ctx)

	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})

	assert.Equal(t, float64(7), data["sender_id"])
	assert.Equal(t, types.RoleClient, data["sender_role"])
	assert.Equal(t, "Test User", data["sender_name"])
	assert.Equal(t, false, data["is_read"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessageRequiresContent(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects/3/messages", gin.H{
		"attachments": []string{"/uploads/design/mock.png"},
	})
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 7, types.RoleClient)

	SendMessage(ctx)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendMessageDeniedForNonOwner(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodPost, "/api/projects/3/messages", gin.H{
		"content": "hello",
	})
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}
	asUser(ctx, 8, types.RoleClient)

	SendMessage(ctx)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMessagesUnauthenticated(t *testing.T) {
	mock := setupMockDB(t)
	expectProjectRow(mock, 3, 7)

	ctx, recorder := newTestContext(t, http.MethodGet, "/api/projects/3/messages", nil)
	ctx.Params = gin.Params{{Key: "project_id", Value: "3"}}

	ListMessages(ctx)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
