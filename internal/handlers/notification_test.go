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

func expectNotificationRow(mock sqlmock.Sqlmock, id, userID uint, isRead bool) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "notifications"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "type", "title", "is_read"}).
			AddRow(id, userID, types.NotificationTypeMessage, "New message", isRead))
}

func TestMarkNotificationRead(t *testing.T) {
	mock := setupMockDB(t)
	expectNotificationRow(mock, 4, 7, false)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/notifications/4/read", nil)
	ctx.Params = gin.Params{{Key: "notification_id", Value: "4"}}
	asUser(ctx, 7, types.RoleClient)

	MarkNotificationRead(ctx)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationOfAnotherUserIsInvisible(t *testing.T) {
	mock := setupMockDB(t)
	expectNotificationRow(mock, 4, 9, false)

	ctx, recorder := newTestContext(t, http.MethodPatch, "/api/notifications/4/read", nil)
	ctx.Params = gin.Params{{Key: "notification_id", Value: "4"}}
	asUser(ctx, 7, types.RoleClient)

	MarkNotificationRead(ctx)

	// Existence is not leaked to non-recipients.
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationFeedIsPersonalEvenForAdmins(t *testing.T) {
	mock := setupMockDB(t)
	expectNotificationRow(mock, 4, 9, false)

	ctx, recorder := newTestContext(t, http.MethodDelete, "/api/notifications/4", nil)
	ctx.Params = gin.Params{{Key: "notification_id", Value: "4"}}
	asUser(ctx, 1, types.RoleAdmin)

	DeleteNotification(ctx)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
