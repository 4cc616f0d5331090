package handlers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapshift/zapshift-backend/internal/middleware"
	"github.com/zapshift/zapshift-backend/pkg/utils"
	"gorm.io/gorm"
)

func riderRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.GET("/riders", GetRiders(db))
	r.POST("/riders", CreateRider(db))
	r.PATCH("/riders/:id", middleware.AuthMiddleware(), UpdateRiderStatus(db))
	r.DELETE("/riders/:id", middleware.AuthMiddleware(), DeleteRider(db))
	return r
}

func adminToken(t *testing.T) string {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := utils.GenerateToken("admin@zapshift.example.com", "admin")
	require.NoError(t, err)
	return token
}

func TestCreateRiderApplication(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE email = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "riders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	dbMock.ExpectCommit()

	w := performRequest(t, riderRouter(db), "POST", "/riders",
		gin.H{"name": "Ayesha", "email": "a@x.com", "phone": "0170000000", "region": "Dhaka"}, "")

	assert.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateRiderDuplicateEmail(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE email = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "status"}).
			AddRow(5, "a@x.com", "pending"))

	w := performRequest(t, riderRouter(db), "POST", "/riders",
		gin.H{"name": "Ayesha", "email": "a@x.com"}, "")

	assert.Equal(t, 409, w.Code)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGetRidersStatusFilter(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE status = (.+) ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "status"}).
			AddRow(5, "Ayesha", "a@x.com", "pending"))

	w := performRequest(t, riderRouter(db), "GET", "/riders?status=pending", nil, "")

	assert.Equal(t, 200, w.Code)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateRiderStatusRequiresAuth(t *testing.T) {
	db, _ := newTestDB(t)

	w := performRequest(t, riderRouter(db), "PATCH", "/riders/5",
		gin.H{"status": "approved"}, "")

	assert.Equal(t, 401, w.Code)
}

func TestApproveRiderPromotesUser(t *testing.T) {
	db, dbMock := newTestDB(t)
	token := adminToken(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE "riders"."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "status"}).
			AddRow(5, "Ayesha", "a@x.com", "pending"))
	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "riders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	// Role promotion for the matching user
	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	w := performRequest(t, riderRouter(db), "PATCH", "/riders/5",
		gin.H{"status": "approved", "email": "a@x.com"}, token)

	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "approved", body["status"])
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestApproveRiderWithoutMatchingUser(t *testing.T) {
	db, dbMock := newTestDB(t)
	token := adminToken(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE "riders"."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "status"}).
			AddRow(5, "Ayesha", "ghost@x.com", "pending"))
	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "riders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	// No users row matches: the rider update must still succeed
	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	dbMock.ExpectCommit()

	w := performRequest(t, riderRouter(db), "PATCH", "/riders/5",
		gin.H{"status": "approved"}, token)

	assert.Equal(t, 200, w.Code)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRejectRiderSkipsPromotion(t *testing.T) {
	db, dbMock := newTestDB(t)
	token := adminToken(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE "riders"."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "status"}).
			AddRow(5, "Ayesha", "a@x.com", "pending"))
	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "riders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	w := performRequest(t, riderRouter(db), "PATCH", "/riders/5",
		gin.H{"status": "rejected"}, token)

	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "rejected", body["status"])
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestDeleteRiderNotFound(t *testing.T) {
	db, dbMock := newTestDB(t)
	token := adminToken(t)

	dbMock.ExpectQuery(`SELECT \* FROM "riders" WHERE "riders"."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performRequest(t, riderRouter(db), "DELETE", "/riders/99", nil, token)

	assert.Equal(t, 404, w.Code)
}
