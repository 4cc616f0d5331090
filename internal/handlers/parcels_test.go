package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zapshift/zapshift-backend/internal/models"
	"gorm.io/gorm"
)

func parcelRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.GET("/parcels", GetParcels(db))
	r.POST("/parcels", CreateParcel(db))
	r.GET("/parcels/:id", GetParcel(db))
	r.DELETE("/parcels/:id", DeleteParcel(db))
	r.GET("/track/:trackingId", TrackParcel(db))
	return r
}

func TestCreateParcelStartsUnpaid(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery(`INSERT INTO "parcels"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	dbMock.ExpectCommit()

	w := performRequest(t, parcelRouter(db), "POST", "/parcels", gin.H{
		"name":        "Books",
		"type":        "non-document",
		"senderEmail": "a@x.com",
		"cost":        120.5,
	}, "")

	assert.Equal(t, 201, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "unpaid", body["paymentStatus"])
	assert.Nil(t, body["trackingId"])
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateParcelRejectsZeroCost(t *testing.T) {
	db, _ := newTestDB(t)

	w := performRequest(t, parcelRouter(db), "POST", "/parcels", gin.H{
		"name":        "Books",
		"type":        "document",
		"senderEmail": "a@x.com",
		"cost":        0,
	}, "")

	assert.Equal(t, 400, w.Code)
}

func TestGetParcelsSenderFilterNewestFirst(t *testing.T) {
	db, dbMock := newTestDB(t)

	newer := time.Now()
	older := newer.Add(-time.Hour)

	// The filter and ordering live in the query itself
	dbMock.ExpectQuery(`SELECT \* FROM "parcels" WHERE sender_email = (.+) ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sender_email", "created_at"}).
			AddRow(2, "Laptop", "a@x.com", newer).
			AddRow(1, "Books", "a@x.com", older))

	w := performRequest(t, parcelRouter(db), "GET", "/parcels?email=a@x.com", nil, "")

	assert.Equal(t, 200, w.Code)

	var parcels []models.Parcel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parcels))
	require.Len(t, parcels, 2)
	assert.Equal(t, "Laptop", parcels[0].Name)
	assert.Equal(t, "a@x.com", parcels[0].SenderEmail)
	assert.Equal(t, "a@x.com", parcels[1].SenderEmail)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestGetParcelNotFound(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "parcels" WHERE "parcels"."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performRequest(t, parcelRouter(db), "GET", "/parcels/99", nil, "")

	assert.Equal(t, 404, w.Code)
}

func TestDeleteParcel(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "parcels" WHERE "parcels"."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "sender_email"}).
			AddRow(7, "Books", "a@x.com"))
	dbMock.ExpectBegin()
	dbMock.ExpectExec(`UPDATE "parcels" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectCommit()

	w := performRequest(t, parcelRouter(db), "DELETE", "/parcels/7", nil, "")

	assert.Equal(t, 200, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["deleted"])
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestTrackParcel(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "parcels" WHERE tracking_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "payment_status", "tracking_id"}).
			AddRow(7, "Books", "paid", "ZAP-A1B2C3D4E5F6"))

	w := performRequest(t, parcelRouter(db), "GET", "/track/ZAP-A1B2C3D4E5F6", nil, "")

	assert.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ZAP-A1B2C3D4E5F6", body["trackingId"])
}

func TestTrackParcelUnknownCode(t *testing.T) {
	db, dbMock := newTestDB(t)

	dbMock.ExpectQuery(`SELECT \* FROM "parcels" WHERE tracking_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := performRequest(t, parcelRouter(db), "GET", "/track/ZAP-000000000000", nil, "")

	assert.Equal(t, 404, w.Code)
}
