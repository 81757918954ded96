package controllers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restaurantTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("/api/my/restaurant", identityStub(42, "auth0|abc"))
	g.GET("", GetMyRestaurant)
	g.POST("", CreateMyRestaurant)
	g.PUT("", UpdateMyRestaurant)
	return r
}

func restaurantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "restaurant_name", "city", "country",
		"delivery_price", "estimated_delivery_time", "cuisines", "image_url", "last_updated",
	})
}

func menuItemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "restaurant_id", "name", "price"})
}

func restaurantFormBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func restaurantFormBodyWithFile(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("imageFile", "restaurant.jpg")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return buf, mw.FormDataContentType()
}

func stubUploader(t *testing.T, fn func(context.Context, *multipart.FileHeader, string) (string, error)) {
	orig := uploadImage
	uploadImage = fn
	t.Cleanup(func() { uploadImage = orig })
}

func createForm() map[string]string {
	return map[string]string{
		"restaurantName":        "Trattoria",
		"city":                  "Lisbon",
		"country":               "Portugal",
		"deliveryPrice":         "2.5",
		"estimatedDeliveryTime": "30",
		"cuisines":              `["italian"]`,
	}
}

func TestGetMyRestaurant_NotFound(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my/restaurant", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Restaurant not found"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMyRestaurant_Found(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).
		WillReturnRows(restaurantRows().
			AddRow(7, 42, "Trattoria", "Lisbon", "Portugal", 2.5, 30, "{italian,pasta}", "http://cdn.example/r.jpg", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "menu_items"`).
		WillReturnRows(menuItemRows().AddRow(1, 7, "Carbonara", 12.5))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/my/restaurant", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"restaurantName":"Trattoria"`)
	assert.Contains(t, w.Body.String(), `"Carbonara"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMyRestaurant_SecondCreateConflicts(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	// Existence check fires first: a duplicate attempt is rejected before any
	// form parsing or image upload happens.
	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).
		WillReturnRows(restaurantRows().
			AddRow(7, 42, "Trattoria", "Lisbon", "Portugal", 2.5, 30, "{italian}", "http://cdn.example/r.jpg", time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "menu_items"`).
		WillReturnRows(menuItemRows())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/my/restaurant", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"User restaurant already exists"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMyRestaurant_Persists(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	stubUploader(t, func(context.Context, *multipart.FileHeader, string) (string, error) {
		return "http://cdn.example/new.jpg", nil
	})

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())
	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "restaurants"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	body, contentType := restaurantFormBodyWithFile(t, createForm())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/my/restaurant", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"restaurantName":"Trattoria"`)
	assert.Contains(t, w.Body.String(), `"imageUrl":"http://cdn.example/new.jpg"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A failing media store fails the whole creation; no restaurant row is written.
func TestCreateMyRestaurant_UploadFailure_NothingPersisted(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	stubUploader(t, func(context.Context, *multipart.FileHeader, string) (string, error) {
		return "", errors.New("media store unavailable")
	})

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())

	body, contentType := restaurantFormBodyWithFile(t, createForm())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/my/restaurant", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Error creating restaurant"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Both of two concurrent creates can pass the existence checks; the loser hits
// the user_id unique index and gets the same conflict answer.
func TestCreateMyRestaurant_LostRace_Conflicts(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	stubUploader(t, func(context.Context, *multipart.FileHeader, string) (string, error) {
		return "http://cdn.example/new.jpg", nil
	})

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())
	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "restaurants"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	body, contentType := restaurantFormBodyWithFile(t, createForm())
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/my/restaurant", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"message":"User restaurant already exists"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMyRestaurant_NotFound(t *testing.T) {
	mock := setupMockDB(t)
	r := restaurantTestRouter()

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).WillReturnRows(restaurantRows())

	body, contentType := restaurantFormBody(t, map[string]string{
		"restaurantName":        "Trattoria",
		"city":                  "Lisbon",
		"country":               "Portugal",
		"deliveryPrice":         "2.5",
		"estimatedDeliveryTime": "30",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/my/restaurant", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Restaurant not found"}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMyRestaurant_NoFilePreservesImageURL(t *testing.T) {
	mock := setupMockDB(t)
	mock.MatchExpectationsInOrder(false)
	r := restaurantTestRouter()

	mock.ExpectQuery(`SELECT \* FROM "restaurants"`).
		WillReturnRows(restaurantRows().
			AddRow(7, 42, "Old Name", "Porto", "Portugal", 1.0, 45, "{italian}", "http://cdn.example/old.jpg", time.Now().Add(-time.Hour)))
	mock.ExpectQuery(`SELECT \* FROM "menu_items"`).
		WillReturnRows(menuItemRows().AddRow(1, 7, "Old Dish", 9.0))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "menu_items" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "restaurants" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "menu_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	body, contentType := restaurantFormBody(t, map[string]string{
		"restaurantName":        "New Name",
		"city":                  "Lisbon",
		"country":               "Portugal",
		"deliveryPrice":         "3.5",
		"estimatedDeliveryTime": "25",
		"cuisines":              `["italian","seafood"]`,
		"menuItems":             `[{"name":"New Dish","price":14.0}]`,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/my/restaurant", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"restaurantName":"New Name"`)
	assert.Contains(t, w.Body.String(), `"New Dish"`)
	// No new file attached: the stored image URL survives the update.
	assert.Contains(t, w.Body.String(), `"imageUrl":"http://cdn.example/old.jpg"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
