package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/services"
	"github.com/gmit-kupang/sensus-jemaat/internal/testutil"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*echo.Echo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cc := NewCongregantController(services.NewCongregantService(db, zap.NewNop()))
	e := echo.New()
	e.POST("/api/congregants", cc.CreateCongregant)
	e.GET("/api/congregants/:id/status", cc.GetStatus)
	e.GET("/api/congregants", cc.ListCongregants)
	e.PUT("/api/congregants/:id/status", cc.UpdateStatus)
	return e, mock
}

func serve(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func TestCreateCongregant_Created(t *testing.T) {
	e, mock := setup(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO congregants")).WillReturnResult(sqlmock.NewResult(31, 1))

	body, err := json.Marshal(testutil.ValidForm())
	require.NoError(t, err)
	rec, env := serve(e, http.MethodPost, "/api/congregants", string(body))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":31}`, string(env.Data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCongregant_Unprocessable(t *testing.T) {
	e, _ := setup(t)
	f := testutil.ValidForm()
	f.FamilyMembersMale = "3"
	body, err := json.Marshal(f)
	require.NoError(t, err)

	rec, env := serve(e, http.MethodPost, "/api/congregants", string(body))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var v struct {
		Step  int    `json:"step"`
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.Equal(t, 2, v.Step)
	assert.Equal(t, "familyMembers", v.Field)
}

func TestCreateCongregant_BadJSON(t *testing.T) {
	e, _ := setup(t)
	rec, _ := serve(e, http.MethodPost, "/api/congregants", `{"nik":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetStatus(t *testing.T) {
	e, mock := setup(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM congregants WHERE id = ?")).
		WithArgs(int64(31)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "head_of_family_name", "status", "created_at"}).
			AddRow(31, "Yohanis Benu", models.StatusDiterima, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM congregants WHERE id = ?")).
		WithArgs(int64(32)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "head_of_family_name", "status", "created_at"}))

	rec, env := serve(e, http.MethodGet, "/api/congregants/31/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Yohanis Benu")

	rec, _ = serve(e, http.MethodGet, "/api/congregants/32/status", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = serve(e, http.MethodGet, "/api/congregants/abc/status", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCongregants(t *testing.T) {
	e, mock := setup(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM congregants")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT 20 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "head_of_family_name", "kk_number", "nik", "lingkungan", "rayon", "status", "created_at"}))

	rec, env := serve(e, http.MethodGet, "/api/congregants", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"list":[],"total":0,"page":1,"per_page":20}`, string(env.Data))
}

func TestUpdateStatus(t *testing.T) {
	e, mock := setup(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE congregants SET status = ? WHERE id = ?")).
		WithArgs(models.StatusDiverifikasi, int64(31)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, env := serve(e, http.MethodPut, "/api/congregants/31/status", `{"status":"diverifikasi"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "diverifikasi")

	rec, _ = serve(e, http.MethodPut, "/api/congregants/31/status", `{"status":"ditolak"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = serve(e, http.MethodPut, "/api/congregants/0/status", `{"status":"diverifikasi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
