package controllers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/services"
)

func dashboard(t *testing.T, query string, expect func(sqlmock.Sqlmock)) *httptest.ResponseRecorder {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	if expect != nil {
		expect(mock)
	}

	e := echo.New()
	e.GET("/api/admin/dashboard", NewDashboardController(services.NewDashboardService(db)).GetDashboard)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/dashboard"+query, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.NoError(t, mock.ExpectationsWereMet())
	return rec
}

func TestGetDashboard_BadRange(t *testing.T) {
	for _, q := range []string{
		"?rentang_awal=2026-10-01",
		"?rentang_akhir=99/99/2026",
		"?rentang_awal=05/10/2026&rentang_akhir=01/10/2026",
	} {
		rec := dashboard(t, q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGetDashboard_OK(t *testing.T) {
	rec := dashboard(t, "?rentang_awal=01/10/2026&rentang_akhir=05/10/2026", func(mock sqlmock.Sqlmock) {
		for i := 0; i < 3; i++ {
			mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM congregants")).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		}
		mock.ExpectQuery("SELECT lingkungan").WillReturnRows(sqlmock.NewRows([]string{"lingkungan", "count"}))
		mock.ExpectQuery("SELECT rayon").WillReturnRows(sqlmock.NewRows([]string{"rayon", "count"}))
		mock.ExpectQuery("SELECT DATE_FORMAT").WillReturnRows(sqlmock.NewRows([]string{"period", "count"}))
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"total_keluarga":1`)
	assert.Contains(t, rec.Body.String(), `"per_lingkungan":[]`)
}
