package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/validation"
	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/testutil"
)

var fixedNow = time.Date(2024, 8, 17, 10, 0, 0, 0, time.UTC)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *CongregantService) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	svc := NewCongregantService(db, zap.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return db, mock, svc
}

func TestCreateCongregant(t *testing.T) {
	_, mock, svc := setupMockDB(t)
	f := testutil.ValidForm()
	payload, err := json.Marshal(f)
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO congregants")).
		WithArgs("Yohanis Benu", f.KKNumber, f.NIK, "Lingkungan 2", "Rayon 5", models.StatusDiterima, payload, fixedNow).
		WillReturnResult(sqlmock.NewResult(12, 1))

	id, err := svc.CreateCongregant(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCongregant_RejectsInvalidForm(t *testing.T) {
	_, mock, svc := setupMockDB(t)
	f := testutil.ValidForm()
	f.NIK = "123"

	_, err := svc.CreateCongregant(context.Background(), f)
	var v *validation.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "nik", v.Field)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCongregant_DBError(t *testing.T) {
	_, mock, svc := setupMockDB(t)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO congregants")).WillReturnError(errors.New("deadlock"))

	_, err := svc.CreateCongregant(context.Background(), testutil.ValidForm())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock")
}

func TestGetStatus(t *testing.T) {
	_, mock, svc := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, head_of_family_name, status, created_at FROM congregants WHERE id = ?")).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "head_of_family_name", "status", "created_at"}).
			AddRow(12, "Yohanis Benu", models.StatusDiterima, fixedNow))

	st, err := svc.GetStatus(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, "Yohanis Benu", st.HeadOfFamilyName)
	assert.Equal(t, models.StatusDiterima, st.Status)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, head_of_family_name")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "head_of_family_name", "status", "created_at"}))
	_, err = svc.GetStatus(context.Background(), 99)
	assert.ErrorIs(t, err, ErrCongregantNotFound)
}

func TestGetForm(t *testing.T) {
	_, mock, svc := setupMockDB(t)
	f := testutil.ValidForm()
	payload, err := json.Marshal(f)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM congregants WHERE id = ?")).
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	got, err := svc.GetForm(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestList(t *testing.T) {
	_, mock, svc := setupMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM congregants WHERE lingkungan = ? AND (LOWER(head_of_family_name) LIKE ? OR nik LIKE ?)")).
		WithArgs("Lingkungan 2", "%benu%", "%benu%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id DESC LIMIT 10 OFFSET 10")).
		WithArgs("Lingkungan 2", "%benu%", "%benu%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "head_of_family_name", "kk_number", "nik", "lingkungan", "rayon", "status", "created_at"}).
			AddRow(11, "Yohanis Benu", "5371010101010001", "5371011203800001", "Lingkungan 2", "Rayon 5", models.StatusDiterima, fixedNow))

	list, total, err := svc.List(context.Background(), models.ListFilter{Lingkungan: "Lingkungan 2", Q: "Benu"}, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, list, 1)
	assert.Equal(t, int64(11), list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	_, mock, svc := setupMockDB(t)
	query := regexp.QuoteMeta("UPDATE congregants SET status = ? WHERE id = ?")

	mock.ExpectExec(query).WithArgs(models.StatusDiverifikasi, int64(4)).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, svc.UpdateStatus(context.Background(), 4, models.StatusDiverifikasi))

	mock.ExpectExec(query).WithArgs(models.StatusDiverifikasi, int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 5, models.StatusDiverifikasi), ErrCongregantNotFound)

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), 4, "ditolak"), ErrInvalidStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
