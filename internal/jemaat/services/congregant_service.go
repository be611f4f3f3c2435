package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	commonModels "github.com/gmit-kupang/sensus-jemaat/internal/common/models"
	formModels "github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/validation"
	"github.com/gmit-kupang/sensus-jemaat/internal/jemaat/models"
)

var (
	ErrCongregantNotFound = errors.New("data jemaat tidak ditemukan")
	ErrInvalidStatus      = errors.New("status pendaftaran tidak dikenal")
)

type CongregantService struct {
	DB     *sql.DB
	Logger *zap.Logger
	now    func() time.Time
}

func NewCongregantService(db *sql.DB, logger *zap.Logger) *CongregantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CongregantService{DB: db, Logger: logger, now: time.Now}
}

// CreateCongregant memvalidasi ulang seluruh langkah lalu menyimpan formulir
// utuh sebagai JSON. Pelanggaran dikembalikan sebagai *validation.Violation.
func (s *CongregantService) CreateCongregant(ctx context.Context, f *formModels.FormAggregate) (int64, error) {
	if v := validation.ValidateAll(f); v != nil {
		return 0, v
	}

	payload, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("gagal serialisasi formulir: %w", err)
	}

	query := `
		INSERT INTO congregants (head_of_family_name, kk_number, nik, lingkungan, rayon, status, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.DB.ExecContext(ctx, query,
		strings.TrimSpace(f.HeadOfFamilyName), f.KKNumber, f.NIK, f.Lingkungan, f.Rayon,
		models.StatusDiterima, payload, s.now())
	if err != nil {
		return 0, fmt.Errorf("gagal menyimpan data jemaat: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("gagal membaca id jemaat: %w", err)
	}

	s.Logger.Info("jemaat terdaftar",
		zap.Int64("id", id),
		zap.String("lingkungan", f.Lingkungan),
		zap.String("rayon", f.Rayon),
	)
	return id, nil
}

// GetStatus mengembalikan status pendaftaran untuk alur "cek status".
func (s *CongregantService) GetStatus(ctx context.Context, id int64) (*models.RegistrationStatus, error) {
	var st models.RegistrationStatus
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, head_of_family_name, status, created_at FROM congregants WHERE id = ?", id,
	).Scan(&st.ID, &st.HeadOfFamilyName, &st.Status, &st.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCongregantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return &st, nil
}

// GetForm mengembalikan formulir lengkap yang tersimpan.
func (s *CongregantService) GetForm(ctx context.Context, id int64) (*formModels.FormAggregate, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, "SELECT payload FROM congregants WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCongregantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	f := formModels.NewFormAggregate()
	if err := json.Unmarshal(payload, f); err != nil {
		return nil, fmt.Errorf("payload jemaat %d rusak: %w", id, err)
	}
	f.Normalize()
	return f, nil
}

// List mengembalikan daftar jemaat berhalaman untuk admin.
func (s *CongregantService) List(ctx context.Context, filter models.ListFilter, page, perPage int) ([]models.Congregant, int, error) {
	_, perPage, offset := commonModels.NormalizePage(page, perPage)

	conds := []string{}
	params := []interface{}{}
	if filter.Lingkungan != "" {
		conds = append(conds, "lingkungan = ?")
		params = append(params, filter.Lingkungan)
	}
	if filter.Rayon != "" {
		conds = append(conds, "rayon = ?")
		params = append(params, filter.Rayon)
	}
	if filter.Q != "" {
		conds = append(conds, "(LOWER(head_of_family_name) LIKE ? OR nik LIKE ?)")
		like := "%" + strings.ToLower(filter.Q) + "%"
		params = append(params, like, like)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM congregants"+where, params...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count error: %w", err)
	}

	query := "SELECT id, head_of_family_name, kk_number, nik, lingkungan, rayon, status, created_at FROM congregants" +
		where + fmt.Sprintf(" ORDER BY id DESC LIMIT %d OFFSET %d", perPage, offset)
	rows, err := s.DB.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	list := []models.Congregant{}
	for rows.Next() {
		var c models.Congregant
		if err := rows.Scan(&c.ID, &c.HeadOfFamilyName, &c.KKNumber, &c.NIK, &c.Lingkungan, &c.Rayon, &c.Status, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan error: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return list, total, nil
}

// UpdateStatus mengubah status pendaftaran, misalnya setelah diverifikasi majelis.
func (s *CongregantService) UpdateStatus(ctx context.Context, id int64, status string) error {
	if status != models.StatusDiterima && status != models.StatusDiverifikasi {
		return ErrInvalidStatus
	}
	res, err := s.DB.ExecContext(ctx, "UPDATE congregants SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("gagal mengubah status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("gagal membaca hasil update: %w", err)
	}
	if affected == 0 {
		return ErrCongregantNotFound
	}
	s.Logger.Info("status jemaat diubah", zap.Int64("id", id), zap.String("status", status))
	return nil
}
