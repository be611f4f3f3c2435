package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	jemaat "github.com/gmit-kupang/sensus-jemaat/internal/jemaat/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/models"
)

type DashboardService struct {
	DB *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// GetDashboardData mengumpulkan angka sensus dalam rentang tanggal.
// lingkungan kosong berarti semua lingkungan; start dan end inklusif.
func (svc *DashboardService) GetDashboardData(ctx context.Context, lingkungan string, start, end time.Time) (models.DashboardData, error) {
	var d models.DashboardData
	// extend end to end of day
	end = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)

	where := " WHERE created_at BETWEEN ? AND ?"
	base := []interface{}{start, end}
	if lingkungan != "" {
		where += " AND lingkungan = ?"
		base = append(base, lingkungan)
	}

	countQuery := func(status string) (int, error) {
		q := "SELECT COUNT(*) FROM congregants" + where
		params := append([]interface{}{}, base...)
		if status != "" {
			q += " AND status = ?"
			params = append(params, status)
		}
		var cnt int
		if err := svc.DB.QueryRowContext(ctx, q, params...).Scan(&cnt); err != nil {
			return 0, err
		}
		return cnt, nil
	}

	var err error
	if d.TotalKeluarga, err = countQuery(""); err != nil {
		return d, fmt.Errorf("hitung total: %w", err)
	}
	if d.Diterima, err = countQuery(jemaat.StatusDiterima); err != nil {
		return d, fmt.Errorf("hitung diterima: %w", err)
	}
	if d.Diverifikasi, err = countQuery(jemaat.StatusDiverifikasi); err != nil {
		return d, fmt.Errorf("hitung diverifikasi: %w", err)
	}

	if d.PerLingkungan, err = svc.groupCount(ctx, "lingkungan", where, base); err != nil {
		return d, fmt.Errorf("per lingkungan: %w", err)
	}
	if d.PerRayon, err = svc.groupCount(ctx, "rayon", where, base); err != nil {
		return d, fmt.Errorf("per rayon: %w", err)
	}

	rows, err := svc.DB.QueryContext(ctx,
		"SELECT DATE_FORMAT(created_at, '%Y-%m-%d') AS period, COUNT(*) FROM congregants"+where+
			" GROUP BY period ORDER BY period", base...)
	if err != nil {
		return d, fmt.Errorf("pendaftaran harian: %w", err)
	}
	defer rows.Close()
	d.PendaftaranHarian = []models.TimeCount{}
	for rows.Next() {
		var tc models.TimeCount
		if err := rows.Scan(&tc.Period, &tc.Count); err != nil {
			return d, err
		}
		d.PendaftaranHarian = append(d.PendaftaranHarian, tc)
	}
	return d, rows.Err()
}

// column hanya "lingkungan" atau "rayon".
func (svc *DashboardService) groupCount(ctx context.Context, column, where string, params []interface{}) ([]models.GroupCount, error) {
	q := fmt.Sprintf("SELECT %[1]s, COUNT(*) FROM congregants%[2]s GROUP BY %[1]s ORDER BY %[1]s", column, where)
	rows, err := svc.DB.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.GroupCount{}
	for rows.Next() {
		var gc models.GroupCount
		if err := rows.Scan(&gc.Name, &gc.Count); err != nil {
			return nil, err
		}
		out = append(out, gc)
	}
	return out, rows.Err()
}
