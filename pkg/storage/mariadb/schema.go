package mariadb

import (
	"context"
	"database/sql"
	"fmt"
)

// schema berisi tabel yang dibutuhkan layanan, dibuat berurutan.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS congregants (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		head_of_family_name VARCHAR(255) NOT NULL,
		kk_number CHAR(16) NOT NULL,
		nik CHAR(16) NOT NULL,
		lingkungan VARCHAR(64) NOT NULL,
		rayon VARCHAR(64) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'diterima',
		payload JSON NOT NULL,
		created_at DATETIME NOT NULL,
		INDEX idx_congregants_nik (nik),
		INDEX idx_congregants_lingkungan (lingkungan, rayon)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		nama VARCHAR(255) NOT NULL,
		role VARCHAR(32) NOT NULL DEFAULT 'admin',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS form_drafts (
		draft_key VARCHAR(191) PRIMARY KEY,
		payload LONGBLOB NOT NULL,
		updated_at DATETIME NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate membuat tabel yang belum ada.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrasi ke-%d gagal: %w", i+1, err)
		}
	}
	return nil
}
