package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/config"
)

// DSN menyusun data source name dari konfigurasi.
// Format: username:password@tcp(host:port)/dbname?parseTime=true&loc=Asia%2FMakassar
func DSN(cfg *config.Config) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Asia%%2FMakassar&charset=utf8mb4",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// Connect membuka koneksi ke database MariaDB dan memastikan server bisa dijangkau.
func Connect(ctx context.Context, cfg *config.Config, log *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("gagal membuka koneksi ke database: %w", err)
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("gagal melakukan ping ke database: %w", err)
	}

	log.Info("Berhasil terhubung ke MariaDB.", zap.String("host", cfg.DBHost), zap.String("database", cfg.DBName))
	return db, nil
}
