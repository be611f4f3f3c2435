package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gmit-kupang/sensus-jemaat/internal/manajemen/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AdminService struct {
	DB *sql.DB
}

func NewAdminService(db *sql.DB) *AdminService {
	return &AdminService{DB: db}
}

// AuthenticateAdmin memvalidasi login admin.
func (s *AdminService) AuthenticateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	var a models.Admin
	query := "SELECT id, username, password, nama, role FROM admins WHERE username = ?"
	err := s.DB.QueryRowContext(ctx, query, username).Scan(&a.ID, &a.Username, &a.Password, &a.Nama, &a.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &a, nil
}

// CreateAdmin menambah admin baru dengan password yang di-hash bcrypt.
func (s *AdminService) CreateAdmin(ctx context.Context, username, nama, password, role string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("gagal hash password: %w", err)
	}
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO admins (username, password, nama, role) VALUES (?, ?, ?, ?)",
		username, string(hash), nama, role)
	if err != nil {
		return 0, fmt.Errorf("gagal menambah admin: %w", err)
	}
	return res.LastInsertId()
}
