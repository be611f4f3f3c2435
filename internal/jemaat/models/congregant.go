package models

import "time"

// Status pendaftaran jemaat.
const (
	StatusDiterima     = "diterima"
	StatusDiverifikasi = "diverifikasi"
)

// Congregant adalah ringkasan satu keluarga yang sudah mendaftar.
type Congregant struct {
	ID               int64     `json:"id"`
	HeadOfFamilyName string    `json:"head_of_family_name"`
	KKNumber         string    `json:"kk_number"`
	NIK              string    `json:"nik"`
	Lingkungan       string    `json:"lingkungan"`
	Rayon            string    `json:"rayon"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// RegistrationStatus dipakai alur "cek status" di halaman publik.
type RegistrationStatus struct {
	ID               int64     `json:"id"`
	HeadOfFamilyName string    `json:"head_of_family_name"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ListFilter menyaring daftar jemaat untuk admin.
type ListFilter struct {
	Lingkungan string
	Rayon      string
	Q          string
}
