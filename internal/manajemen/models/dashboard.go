package models

// DashboardData adalah ringkasan sensus untuk dashboard pengurus.
type DashboardData struct {
	TotalKeluarga     int          `json:"total_keluarga"`
	Diterima          int          `json:"diterima"`
	Diverifikasi      int          `json:"diverifikasi"`
	PerLingkungan     []GroupCount `json:"per_lingkungan"`
	PerRayon          []GroupCount `json:"per_rayon"`
	PendaftaranHarian []TimeCount  `json:"pendaftaran_harian"`
}

type GroupCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type TimeCount struct {
	Period string `json:"period"`
	Count  int    `json:"count"`
}
