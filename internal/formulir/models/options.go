package models

// Nilai sentinel yang mengubah field mana saja yang wajib diisi.
const (
	Lainnya  = "Lainnya"
	Ya       = "Ya"
	Tidak    = "Tidak"
	TidakAda = "Tidak Ada"

	// NoAsset adalah pilihan eksklusif pada daftar aset.
	NoAsset = "Tidak ada"

	// Kawin memicu field tanggal dan jenis perkawinan.
	Kawin = "Kawin"

	// TopIncomeBracket membuka sub-rentang pendapatan yang lebih rinci.
	TopIncomeBracket = "> Rp 5.000.000"
)

// AssetLabels adalah daftar aset yang memiliki isian jumlah.
var AssetLabels = []string{
	"Sepeda Motor",
	"Mobil",
	"Kulkas",
	"Televisi",
	"Laptop/Komputer",
	"Perahu",
	"Ternak",
}

// SchoolLevels adalah kunci jenjang sekolah pada blok pendidikan anak.
var SchoolLevels = []string{"tk", "sd", "smp", "sma", "pt"}

// ContributionForms adalah pilihan bentuk kontribusi anggota profesional.
var ContributionForms = []string{
	"Tenaga",
	"Pikiran",
	"Dana",
	"Waktu",
	"Keahlian",
}

// IsAssetLabel melaporkan apakah label termasuk aset yang dikenal.
func IsAssetLabel(label string) bool {
	for _, l := range AssetLabels {
		if l == label {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Contains melaporkan apakah v ada di list (case-sensitive).
func Contains(list []string, v string) bool {
	return contains(list, v)
}
