// Package lookup menyediakan tabel statis untuk pilihan pada langkah 1:
// lingkungan → rayon dan kota → kecamatan → kelurahan.
package lookup

import "sort"

// Lingkungan memetakan nama lingkungan ke daftar rayon di dalamnya.
var Lingkungan = map[string][]string{
	"Lingkungan 1": {"Rayon 1", "Rayon 2", "Rayon 3"},
	"Lingkungan 2": {"Rayon 4", "Rayon 5", "Rayon 6"},
	"Lingkungan 3": {"Rayon 7", "Rayon 8"},
	"Lingkungan 4": {"Rayon 9", "Rayon 10", "Rayon 11"},
	"Lingkungan 5": {"Rayon 12", "Rayon 13"},
	"Lingkungan 6": {"Rayon 14", "Rayon 15", "Rayon 16"},
}

// Wilayah memetakan kota → kecamatan → kelurahan.
var Wilayah = map[string]map[string][]string{
	"Kota Kupang": {
		"Alak":        {"Alak", "Batuplat", "Fatufeto", "Manulai II", "Manutapen", "Mantasi", "Namosain", "Naioni", "Nunbaun Delha", "Nunbaun Sabu", "Nunhila", "Penkase Oeleta"},
		"Kelapa Lima": {"Kelapa Lima", "Lasiana", "Oesapa", "Oesapa Barat", "Oesapa Selatan"},
		"Kota Lama":   {"Airmata", "Bonipoi", "Fontein", "LLBK", "Merdeka", "Nefonaek", "Oeba", "Pasir Panjang", "Solor", "Tode Kisar"},
		"Kota Raja":   {"Airnona", "Bakunase", "Bakunase II", "Fontein", "Kuanino", "Naikoten I", "Naikoten II", "Nunleu"},
		"Maulafa":     {"Belo", "Fatukoa", "Kolhua", "Maulafa", "Naikolan", "Naimata", "Oepura", "Penfui", "Sikumana"},
		"Oebobo":      {"Fatululi", "Kayu Putih", "Liliba", "Oebobo", "Oebufu", "Oetete", "Tuak Daun Merah"},
	},
	"Kabupaten Kupang": {
		"Kupang Barat":  {"Bolok", "Kuanheun", "Oematnunu", "Tesabela"},
		"Kupang Tengah": {"Noelbaki", "Oelnasi", "Penfui Timur", "Tarus"},
		"Kupang Timur":  {"Babau", "Naibonat", "Oefafi", "Oesao"},
	},
}

// Rayons mengembalikan rayon milik lingkungan; nil bila tidak dikenal.
func Rayons(lingkungan string) []string {
	return Lingkungan[lingkungan]
}

// LingkunganNames mengembalikan nama lingkungan terurut.
func LingkunganNames() []string {
	return sortedKeys(Lingkungan)
}

// Cities mengembalikan nama kota terurut.
func Cities() []string {
	return sortedKeys(Wilayah)
}

// Districts mengembalikan kecamatan di kota tersebut, terurut.
func Districts(city string) []string {
	return sortedKeys(Wilayah[city])
}

// Subdistricts mengembalikan kelurahan di kecamatan tersebut.
func Subdistricts(city, district string) []string {
	return Wilayah[city][district]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
