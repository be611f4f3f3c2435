package models

// DisabilityCategory mengidentifikasi salah satu dari empat jenis disabilitas.
type DisabilityCategory string

const (
	DisabilityPhysical     DisabilityCategory = "physical"
	DisabilityIntellectual DisabilityCategory = "intellectual"
	DisabilityMental       DisabilityCategory = "mental"
	DisabilitySensory      DisabilityCategory = "sensory"
)

// DisabilityCategories dalam urutan tampilan.
var DisabilityCategories = []DisabilityCategory{
	DisabilityPhysical,
	DisabilityIntellectual,
	DisabilityMental,
	DisabilitySensory,
}

// Valid melaporkan apakah kategori dikenal.
func (c DisabilityCategory) Valid() bool {
	for _, k := range DisabilityCategories {
		if k == c {
			return true
		}
	}
	return false
}

// DisabilityCategory mengembalikan pointer ke pilihan dan isian "lainnya"
// untuk kategori cat. Kategori tak dikenal mengembalikan nil.
func (h *Health) DisabilityCategory(cat DisabilityCategory) (*[]string, *string) {
	switch cat {
	case DisabilityPhysical:
		return &h.DisabilityPhysical, &h.DisabilityPhysicalOther
	case DisabilityIntellectual:
		return &h.DisabilityIntellectual, &h.DisabilityIntellectualOther
	case DisabilityMental:
		return &h.DisabilityMental, &h.DisabilityMentalOther
	case DisabilitySensory:
		return &h.DisabilitySensory, &h.DisabilitySensoryOther
	}
	return nil, nil
}

// HasRealSelection melaporkan apakah values memuat pilihan selain sentinel.
func HasRealSelection(values []string, sentinel string) bool {
	for _, v := range values {
		if v != sentinel {
			return true
		}
	}
	return false
}

// ReconcileExclusive menerapkan aturan sentinel eksklusif pada pilihan ganda.
// Jika sentinel baru dipilih, hanya sentinel yang tersisa. Jika sentinel sudah
// dipilih sebelumnya dan ada pilihan nyata baru, sentinel dibuang.
func ReconcileExclusive(prev, next []string, sentinel string) []string {
	hadSentinel := contains(prev, sentinel)
	hasSentinel := contains(next, sentinel)

	switch {
	case hasSentinel && !hadSentinel:
		return []string{sentinel}
	case hasSentinel && hadSentinel && HasRealSelection(next, sentinel):
		out := make([]string, 0, len(next))
		for _, v := range next {
			if v != sentinel {
				out = append(out, v)
			}
		}
		return out
	}
	return dedupe(next)
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// SetAssets mengganti daftar aset sambil menjaga invarian "Tidak ada":
// memilihnya mengosongkan aset lain dan menolkan semua jumlah. Jumlah aset
// yang tidak dipilih selalu "0".
func (e *Economics) SetAssets(next []string) {
	e.Assets = ReconcileExclusive(e.Assets, next, NoAsset)
	e.ZeroUnselectedQuantities()
}

// ToggleAsset memilih atau membatalkan satu label aset.
func (e *Economics) ToggleAsset(label string, selected bool) {
	next := make([]string, 0, len(e.Assets)+1)
	for _, a := range e.Assets {
		if a != label {
			next = append(next, a)
		}
	}
	if selected {
		next = append(next, label)
	} else if IsAssetLabel(label) && e.AssetQuantities != nil {
		e.AssetQuantities[label] = "0"
	}
	e.SetAssets(next)
}

// SetAssetQuantity mengisi jumlah untuk label aset yang dikenal. Aset yang
// tidak dipilih tetap berjumlah "0". false berarti label tidak dikenal.
func (e *Economics) SetAssetQuantity(label string, qty Count) bool {
	if !IsAssetLabel(label) {
		return false
	}
	if e.AssetQuantities == nil {
		e.AssetQuantities = make(map[string]Count, len(AssetLabels))
	}
	if !e.AssetSelected(label) {
		qty = "0"
	}
	e.AssetQuantities[label] = qty
	return true
}

// AssetSelected melaporkan apakah label aset nyata sedang dipilih.
func (e *Economics) AssetSelected(label string) bool {
	return IsAssetLabel(label) && contains(e.Assets, label) && !contains(e.Assets, NoAsset)
}

// ZeroUnselectedQuantities menolkan jumlah setiap aset yang tidak dipilih.
func (e *Economics) ZeroUnselectedQuantities() {
	if e.AssetQuantities == nil {
		e.AssetQuantities = make(map[string]Count, len(AssetLabels))
	}
	for _, label := range AssetLabels {
		if !e.AssetSelected(label) {
			e.AssetQuantities[label] = "0"
		}
	}
}

// SyncBusiness membuat atau membuang sub-record usaha sesuai HasBusiness.
func (e *Economics) SyncBusiness() {
	if e.HasBusiness == Ya {
		if e.Business == nil {
			e.Business = NewBusiness()
		}
		return
	}
	e.Business = nil
}

// SetDisabilityCategory mengganti pilihan satu kategori. "Tidak Ada" eksklusif
// di dalam kategori. Tanpa disabilitas ganda, pilihan nyata pada satu kategori
// mengembalikan kategori lain ke "Tidak Ada".
func (h *Health) SetDisabilityCategory(cat DisabilityCategory, next []string) bool {
	values, other := h.DisabilityCategory(cat)
	if values == nil {
		return false
	}
	*values = ReconcileExclusive(*values, next, TidakAda)
	if !contains(*values, Lainnya) {
		*other = ""
	}
	if !h.DisabilityDouble && HasRealSelection(*values, TidakAda) {
		for _, c := range DisabilityCategories {
			if c == cat {
				continue
			}
			h.resetCategory(c)
		}
	}
	return true
}

// SetDoubleDisability mengubah penanda disabilitas ganda. Saat dimatikan,
// hanya kategori pertama yang berisi pilihan nyata yang dipertahankan.
func (h *Health) SetDoubleDisability(double bool) {
	h.DisabilityDouble = double
	if double {
		return
	}
	kept := false
	for _, c := range DisabilityCategories {
		values, _ := h.DisabilityCategory(c)
		if !kept && HasRealSelection(*values, TidakAda) {
			kept = true
			continue
		}
		if HasRealSelection(*values, TidakAda) {
			h.resetCategory(c)
		}
	}
}

func (h *Health) resetCategory(c DisabilityCategory) {
	values, other := h.DisabilityCategory(c)
	*values = []string{TidakAda}
	*other = ""
}
