package wizard

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

const (
	keyHeadName      = "headOfFamilyName"
	keyWilling       = "professional_willingToServe"
	keyMembers       = "professionalFamilyMembers"
	keyAssets        = "economics_assets"
	keyQuantities    = "economics_assetQuantities"
	keyDoubleDisable = "health_disabilityDouble"
)

var disabilityKeys = map[models.DisabilityCategory]string{
	models.DisabilityPhysical:     "health_disabilityPhysical",
	models.DisabilityIntellectual: "health_disabilityIntellectual",
	models.DisabilityMental:       "health_disabilityMental",
	models.DisabilitySensory:      "health_disabilitySensory",
}

// Patch menggabungkan objek JSON parsial ke formulir, field demi field, lalu
// menjalankan aturan rekonsiliasi yang sama dengan mutasi eksplisit.
func (c *Controller) Patch(raw []byte) (Snapshot, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || keys == nil {
		return c.Snapshot(), fmt.Errorf("%w: harus berupa objek JSON", ErrInvalidPatch)
	}

	return c.mutate(func(f *models.FormAggregate) error {
		next := f.Clone()
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(next); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		if err := c.reconcile(f, next, keys); err != nil {
			return err
		}
		*f = *next
		return nil
	})
}

// reconcile menerapkan aturan lintas-field dari prev ke next.
func (c *Controller) reconcile(prev, next *models.FormAggregate, keys map[string]json.RawMessage) error {
	// Panjang daftar anggota hanya berubah lewat AddMember/RemoveMember,
	// sehingga entri 0 tidak bisa dihapus lewat patch.
	if _, ok := keys[keyMembers]; ok && len(next.ProfessionalFamilyMembers) != len(prev.ProfessionalFamilyMembers) {
		return fmt.Errorf("%w: jumlah anggota hanya bisa diubah lewat tambah/hapus anggota", ErrInvalidPatch)
	}

	if _, ok := keys[keyAssets]; ok {
		chosen := next.Assets
		next.Assets = prev.Assets
		for _, label := range prev.Assets {
			if !models.Contains(chosen, label) && models.IsAssetLabel(label) {
				next.AssetQuantities[label] = "0"
			}
		}
		next.SetAssets(chosen)
	}
	if _, ok := keys[keyQuantities]; ok {
		for label := range next.AssetQuantities {
			if !models.IsAssetLabel(label) {
				delete(next.AssetQuantities, label)
			}
		}
	}
	next.ZeroUnselectedQuantities()
	next.SyncBusiness()

	if _, ok := keys[keyDoubleDisable]; ok && prev.DisabilityDouble != next.DisabilityDouble {
		next.SetDoubleDisability(next.DisabilityDouble)
	}
	// Nilai masuk diambil dulu: SetDisabilityCategory bisa mereset kategori
	// lain sebelum gilirannya.
	incoming := make(map[models.DisabilityCategory][]string, len(disabilityKeys))
	for _, cat := range models.DisabilityCategories {
		if _, ok := keys[disabilityKeys[cat]]; !ok {
			continue
		}
		chosen, _ := next.DisabilityCategory(cat)
		incoming[cat] = *chosen
		before, _ := prev.DisabilityCategory(cat)
		*chosen = append([]string{}, (*before)...)
	}
	for _, cat := range models.DisabilityCategories {
		if values, ok := incoming[cat]; ok {
			next.SetDisabilityCategory(cat, values)
		}
	}

	next.Normalize()
	if _, ok := keys[keyWilling]; ok && next.WillingToServe == models.Ya {
		c.editor.Touch(next)
	}
	if idx, ok := c.editor.EditingIndex(); ok && idx >= len(next.ProfessionalFamilyMembers) {
		c.editor.Close()
	}
	_, headChanged := keys[keyHeadName]
	_, membersChanged := keys[keyMembers]
	if headChanged || membersChanged {
		c.editor.SyncHead(next)
	}
	return nil
}

// ToggleAsset memilih atau membatalkan satu aset.
func (c *Controller) ToggleAsset(label string, selected bool) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		if label != models.NoAsset && !models.IsAssetLabel(label) {
			return ErrUnknownAsset
		}
		f.ToggleAsset(label, selected)
		return nil
	})
}

// SetAssetQuantity mengisi jumlah untuk satu aset.
func (c *Controller) SetAssetQuantity(label string, qty models.Count) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		if !models.IsAssetLabel(label) {
			return ErrUnknownAsset
		}
		if !f.AssetSelected(label) {
			return ErrAssetNotSelected
		}
		f.SetAssetQuantity(label, qty)
		return nil
	})
}

// SetDisabilityCategory mengganti pilihan satu kategori disabilitas.
func (c *Controller) SetDisabilityCategory(cat models.DisabilityCategory, values []string) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		if !f.SetDisabilityCategory(cat, values) {
			return ErrUnknownCategory
		}
		return nil
	})
}

// SetDoubleDisability mengubah penanda disabilitas ganda.
func (c *Controller) SetDoubleDisability(double bool) (Snapshot, error) {
	return c.mutate(func(f *models.FormAggregate) error {
		f.SetDoubleDisability(double)
		return nil
	})
}
