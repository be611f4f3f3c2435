package models

import "encoding/json"

// NewFormAggregate membuat formulir baru dengan nilai bawaan statis.
// Semua slice sudah non-nil dan setiap label aset punya jumlah "0".
func NewFormAggregate() *FormAggregate {
	f := &FormAggregate{}
	f.Normalize()
	return f
}

// Normalize memastikan field bertipe slice/map tidak nil sehingga draft lama
// yang tidak memuat field tersebut tetap aman dipakai.
func (f *FormAggregate) Normalize() {
	if f.ProfessionalFamilyMembers == nil {
		f.ProfessionalFamilyMembers = []ProfessionalFamilyMember{}
	}
	for i := range f.ProfessionalFamilyMembers {
		m := &f.ProfessionalFamilyMembers[i]
		if m.SpecificSkills == nil {
			m.SpecificSkills = []string{}
		}
		if m.ContributionForm == nil {
			m.ContributionForm = []string{}
		}
	}

	if f.Assets == nil {
		f.Assets = []string{}
	}
	if f.AssetQuantities == nil {
		f.AssetQuantities = make(map[string]Count, len(AssetLabels))
	}
	for _, label := range AssetLabels {
		if _, ok := f.AssetQuantities[label]; !ok {
			f.AssetQuantities[label] = "0"
		}
	}
	if f.Business != nil {
		b := f.Business
		if b.Marketing == nil {
			b.Marketing = []string{}
		}
		if b.Issues == nil {
			b.Issues = []string{}
		}
		if b.Needs == nil {
			b.Needs = []string{}
		}
		if b.Training == nil {
			b.Training = []string{}
		}
	}

	for _, cat := range DisabilityCategories {
		values, _ := f.DisabilityCategory(cat)
		if *values == nil {
			*values = []string{}
		}
	}
}

// Clone menyalin formulir secara mendalam lewat JSON.
func (f *FormAggregate) Clone() *FormAggregate {
	raw, err := json.Marshal(f)
	if err != nil {
		// Semua field bisa di-marshal; jalur ini tidak terjangkau.
		panic(err)
	}
	out := &FormAggregate{}
	if err := json.Unmarshal(raw, out); err != nil {
		panic(err)
	}
	out.Normalize()
	return out
}
