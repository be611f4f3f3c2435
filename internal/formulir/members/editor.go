// Package members mengelola daftar anggota keluarga profesional pada langkah 3.
//
// Paling banyak satu entri terbuka untuk diedit. Entri 0 selalu milik kepala
// keluarga: namanya mengikuti nama kepala keluarga dan entri itu tidak bisa
// dihapus.
package members

import (
	"errors"
	"strings"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

var (
	ErrHeadEntryLocked = errors.New("entri kepala keluarga tidak dapat dihapus")
	ErrEntryOpen       = errors.New("selesaikan entri yang sedang diedit terlebih dahulu")
	ErrIndexOutOfRange = errors.New("indeks anggota tidak ditemukan")
)

// Editor menyimpan status edit daftar anggota profesional. Datanya sendiri
// tetap berada di FormAggregate.
type Editor struct {
	editing *int
}

// EditingIndex mengembalikan indeks entri yang sedang terbuka.
func (e *Editor) EditingIndex() (int, bool) {
	if e.editing == nil {
		return 0, false
	}
	return *e.editing, true
}

// CanAdd melaporkan apakah tombol "tambah" boleh ditampilkan.
func (e *Editor) CanAdd() bool {
	return e.editing == nil
}

// Removable melaporkan apakah entri i boleh dihapus.
func (e *Editor) Removable(f *models.FormAggregate, i int) bool {
	return i > 0 && i < len(f.ProfessionalFamilyMembers)
}

// Touch membuat entri 0 dari nama kepala keluarga bila daftar masih kosong.
func (e *Editor) Touch(f *models.FormAggregate) {
	if len(f.ProfessionalFamilyMembers) > 0 {
		return
	}
	head := models.NewProfessionalFamilyMember()
	head.Name = f.HeadOfFamilyName
	f.ProfessionalFamilyMembers = append(f.ProfessionalFamilyMembers, head)
}

// Add menambahkan entri kosong dan langsung membukanya. Pada daftar kosong,
// entri yang dibuat adalah entri kepala keluarga.
func (e *Editor) Add(f *models.FormAggregate) (int, error) {
	if e.editing != nil {
		return 0, ErrEntryOpen
	}
	if len(f.ProfessionalFamilyMembers) == 0 {
		e.Touch(f)
	} else {
		f.ProfessionalFamilyMembers = append(f.ProfessionalFamilyMembers, models.NewProfessionalFamilyMember())
	}
	idx := len(f.ProfessionalFamilyMembers) - 1
	e.editing = &idx
	return idx, nil
}

// Remove menghapus entri i (bukan entri 0) dan menggeser indeks edit.
func (e *Editor) Remove(f *models.FormAggregate, i int) error {
	if i == 0 {
		return ErrHeadEntryLocked
	}
	if i < 0 || i >= len(f.ProfessionalFamilyMembers) {
		return ErrIndexOutOfRange
	}
	list := f.ProfessionalFamilyMembers
	f.ProfessionalFamilyMembers = append(list[:i:i], list[i+1:]...)

	if e.editing != nil {
		switch {
		case *e.editing == i:
			e.editing = nil
		case *e.editing > i:
			idx := *e.editing - 1
			e.editing = &idx
		}
	}
	return nil
}

// Edit membuka entri i; entri lain otomatis tertutup.
func (e *Editor) Edit(f *models.FormAggregate, i int) error {
	if i < 0 || i >= len(f.ProfessionalFamilyMembers) {
		return ErrIndexOutOfRange
	}
	idx := i
	e.editing = &idx
	return nil
}

// Close menutup entri yang sedang diedit.
func (e *Editor) Close() {
	e.editing = nil
}

// Update menerapkan fn pada entri i. Nama entri 0 tidak bisa diubah.
func (e *Editor) Update(f *models.FormAggregate, i int, fn func(m *models.ProfessionalFamilyMember)) error {
	if i < 0 || i >= len(f.ProfessionalFamilyMembers) {
		return ErrIndexOutOfRange
	}
	m := &f.ProfessionalFamilyMembers[i]
	fn(m)
	if m.SpecificSkills == nil {
		m.SpecificSkills = []string{}
	}
	if m.ContributionForm == nil {
		m.ContributionForm = []string{}
	}
	if i == 0 {
		m.Name = f.HeadOfFamilyName
	}
	return nil
}

// SyncHead menyalin nama kepala keluarga ke entri 0 (satu arah).
func (e *Editor) SyncHead(f *models.FormAggregate) {
	if len(f.ProfessionalFamilyMembers) == 0 {
		return
	}
	f.ProfessionalFamilyMembers[0].Name = f.HeadOfFamilyName
}

// AddSkill menambah keahlian spesifik pada entri i.
func (e *Editor) AddSkill(f *models.FormAggregate, i int, value string) error {
	return e.Update(f, i, func(m *models.ProfessionalFamilyMember) {
		m.SpecificSkills = addTag(m.SpecificSkills, value)
	})
}

// RemoveSkill membuang keahlian spesifik dari entri i.
func (e *Editor) RemoveSkill(f *models.FormAggregate, i int, value string) error {
	return e.Update(f, i, func(m *models.ProfessionalFamilyMember) {
		m.SpecificSkills = removeTag(m.SpecificSkills, value)
	})
}

// AddContribution menambah bentuk kontribusi pada entri i.
func (e *Editor) AddContribution(f *models.FormAggregate, i int, value string) error {
	return e.Update(f, i, func(m *models.ProfessionalFamilyMember) {
		m.ContributionForm = addTag(m.ContributionForm, value)
	})
}

// RemoveContribution membuang bentuk kontribusi dari entri i.
func (e *Editor) RemoveContribution(f *models.FormAggregate, i int, value string) error {
	return e.Update(f, i, func(m *models.ProfessionalFamilyMember) {
		m.ContributionForm = removeTag(m.ContributionForm, value)
	})
}

func addTag(list []string, value string) []string {
	v := strings.TrimSpace(value)
	if v == "" || models.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func removeTag(list []string, value string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != value {
			out = append(out, s)
		}
	}
	return out
}
