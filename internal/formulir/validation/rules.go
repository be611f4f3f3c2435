package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

var validate = validator.New()

type form = models.FormAggregate

// rule adalah satu pemeriksaan; nil berarti lolos.
type rule interface {
	check(f *form) *Violation
}

// required: field teks wajib terisi.
type required struct {
	field string
	msg   string
	get   func(f *form) string
}

func (r required) check(f *form) *Violation {
	if strings.TrimSpace(r.get(f)) == "" {
		return fail(r.field, r.msg)
	}
	return nil
}

// requiredSet: pilihan ganda wajib berisi minimal satu nilai.
type requiredSet struct {
	field string
	msg   string
	get   func(f *form) []string
}

func (r requiredSet) check(f *form) *Violation {
	if len(r.get(f)) == 0 {
		return fail(r.field, r.msg)
	}
	return nil
}

// count: bilangan bulat >= 0. Bila optional, isian kosong dianggap 0.
type count struct {
	field    string
	label    string
	get      func(f *form) models.Count
	optional bool
}

func (r count) check(f *form) *Violation {
	c := r.get(f)
	if c.Empty() {
		if r.optional {
			return nil
		}
		return fail(r.field, r.label+" wajib diisi")
	}
	n, ok := c.Int()
	if !ok {
		return fail(r.field, r.label+" harus berupa angka")
	}
	if n < 0 {
		return fail(r.field, r.label+" tidak boleh negatif")
	}
	return nil
}

// sum: total harus sama dengan jumlah bagian-bagiannya.
type sum struct {
	field string
	msg   string
	total func(f *form) models.Count
	parts []func(f *form) models.Count
}

func (r sum) check(f *form) *Violation {
	total, ok := r.total(f).Int()
	if !ok {
		return fail(r.field, r.msg)
	}
	acc := 0
	for _, p := range r.parts {
		n, ok := p(f).Int()
		if !ok {
			return fail(r.field, r.msg)
		}
		acc += n
	}
	if acc != total {
		return fail(r.field, fmt.Sprintf("%s (%d ≠ %d)", r.msg, acc, total))
	}
	return nil
}

// format: nilai yang sudah terisi harus lolos tag validator.
type format struct {
	field string
	msg   string
	tag   string
	get   func(f *form) string
}

func (r format) check(f *form) *Violation {
	v := strings.TrimSpace(r.get(f))
	if v == "" {
		return nil
	}
	if err := validate.Var(v, r.tag); err != nil {
		return fail(r.field, r.msg)
	}
	return nil
}

// birthDate: tanggal lahir dari tiga bagian harus tanggal kalender yang sah.
type birthDate struct{}

func (birthDate) check(f *form) *Violation {
	parts := []struct {
		field, label, value string
	}{
		{"birthDay", "Tanggal lahir", f.BirthDay},
		{"birthMonth", "Bulan lahir", f.BirthMonth},
		{"birthYear", "Tahun lahir", f.BirthYear},
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		v := strings.TrimSpace(p.value)
		if v == "" {
			return fail(p.field, p.label+" wajib diisi")
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fail(p.field, p.label+" tidak valid")
		}
		nums[i] = n
	}
	day, month, year := nums[0], nums[1], nums[2]
	if year < 1900 || month < 1 || month > 12 || day < 1 {
		return fail("birthDay", "Tanggal lahir tidak valid")
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || int(d.Month()) != month {
		return fail("birthDay", "Tanggal lahir tidak valid")
	}
	return nil
}

// when: aturan di dalamnya hanya berlaku bila cond terpenuhi.
type when struct {
	cond  func(f *form) bool
	rules []rule
}

func (r when) check(f *form) *Violation {
	if !r.cond(f) {
		return nil
	}
	return first(f, r.rules)
}

// otherPair: bila pemicu memuat sentinel, isian pasangannya wajib terisi.
type otherPair struct {
	field    string
	msg      string
	sentinel string
	trigger  func(f *form) []string
	other    func(f *form) string
}

func (r otherPair) check(f *form) *Violation {
	if !models.Contains(r.trigger(f), r.sentinel) {
		return nil
	}
	if strings.TrimSpace(r.other(f)) == "" {
		return fail(r.field, r.msg)
	}
	return nil
}

// mustBeTrue: persetujuan wajib dicentang.
type mustBeTrue struct {
	field string
	msg   string
	get   func(f *form) bool
}

func (r mustBeTrue) check(f *form) *Violation {
	if !r.get(f) {
		return fail(r.field, r.msg)
	}
	return nil
}

// memberList: setiap anggota profesional diperiksa berurutan; berhenti pada
// entri pertama yang gagal.
type memberList struct{}

func (memberList) check(f *form) *Violation {
	for i, m := range f.ProfessionalFamilyMembers {
		checks := []struct {
			key, label, value string
		}{
			{"workplace", "Tempat kerja", m.Workplace},
			{"position", "Jabatan", m.Position},
			{"yearsOfExperience", "Lama pengalaman", m.YearsOfExperience},
		}
		if f.WillingToServe == models.Ya {
			checks = append(checks,
				struct{ key, label, value string }{"skillType", "Jenis keahlian", m.SkillType},
				struct{ key, label, value string }{"skillLevel", "Tingkat keahlian", m.SkillLevel},
			)
		}
		for _, c := range checks {
			if strings.TrimSpace(c.value) == "" {
				return fail(
					fmt.Sprintf("professionalFamilyMembers.%d.%s", i, c.key),
					fmt.Sprintf("Anggota profesional ke-%d: %s wajib diisi", i+1, c.label),
				)
			}
		}
	}
	return nil
}

// disabilityContradiction: bila keluarga menyatakan ada disabilitas, minimal
// satu kategori harus berisi pilihan selain "Tidak Ada".
type disabilityContradiction struct{}

func (disabilityContradiction) check(f *form) *Violation {
	for _, cat := range models.DisabilityCategories {
		values, _ := f.DisabilityCategory(cat)
		if models.HasRealSelection(*values, models.TidakAda) {
			return nil
		}
	}
	return fail("health_hasDisability",
		"Anda menyatakan ada anggota keluarga dengan disabilitas, pilih minimal satu jenis disabilitas")
}

func fail(field, msg string) *Violation {
	return &Violation{Field: field, Message: msg}
}

func first(f *form, rules []rule) *Violation {
	for _, r := range rules {
		if v := r.check(f); v != nil {
			return v
		}
	}
	return nil
}

func one(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
