package validation

import (
	"strings"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

func isKawin(f *form) bool        { return f.MaritalStatus == models.Kawin }
func hasBusiness(f *form) bool    { return f.HasBusiness == models.Ya }
func hasDisability(f *form) bool  { return f.HasDisability == models.Ya }
func hasSchoolChild(f *form) bool { return f.SchoolingStatus == models.Ya }

func biz(f *form) *models.Business {
	if f.Business == nil {
		return &models.Business{}
	}
	return f.Business
}

func phoneDigits(f *form) string {
	return strings.TrimPrefix(strings.TrimSpace(f.PhoneNumber), "+")
}

var stepIdentity = []rule{
	required{"headOfFamilyName", "Nama kepala keluarga wajib diisi", func(f *form) string { return f.HeadOfFamilyName }},
	required{"kkNumber", "Nomor KK wajib diisi", func(f *form) string { return f.KKNumber }},
	format{"kkNumber", "Nomor KK harus 16 digit angka", "len=16,number", func(f *form) string { return f.KKNumber }},
	required{"nik", "NIK wajib diisi", func(f *form) string { return f.NIK }},
	format{"nik", "NIK harus 16 digit angka", "len=16,number", func(f *form) string { return f.NIK }},
	required{"gender", "Jenis kelamin wajib dipilih", func(f *form) string { return f.Gender }},
	birthDate{},
	required{"bloodType", "Golongan darah wajib dipilih", func(f *form) string { return f.BloodType }},
	required{"maritalStatus", "Status perkawinan wajib dipilih", func(f *form) string { return f.MaritalStatus }},
	when{isKawin, []rule{
		required{"marriageDate", "Tanggal perkawinan wajib diisi", func(f *form) string { return f.MarriageDate }},
		required{"marriageType", "Jenis perkawinan wajib dipilih", func(f *form) string { return f.MarriageType }},
	}},
	required{"education", "Pendidikan terakhir wajib dipilih", func(f *form) string { return f.LastEducation }},
	required{"phoneNumber", "Nomor telepon wajib diisi", func(f *form) string { return f.PhoneNumber }},
	format{"phoneNumber", "Nomor telepon harus 10 sampai 14 digit angka", "number,min=10,max=14", phoneDigits},
	required{"address", "Alamat wajib diisi", func(f *form) string { return f.Address }},
	required{"city", "Kota/Kabupaten wajib dipilih", func(f *form) string { return f.City }},
	required{"district", "Kecamatan wajib dipilih", func(f *form) string { return f.District }},
	required{"subdistrict", "Kelurahan wajib dipilih", func(f *form) string { return f.Subdistrict }},
	required{"lingkungan", "Lingkungan wajib dipilih", func(f *form) string { return f.Lingkungan }},
	required{"rayon", "Rayon wajib dipilih", func(f *form) string { return f.Rayon }},
}

var stepHousehold = []rule{
	count{"familyMembers", "Jumlah anggota keluarga", func(f *form) models.Count { return f.FamilyMembers }, false},
	count{"familyMembersMale", "Jumlah anggota laki-laki", func(f *form) models.Count { return f.FamilyMembersMale }, false},
	count{"familyMembersFemale", "Jumlah anggota perempuan", func(f *form) models.Count { return f.FamilyMembersFemale }, false},
	sum{
		field: "familyMembers",
		msg:   "Jumlah laki-laki dan perempuan harus sama dengan jumlah anggota keluarga",
		total: func(f *form) models.Count { return f.FamilyMembers },
		parts: []func(f *form) models.Count{
			func(f *form) models.Count { return f.FamilyMembersMale },
			func(f *form) models.Count { return f.FamilyMembersFemale },
		},
	},
	count{"familyMembersOutside", "Jumlah anggota di luar domisili", func(f *form) models.Count { return f.FamilyMembersOutside }, false},
	count{"familyMembersSidi", "Jumlah anggota sidi", func(f *form) models.Count { return f.FamilyMembersSidi }, false},
	count{"familyMembersSidiMale", "Jumlah sidi laki-laki", func(f *form) models.Count { return f.FamilyMembersSidiMale }, false},
	count{"familyMembersSidiFemale", "Jumlah sidi perempuan", func(f *form) models.Count { return f.FamilyMembersSidiFemale }, false},
	sum{
		field: "familyMembersSidi",
		msg:   "Jumlah sidi laki-laki dan perempuan harus sama dengan jumlah anggota sidi",
		total: func(f *form) models.Count { return f.FamilyMembersSidi },
		parts: []func(f *form) models.Count{
			func(f *form) models.Count { return f.FamilyMembersSidiMale },
			func(f *form) models.Count { return f.FamilyMembersSidiFemale },
		},
	},
	count{"familyMembersNonSidi", "Jumlah anggota belum sidi", func(f *form) models.Count { return f.FamilyMembersNonSidi }, false},
	count{"familyMembersBaptized", "Jumlah anggota sudah baptis", func(f *form) models.Count { return f.FamilyMembersBaptized }, false},
	count{"familyMembersNonBaptized", "Jumlah anggota belum baptis", func(f *form) models.Count { return f.FamilyMembersNonBaptized }, false},
}

var stepProfessional = []rule{
	required{"professional_willingToServe", "Kesediaan melayani wajib dipilih", func(f *form) string { return f.WillingToServe }},
	memberList{},
}

func levelRules(prefix, label string, get func(f *form) models.LevelCounts) []rule {
	levels := []struct {
		key  string
		name string
		pick func(l models.LevelCounts) models.Count
	}{
		{"tk", "TK", func(l models.LevelCounts) models.Count { return l.TK }},
		{"sd", "SD", func(l models.LevelCounts) models.Count { return l.SD }},
		{"smp", "SMP", func(l models.LevelCounts) models.Count { return l.SMP }},
		{"sma", "SMA", func(l models.LevelCounts) models.Count { return l.SMA }},
		{"pt", "Perguruan Tinggi", func(l models.LevelCounts) models.Count { return l.PT }},
	}
	rules := make([]rule, 0, len(levels))
	for _, lv := range levels {
		pick := lv.pick
		rules = append(rules, count{
			field:    prefix + "." + lv.key,
			label:    label + " " + lv.name,
			get:      func(f *form) models.Count { return pick(get(f)) },
			optional: true,
		})
	}
	return rules
}

var stepEducation = func() []rule {
	rules := []rule{
		required{"education_schoolingStatus", "Status sekolah anak wajib dipilih", func(f *form) string { return f.SchoolingStatus }},
	}
	rules = append(rules, levelRules("education_inSchool", "Jumlah anak bersekolah", func(f *form) models.LevelCounts { return f.InSchool })...)
	rules = append(rules, levelRules("education_dropout", "Jumlah anak putus sekolah", func(f *form) models.LevelCounts { return f.Dropout })...)
	rules = append(rules, levelRules("education_unemployed", "Jumlah lulusan belum bekerja", func(f *form) models.LevelCounts { return f.Unemployed })...)
	rules = append(rules, levelRules("education_working", "Jumlah lulusan sudah bekerja", func(f *form) models.LevelCounts { return f.Working })...)
	return []rule{
		rules[0],
		when{hasSchoolChild, rules[1:]},
	}
}()

var businessRules = []rule{
	required{"businessName", "Nama usaha wajib diisi", func(f *form) string { return biz(f).Name }},
	required{"businessType", "Jenis usaha wajib dipilih", func(f *form) string { return biz(f).Type }},
	otherPair{"businessTypeOther", "Jenis usaha lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return one(biz(f).Type) }, func(f *form) string { return biz(f).TypeOther }},
	required{"businessStatus", "Status usaha wajib dipilih", func(f *form) string { return biz(f).Status }},
	otherPair{"businessStatusOther", "Status usaha lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return one(biz(f).Status) }, func(f *form) string { return biz(f).StatusOther }},
	required{"businessLocation", "Lokasi usaha wajib dipilih", func(f *form) string { return biz(f).Location }},
	otherPair{"businessLocationOther", "Lokasi usaha lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return one(biz(f).Location) }, func(f *form) string { return biz(f).LocationOther }},
	required{"businessPermit", "Izin usaha wajib dipilih", func(f *form) string { return biz(f).Permit }},
	otherPair{"businessPermitOther", "Izin usaha lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return one(biz(f).Permit) }, func(f *form) string { return biz(f).PermitOther }},
	requiredSet{"businessMarketing", "Cara pemasaran wajib dipilih", func(f *form) []string { return biz(f).Marketing }},
	otherPair{"businessMarketingOther", "Cara pemasaran lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return biz(f).Marketing }, func(f *form) string { return biz(f).MarketingOther }},
	requiredSet{"businessIssues", "Kendala usaha wajib dipilih", func(f *form) []string { return biz(f).Issues }},
	otherPair{"businessIssuesOther", "Kendala usaha lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return biz(f).Issues }, func(f *form) string { return biz(f).IssuesOther }},
	requiredSet{"businessNeeds", "Kebutuhan usaha wajib dipilih", func(f *form) []string { return biz(f).Needs }},
	otherPair{"businessNeedsOther", "Kebutuhan usaha lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return biz(f).Needs }, func(f *form) string { return biz(f).NeedsOther }},
	requiredSet{"businessTraining", "Pelatihan yang dibutuhkan wajib dipilih", func(f *form) []string { return biz(f).Training }},
	otherPair{"businessTrainingOther", "Pelatihan lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return biz(f).Training }, func(f *form) string { return biz(f).TrainingOther }},
}

type assetQuantities struct{}

func (assetQuantities) check(f *form) *Violation {
	for _, label := range models.AssetLabels {
		if !models.Contains(f.Assets, label) {
			continue
		}
		c := count{
			field:    "economics_assetQuantities." + label,
			label:    "Jumlah " + label,
			get:      func(f *form) models.Count { return f.AssetQuantities[label] },
			optional: true,
		}
		if v := c.check(f); v != nil {
			return v
		}
	}
	return nil
}

var stepEconomics = []rule{
	required{"economics_headOccupation", "Pekerjaan kepala keluarga wajib dipilih", func(f *form) string { return f.HeadOccupation }},
	otherPair{"economics_headOccupationOther", "Pekerjaan kepala keluarga lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return one(f.HeadOccupation) }, func(f *form) string { return f.HeadOccupationOther }},
	when{isKawin, []rule{
		required{"economics_spouseOccupation", "Pekerjaan pasangan wajib dipilih", func(f *form) string { return f.SpouseOccupation }},
	}},
	otherPair{"economics_spouseOccupationOther", "Pekerjaan pasangan lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return one(f.SpouseOccupation) }, func(f *form) string { return f.SpouseOccupationOther }},
	required{"economics_incomeRange", "Rentang pendapatan wajib dipilih", func(f *form) string { return f.IncomeRange }},
	otherPair{"economics_incomeRangeDetail", "Rincian pendapatan wajib dipilih", models.TopIncomeBracket,
		func(f *form) []string { return one(f.IncomeRange) }, func(f *form) string { return f.IncomeRangeDetail }},
	count{"economics_expenseFood", "Pengeluaran pangan", func(f *form) models.Count { return f.ExpenseFood }, false},
	count{"economics_expenseUtilities", "Pengeluaran listrik dan air", func(f *form) models.Count { return f.ExpenseUtilities }, false},
	count{"economics_expenseEducation", "Pengeluaran pendidikan", func(f *form) models.Count { return f.ExpenseEducation }, false},
	count{"economics_expenseOther", "Pengeluaran lainnya", func(f *form) models.Count { return f.ExpenseOther }, false},
	required{"economics_hasBusiness", "Kepemilikan usaha wajib dipilih", func(f *form) string { return f.HasBusiness }},
	when{hasBusiness, businessRules},
	requiredSet{"economics_assets", "Kepemilikan aset wajib dipilih", func(f *form) []string { return f.Assets }},
	assetQuantities{},
	required{"economics_landStatus", "Status tanah wajib dipilih", func(f *form) string { return f.LandStatus }},
	required{"economics_waterSource", "Sumber air wajib dipilih", func(f *form) string { return f.WaterSource }},
}

var disabilityRules = []rule{
	requiredSet{"health_disabilityPhysical", "Disabilitas fisik wajib dipilih", func(f *form) []string { return f.DisabilityPhysical }},
	otherPair{"health_disabilityPhysicalOther", "Disabilitas fisik lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return f.DisabilityPhysical }, func(f *form) string { return f.DisabilityPhysicalOther }},
	requiredSet{"health_disabilityIntellectual", "Disabilitas intelektual wajib dipilih", func(f *form) []string { return f.DisabilityIntellectual }},
	otherPair{"health_disabilityIntellectualOther", "Disabilitas intelektual lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return f.DisabilityIntellectual }, func(f *form) string { return f.DisabilityIntellectualOther }},
	requiredSet{"health_disabilityMental", "Disabilitas mental wajib dipilih", func(f *form) []string { return f.DisabilityMental }},
	otherPair{"health_disabilityMentalOther", "Disabilitas mental lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return f.DisabilityMental }, func(f *form) string { return f.DisabilityMentalOther }},
	requiredSet{"health_disabilitySensory", "Disabilitas sensorik wajib dipilih", func(f *form) []string { return f.DisabilitySensory }},
	otherPair{"health_disabilitySensoryOther", "Disabilitas sensorik lainnya wajib diisi", models.Lainnya,
		func(f *form) []string { return f.DisabilitySensory }, func(f *form) string { return f.DisabilitySensoryOther }},
	disabilityContradiction{},
}

var stepHealth = []rule{
	required{"health_recentIllness", "Riwayat sakit sebulan terakhir wajib dipilih", func(f *form) string { return f.RecentIllness }},
	required{"health_chronicIllness", "Riwayat penyakit kronis wajib dipilih", func(f *form) string { return f.ChronicIllness }},
	required{"health_bpjsHealth", "Kepesertaan BPJS Kesehatan wajib dipilih", func(f *form) string { return f.BPJSHealth }},
	required{"health_bpjsEmployment", "Kepesertaan BPJS Ketenagakerjaan wajib dipilih", func(f *form) string { return f.BPJSEmployment }},
	required{"health_socialAssistance", "Bantuan sosial wajib dipilih", func(f *form) string { return f.SocialAssistance }},
	required{"health_hasDisability", "Keberadaan disabilitas wajib dipilih", func(f *form) string { return f.HasDisability }},
	when{hasDisability, disabilityRules},
}

var stepConsent = []rule{
	mustBeTrue{"consent_privacyAgreement", "Anda harus menyetujui kebijakan privasi", func(f *form) bool { return f.PrivacyAgreement }},
	mustBeTrue{"consent_selfValidation", "Anda harus menyatakan data yang diisi benar", func(f *form) bool { return f.SelfValidation }},
}
