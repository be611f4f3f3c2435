// Package testutil menyediakan data uji bersama untuk paket-paket formulir.
package testutil

import "github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"

// ValidForm mengembalikan formulir yang lolos ketujuh langkah validasi:
// keluarga 4 orang (2 laki-laki, 2 perempuan), tanpa usaha, tanpa disabilitas,
// kedua persetujuan dicentang.
func ValidForm() *models.FormAggregate {
	f := models.NewFormAggregate()

	f.HeadOfFamilyName = "Yohanis Benu"
	f.KKNumber = "5371010101010001"
	f.NIK = "5371011203800001"
	f.Gender = "Laki-laki"
	f.BirthDay = "12"
	f.BirthMonth = "3"
	f.BirthYear = "1980"
	f.BloodType = "O"
	f.MaritalStatus = models.Kawin
	f.MarriageDate = "2005-06-18"
	f.MarriageType = "Gerejawi dan Sipil"
	f.LastEducation = "S1"
	f.PhoneNumber = "081234567890"
	f.Address = "Jl. Frans Seda No. 10"
	f.City = "Kota Kupang"
	f.District = "Oebobo"
	f.Subdistrict = "Liliba"
	f.Lingkungan = "Lingkungan 2"
	f.Rayon = "Rayon 5"

	f.FamilyMembers = "4"
	f.FamilyMembersMale = "2"
	f.FamilyMembersFemale = "2"
	f.FamilyMembersOutside = "0"
	f.FamilyMembersSidi = "3"
	f.FamilyMembersSidiMale = "2"
	f.FamilyMembersSidiFemale = "1"
	f.FamilyMembersNonSidi = "1"
	f.FamilyMembersBaptized = "4"
	f.FamilyMembersNonBaptized = "0"

	f.WillingToServe = models.Tidak

	f.SchoolingStatus = models.Ya
	f.InSchool.SD = "1"
	f.InSchool.SMA = "1"

	f.HeadOccupation = "PNS"
	f.SpouseOccupation = "Ibu Rumah Tangga"
	f.IncomeRange = "Rp 3.000.000 - Rp 5.000.000"
	f.ExpenseFood = "2000000"
	f.ExpenseUtilities = "500000"
	f.ExpenseEducation = "750000"
	f.ExpenseOther = "250000"
	f.HasBusiness = models.Tidak
	f.SetAssets([]string{"Sepeda Motor"})
	f.AssetQuantities["Sepeda Motor"] = "2"
	f.LandStatus = "Milik Sendiri"
	f.WaterSource = "PDAM"

	f.RecentIllness = models.Tidak
	f.ChronicIllness = models.Tidak
	f.BPJSHealth = models.Ya
	f.BPJSEmployment = models.Tidak
	f.SocialAssistance = models.TidakAda
	f.HasDisability = models.Tidak

	f.PrivacyAgreement = true
	f.SelfValidation = true
	return f
}

// ValidMember mengembalikan anggota profesional yang lengkap.
func ValidMember(name string) models.ProfessionalFamilyMember {
	m := models.NewProfessionalFamilyMember()
	m.Name = name
	m.Workplace = "RSUD W. Z. Johannes"
	m.Position = "Perawat"
	m.YearsOfExperience = "5-10 tahun"
	m.HasProfessionalSkill = true
	m.SkillType = "Kesehatan"
	m.SkillLevel = "Menengah"
	return m
}
