package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Count adalah isian angka dari formulir. String kosong berarti belum diisi.
type Count string

// Int mengurai nilai; ok bernilai false bila kosong atau bukan bilangan bulat.
func (c Count) Int() (int, bool) {
	s := strings.TrimSpace(string(c))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// UnmarshalJSON menerima string maupun angka; draft lama menyimpan angka.
func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Count(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("count: nilai %s bukan angka", b)
	}
	*c = Count(n.String())
	return nil
}

// Empty melaporkan apakah isian belum diisi.
func (c Count) Empty() bool {
	return strings.TrimSpace(string(c)) == ""
}

// Identity berisi data kepala keluarga (langkah 1).
type Identity struct {
	HeadOfFamilyName string `json:"headOfFamilyName"`
	KKNumber         string `json:"kkNumber"`
	NIK              string `json:"nik"`
	BirthDay         string `json:"birthDay"`
	BirthMonth       string `json:"birthMonth"`
	BirthYear        string `json:"birthYear"`
	Gender           string `json:"gender"`
	BloodType        string `json:"bloodType"`
	MaritalStatus    string `json:"maritalStatus"`
	MarriageDate     string `json:"marriageDate"`
	MarriageType     string `json:"marriageType"`
	LastEducation    string `json:"education"`
	PhoneNumber      string `json:"phoneNumber"`
	Address          string `json:"address"`
	City             string `json:"city"`
	District         string `json:"district"`
	Subdistrict      string `json:"subdistrict"`
	Lingkungan       string `json:"lingkungan"`
	Rayon            string `json:"rayon"`
}

// Household berisi komposisi anggota keluarga (langkah 2).
type Household struct {
	FamilyMembers            Count `json:"familyMembers"`
	FamilyMembersMale        Count `json:"familyMembersMale"`
	FamilyMembersFemale      Count `json:"familyMembersFemale"`
	FamilyMembersOutside     Count `json:"familyMembersOutside"`
	FamilyMembersSidi        Count `json:"familyMembersSidi"`
	FamilyMembersSidiMale    Count `json:"familyMembersSidiMale"`
	FamilyMembersSidiFemale  Count `json:"familyMembersSidiFemale"`
	FamilyMembersNonSidi     Count `json:"familyMembersNonSidi"`
	FamilyMembersBaptized    Count `json:"familyMembersBaptized"`
	FamilyMembersNonBaptized Count `json:"familyMembersNonBaptized"`
}

// ProfessionalFamilyMember adalah satu anggota keluarga dengan profesi
// dan komitmen pelayanan. Tidak punya id selain posisinya di daftar.
type ProfessionalFamilyMember struct {
	Name                  string   `json:"name"`
	Workplace             string   `json:"workplace"`
	Position              string   `json:"position"`
	YearsOfExperience     string   `json:"yearsOfExperience"`
	HasProfessionalSkill  bool     `json:"hasProfessionalSkill"`
	SkillType             string   `json:"skillType"`
	SkillLevel            string   `json:"skillLevel"`
	SpecificSkills        []string `json:"specificSkills"`
	ChurchServiceInterest string   `json:"churchServiceInterest"`
	ServiceInterestArea   string   `json:"serviceInterestArea"`
	ContributionForm      []string `json:"contributionForm"`
	CommunityConsent      bool     `json:"communityConsent"`
}

// NewProfessionalFamilyMember membuat entri kosong dengan slice yang sudah terisi.
func NewProfessionalFamilyMember() ProfessionalFamilyMember {
	return ProfessionalFamilyMember{
		SpecificSkills:   []string{},
		ContributionForm: []string{},
	}
}

// Professional berisi komitmen profesi dan pelayanan (langkah 3).
type Professional struct {
	WillingToServe            string                     `json:"professional_willingToServe"`
	ProfessionalFamilyMembers []ProfessionalFamilyMember `json:"professionalFamilyMembers"`
}

// LevelCounts adalah jumlah anak per jenjang sekolah.
type LevelCounts struct {
	TK  Count `json:"tk"`
	SD  Count `json:"sd"`
	SMP Count `json:"smp"`
	SMA Count `json:"sma"`
	PT  Count `json:"pt"`
}

// Each memanggil fn untuk setiap jenjang sesuai urutan SchoolLevels.
func (l LevelCounts) Each(fn func(level string, c Count)) {
	fn("tk", l.TK)
	fn("sd", l.SD)
	fn("smp", l.SMP)
	fn("sma", l.SMA)
	fn("pt", l.PT)
}

// Education berisi pendidikan anak (langkah 4).
type Education struct {
	SchoolingStatus string      `json:"education_schoolingStatus"`
	InSchool        LevelCounts `json:"education_inSchool"`
	Dropout         LevelCounts `json:"education_dropout"`
	Unemployed      LevelCounts `json:"education_unemployed"`
	Working         LevelCounts `json:"education_working"`
}

// Business adalah sub-record usaha keluarga; hanya ada bila HasBusiness = "Ya".
type Business struct {
	Name           string   `json:"businessName"`
	Type           string   `json:"businessType"`
	TypeOther      string   `json:"businessTypeOther"`
	Status         string   `json:"businessStatus"`
	StatusOther    string   `json:"businessStatusOther"`
	Location       string   `json:"businessLocation"`
	LocationOther  string   `json:"businessLocationOther"`
	Permit         string   `json:"businessPermit"`
	PermitOther    string   `json:"businessPermitOther"`
	Marketing      []string `json:"businessMarketing"`
	MarketingOther string   `json:"businessMarketingOther"`
	Issues         []string `json:"businessIssues"`
	IssuesOther    string   `json:"businessIssuesOther"`
	Needs          []string `json:"businessNeeds"`
	NeedsOther     string   `json:"businessNeedsOther"`
	Training       []string `json:"businessTraining"`
	TrainingOther  string   `json:"businessTrainingOther"`
}

// NewBusiness membuat sub-record usaha kosong.
func NewBusiness() *Business {
	return &Business{
		Marketing: []string{},
		Issues:    []string{},
		Needs:     []string{},
		Training:  []string{},
	}
}

// Economics berisi data ekonomi keluarga (langkah 5).
type Economics struct {
	HeadOccupation        string           `json:"economics_headOccupation"`
	HeadOccupationOther   string           `json:"economics_headOccupationOther"`
	SpouseOccupation      string           `json:"economics_spouseOccupation"`
	SpouseOccupationOther string           `json:"economics_spouseOccupationOther"`
	IncomeRange           string           `json:"economics_incomeRange"`
	IncomeRangeDetail     string           `json:"economics_incomeRangeDetail"`
	ExpenseFood           Count            `json:"economics_expenseFood"`
	ExpenseUtilities      Count            `json:"economics_expenseUtilities"`
	ExpenseEducation      Count            `json:"economics_expenseEducation"`
	ExpenseOther          Count            `json:"economics_expenseOther"`
	HasBusiness           string           `json:"economics_hasBusiness"`
	Business              *Business        `json:"economics_business,omitempty"`
	Assets                []string         `json:"economics_assets"`
	AssetQuantities       map[string]Count `json:"economics_assetQuantities"`
	LandStatus            string           `json:"economics_landStatus"`
	WaterSource           string           `json:"economics_waterSource"`
}

// Health berisi data kesehatan (langkah 6).
type Health struct {
	RecentIllness               string   `json:"health_recentIllness"`
	ChronicIllness              string   `json:"health_chronicIllness"`
	BPJSHealth                  string   `json:"health_bpjsHealth"`
	BPJSEmployment              string   `json:"health_bpjsEmployment"`
	SocialAssistance            string   `json:"health_socialAssistance"`
	HasDisability               string   `json:"health_hasDisability"`
	DisabilityPhysical          []string `json:"health_disabilityPhysical"`
	DisabilityPhysicalOther     string   `json:"health_disabilityPhysicalOther"`
	DisabilityIntellectual      []string `json:"health_disabilityIntellectual"`
	DisabilityIntellectualOther string   `json:"health_disabilityIntellectualOther"`
	DisabilityMental            []string `json:"health_disabilityMental"`
	DisabilityMentalOther       string   `json:"health_disabilityMentalOther"`
	DisabilitySensory           []string `json:"health_disabilitySensory"`
	DisabilitySensoryOther      string   `json:"health_disabilitySensoryOther"`
	DisabilityDouble            bool     `json:"health_disabilityDouble"`
}

// Consent berisi dua persetujuan yang menjadi syarat pengiriman (langkah 7).
type Consent struct {
	PrivacyAgreement bool `json:"consent_privacyAgreement"`
	SelfValidation   bool `json:"consent_selfValidation"`
}

// FormAggregate menampung seluruh jawaban sensus satu keluarga.
// Grup di-embed sehingga JSON-nya datar.
type FormAggregate struct {
	Identity
	Household
	Professional
	Education
	Economics
	Health
	Consent
}

// TotalExpense menjumlahkan empat kategori pengeluaran. Hanya untuk tampilan.
func (f *FormAggregate) TotalExpense() int {
	total := 0
	for _, c := range []Count{f.ExpenseFood, f.ExpenseUtilities, f.ExpenseEducation, f.ExpenseOther} {
		if n, ok := c.Int(); ok && n > 0 {
			total += n
		}
	}
	return total
}
