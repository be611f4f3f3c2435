package members

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

func newForm(head string) *models.FormAggregate {
	f := models.NewFormAggregate()
	f.HeadOfFamilyName = head
	return f
}

func TestTouch_SeedsHeadEntryOnce(t *testing.T) {
	f := newForm("Yohanis")
	e := &Editor{}

	e.Touch(f)
	e.Touch(f)

	require.Len(t, f.ProfessionalFamilyMembers, 1)
	assert.Equal(t, "Yohanis", f.ProfessionalFamilyMembers[0].Name)
}

func TestAdd_OpensNewEntry(t *testing.T) {
	f := newForm("Yohanis")
	e := &Editor{}

	idx, err := e.Add(f)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "Yohanis", f.ProfessionalFamilyMembers[0].Name)

	_, err = e.Add(f)
	assert.ErrorIs(t, err, ErrEntryOpen)
	assert.False(t, e.CanAdd())

	e.Close()
	assert.True(t, e.CanAdd())
	idx, err = e.Add(f)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	got, ok := e.EditingIndex()
	assert.True(t, ok)
	assert.Equal(t, 1, got)
	assert.Equal(t, "", f.ProfessionalFamilyMembers[1].Name)
}

func TestRemove_HeadEntryIsLocked(t *testing.T) {
	f := newForm("Yohanis")
	e := &Editor{}
	e.Touch(f)

	assert.ErrorIs(t, e.Remove(f, 0), ErrHeadEntryLocked)
	assert.False(t, e.Removable(f, 0))
	assert.Len(t, f.ProfessionalFamilyMembers, 1)
	assert.ErrorIs(t, e.Remove(f, 5), ErrIndexOutOfRange)
}

func TestAddManyThenRemoveAllButHead(t *testing.T) {
	f := newForm("Yohanis")
	e := &Editor{}
	for i := 0; i < 5; i++ {
		_, err := e.Add(f)
		require.NoError(t, err)
		e.Close()
	}
	require.Len(t, f.ProfessionalFamilyMembers, 5)

	f.HeadOfFamilyName = "Yohanis Benu"
	e.SyncHead(f)

	for len(f.ProfessionalFamilyMembers) > 1 {
		require.NoError(t, e.Remove(f, len(f.ProfessionalFamilyMembers)-1))
	}
	require.Len(t, f.ProfessionalFamilyMembers, 1)
	assert.Equal(t, "Yohanis Benu", f.ProfessionalFamilyMembers[0].Name)
}

func TestRemove_AdjustsEditingIndex(t *testing.T) {
	f := newForm("H")
	e := &Editor{}
	e.Touch(f)
	for i := 0; i < 3; i++ {
		_, err := e.Add(f)
		require.NoError(t, err)
		e.Close()
	}
	// daftar: 0..3

	require.NoError(t, e.Edit(f, 3))
	require.NoError(t, e.Remove(f, 1))
	idx, ok := e.EditingIndex()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	require.NoError(t, e.Remove(f, 2))
	_, ok = e.EditingIndex()
	assert.False(t, ok)

	require.NoError(t, e.Edit(f, 0))
	require.NoError(t, e.Remove(f, 1))
	idx, ok = e.EditingIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestRemove_DoesNotAliasRemainingEntries(t *testing.T) {
	f := newForm("H")
	e := &Editor{}
	e.Touch(f)
	f.ProfessionalFamilyMembers = append(f.ProfessionalFamilyMembers,
		models.ProfessionalFamilyMember{Name: "A"},
		models.ProfessionalFamilyMember{Name: "B"},
	)
	before := f.ProfessionalFamilyMembers

	require.NoError(t, e.Remove(f, 1))
	assert.Equal(t, "A", before[1].Name)
	assert.Equal(t, "B", f.ProfessionalFamilyMembers[1].Name)
}

func TestUpdate_HeadNameIsReadOnly(t *testing.T) {
	f := newForm("Yohanis")
	e := &Editor{}
	e.Touch(f)

	require.NoError(t, e.Update(f, 0, func(m *models.ProfessionalFamilyMember) {
		m.Name = "Orang Lain"
		m.Workplace = "Bank NTT"
	}))
	assert.Equal(t, "Yohanis", f.ProfessionalFamilyMembers[0].Name)
	assert.Equal(t, "Bank NTT", f.ProfessionalFamilyMembers[0].Workplace)
	assert.ErrorIs(t, e.Update(f, 3, func(*models.ProfessionalFamilyMember) {}), ErrIndexOutOfRange)
}

func TestSyncHead_IsOneWay(t *testing.T) {
	f := newForm("Yohanis")
	e := &Editor{}
	e.SyncHead(f)
	assert.Empty(t, f.ProfessionalFamilyMembers)

	e.Touch(f)
	f.HeadOfFamilyName = "Maria"
	e.SyncHead(f)
	assert.Equal(t, "Maria", f.ProfessionalFamilyMembers[0].Name)

	f.ProfessionalFamilyMembers[0].Name = "X"
	assert.Equal(t, "Maria", f.HeadOfFamilyName)
}

func TestTags(t *testing.T) {
	f := newForm("H")
	e := &Editor{}
	e.Touch(f)

	require.NoError(t, e.AddSkill(f, 0, " Akuntansi "))
	require.NoError(t, e.AddSkill(f, 0, "Akuntansi"))
	require.NoError(t, e.AddSkill(f, 0, "akuntansi"))
	require.NoError(t, e.AddSkill(f, 0, "   "))
	assert.Equal(t, []string{"Akuntansi", "akuntansi"}, f.ProfessionalFamilyMembers[0].SpecificSkills)

	require.NoError(t, e.RemoveSkill(f, 0, "Akuntansi"))
	assert.Equal(t, []string{"akuntansi"}, f.ProfessionalFamilyMembers[0].SpecificSkills)

	require.NoError(t, e.AddContribution(f, 0, "Dana"))
	require.NoError(t, e.AddContribution(f, 0, "Dana"))
	require.NoError(t, e.AddContribution(f, 0, "Waktu"))
	require.NoError(t, e.RemoveContribution(f, 0, "Dana"))
	assert.Equal(t, []string{"Waktu"}, f.ProfessionalFamilyMembers[0].ContributionForm)

	assert.ErrorIs(t, e.AddSkill(f, 2, "x"), ErrIndexOutOfRange)
}
