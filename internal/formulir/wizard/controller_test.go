package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/draft"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/submission"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/validation"
	"github.com/gmit-kupang/sensus-jemaat/internal/testutil"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

type fakeBackend struct {
	mu    sync.Mutex
	id    int64
	err   error
	calls int
	block chan struct{}
}

func (b *fakeBackend) CreateCongregant(ctx context.Context, _ *models.FormAggregate) (int64, error) {
	if b.block != nil {
		<-b.block
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return b.id, b.err
}

type fixture struct {
	ctrl    *Controller
	events  *recorder
	backend *fakeBackend
	store   *draft.MemoryStore
	drafts  *draft.Persister
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := draft.NewMemoryStore()
	drafts := draft.NewPersister(store, "perangkat-1", 10*time.Millisecond, zap.NewNop())
	backend := &fakeBackend{id: 501}
	events := &recorder{}
	ctrl := New(Options{
		Drafts:    drafts,
		Submitter: submission.NewPipeline(backend, nil, zap.NewNop()),
		Notifier:  events,
		Logger:    zap.NewNop(),
	})
	return &fixture{ctrl: ctrl, events: events, backend: backend, store: store, drafts: drafts}
}

func advanceTo(t *testing.T, c *Controller, step int) {
	t.Helper()
	for c.Snapshot().Step < step {
		s, err := c.Advance(context.Background())
		require.NoError(t, err)
		if s.PendingConfirm {
			_, err = c.ResolvePendingConfirm(false)
			require.NoError(t, err)
		}
	}
}

func TestAdvance_ValidationFailureStays(t *testing.T) {
	fx := newFixture(t)

	s, err := fx.ctrl.Advance(context.Background())

	var v *validation.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "headOfFamilyName", v.Field)
	assert.Equal(t, 1, s.Step)
	ev := fx.events.last()
	assert.Equal(t, EventValidationFailed, ev.Type)
	assert.Equal(t, "headOfFamilyName", ev.Field)
	assert.NotEmpty(t, ev.Message)
}

func TestRetreat(t *testing.T) {
	fx := newFixture(t)

	s, err := fx.ctrl.Retreat()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Step)
	assert.Empty(t, fx.events.types())

	fx.ctrl.Restore(testutil.ValidForm())
	advanceTo(t, fx.ctrl, 3)

	// mundur tidak memvalidasi
	_, err = fx.ctrl.Patch([]byte(`{"headOfFamilyName":""}`))
	require.NoError(t, err)
	s, err = fx.ctrl.Retreat()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Step)
	assert.Equal(t, Backward, s.Direction)
}

func TestHappyPath_SubmitsAndClearsDraft(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.Restore(testutil.ValidForm())
	_, err := fx.ctrl.Patch([]byte(`{"address":"Jl. El Tari No. 1"}`))
	require.NoError(t, err)

	advanceTo(t, fx.ctrl, 7)
	s, err := fx.ctrl.Advance(context.Background())
	require.NoError(t, err)

	assert.True(t, s.Success)
	require.NotNil(t, s.Receipt)
	assert.Equal(t, int64(501), s.Receipt.RegistrationID)
	assert.Equal(t, EventSubmitted, fx.events.last().Type)
	assert.Equal(t, 1, fx.backend.calls)

	_, err = fx.store.Get(context.Background(), draft.DraftKey("perangkat-1"))
	assert.ErrorIs(t, err, draft.ErrNotFound)
	time.Sleep(30 * time.Millisecond)
	_, err = fx.store.Get(context.Background(), draft.DraftKey("perangkat-1"))
	assert.ErrorIs(t, err, draft.ErrNotFound, "tulis tertunda tidak boleh menghidupkan draft lagi")

	id, ok := fx.drafts.LastRegistration(context.Background())
	require.True(t, ok)
	assert.Equal(t, int64(501), id)

	_, err = fx.ctrl.Patch([]byte(`{"address":"x"}`))
	assert.ErrorIs(t, err, ErrFinished)
	_, err = fx.ctrl.Advance(context.Background())
	assert.ErrorIs(t, err, ErrFinished)
	_, err = fx.ctrl.Retreat()
	assert.ErrorIs(t, err, ErrFinished)
}

func TestSubmissionFailure_KeepsDraftAndAllowsRetry(t *testing.T) {
	fx := newFixture(t)
	fx.backend.err = errors.New("503 Service Unavailable")
	fx.ctrl.Restore(testutil.ValidForm())
	advanceTo(t, fx.ctrl, 7)
	_, err := fx.ctrl.Patch([]byte(`{"consent_selfValidation":true}`))
	require.NoError(t, err)
	fx.drafts.Flush(context.Background())

	s, err := fx.ctrl.Advance(context.Background())
	assert.ErrorIs(t, err, submission.ErrSubmissionFailed)
	assert.Equal(t, 7, s.Step)
	assert.False(t, s.Success)
	assert.False(t, s.Submitting)
	assert.Equal(t, EventSubmissionFailed, fx.events.last().Type)

	_, err = fx.store.Get(context.Background(), draft.DraftKey("perangkat-1"))
	assert.NoError(t, err)

	fx.backend.err = nil
	s, err = fx.ctrl.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, s.Success)
	assert.Equal(t, 2, fx.backend.calls)
}

func TestAdvance_RejectedWhileSubmitting(t *testing.T) {
	fx := newFixture(t)
	fx.backend.block = make(chan struct{})
	fx.ctrl.Restore(testutil.ValidForm())
	advanceTo(t, fx.ctrl, 7)

	done := make(chan error, 1)
	go func() {
		_, err := fx.ctrl.Advance(context.Background())
		done <- err
	}()
	require.Eventually(t, func() bool { return fx.ctrl.Snapshot().Submitting }, time.Second, time.Millisecond)

	_, err := fx.ctrl.Advance(context.Background())
	assert.ErrorIs(t, err, ErrSubmitting)
	_, err = fx.ctrl.Patch([]byte(`{"address":"x"}`))
	assert.ErrorIs(t, err, ErrSubmitting)

	close(fx.backend.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, fx.backend.calls)
}

func TestConsentGate(t *testing.T) {
	fx := newFixture(t)
	f := testutil.ValidForm()
	f.SelfValidation = false
	fx.ctrl.Restore(f)
	advanceTo(t, fx.ctrl, 7)

	_, err := fx.ctrl.Advance(context.Background())
	var v *validation.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "consent_selfValidation", v.Field)
	assert.Equal(t, 0, fx.backend.calls)
}

func professionalForm() *models.FormAggregate {
	f := testutil.ValidForm()
	f.WillingToServe = models.Ya
	f.ProfessionalFamilyMembers = []models.ProfessionalFamilyMember{testutil.ValidMember(f.HeadOfFamilyName)}
	return f
}

func TestStep3Gate_OncePerVisit(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.Restore(professionalForm())
	advanceTo(t, fx.ctrl, 3)

	s, err := fx.ctrl.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, s.PendingConfirm)
	assert.Equal(t, 3, s.Step)
	assert.Equal(t, EventConfirmRequested, fx.events.last().Type)

	_, err = fx.ctrl.Advance(context.Background())
	assert.ErrorIs(t, err, ErrConfirmPending)

	s, err = fx.ctrl.ResolvePendingConfirm(false)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Step)
	assert.False(t, s.PendingConfirm)

	// kunjungan baru ke langkah 3
	_, err = fx.ctrl.Retreat()
	require.NoError(t, err)
	s, err = fx.ctrl.Advance(context.Background())
	require.NoError(t, err)
	assert.True(t, s.PendingConfirm)
}

func TestStep3Gate_AddMoreKeepsEditing(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.Restore(professionalForm())
	advanceTo(t, fx.ctrl, 3)
	_, err := fx.ctrl.Advance(context.Background())
	require.NoError(t, err)

	s, err := fx.ctrl.ResolvePendingConfirm(true)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Step)
	assert.False(t, s.PendingConfirm)
	require.Len(t, s.Form.ProfessionalFamilyMembers, 2)
	require.NotNil(t, s.EditingIndex)
	assert.Equal(t, 1, *s.EditingIndex)
	assert.False(t, s.CanAddMember)

	_, err = fx.ctrl.Advance(context.Background())
	var v *validation.Violation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "professionalFamilyMembers.1.workplace", v.Field)
	assert.Contains(t, v.Message, "ke-2")

	member, err := json.Marshal(testutil.ValidMember("Maria Benu"))
	require.NoError(t, err)
	_, err = fx.ctrl.UpdateMember(1, member)
	require.NoError(t, err)
	_, err = fx.ctrl.CloseMember()
	require.NoError(t, err)

	s, err = fx.ctrl.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, s.Step, "gerbang tidak muncul dua kali dalam satu kunjungan")
}

func TestStep3Gate_SkippedWithoutMembers(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.Restore(testutil.ValidForm())
	advanceTo(t, fx.ctrl, 3)

	s, err := fx.ctrl.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, s.Step)
	assert.NotContains(t, fx.events.types(), EventConfirmRequested)

	_, err = fx.ctrl.ResolvePendingConfirm(true)
	assert.ErrorIs(t, err, ErrNoConfirm)
}

func TestPatch_MergesAndSchedulesDraft(t *testing.T) {
	fx := newFixture(t)

	s, err := fx.ctrl.Patch([]byte(`{"headOfFamilyName":"Maria","familyMembers":3}`))
	require.NoError(t, err)
	assert.Equal(t, "Maria", s.Form.HeadOfFamilyName)
	assert.Equal(t, models.Count("3"), s.Form.FamilyMembers)

	require.Eventually(t, func() bool {
		_, err := fx.store.Get(context.Background(), draft.DraftKey("perangkat-1"))
		return err == nil
	}, time.Second, 5*time.Millisecond)
}

func TestPatch_RejectsBadInput(t *testing.T) {
	fx := newFixture(t)
	for _, raw := range []string{`[1]`, `bukan json`, `{"tidakAda":1}`, `{"consent_privacyAgreement":"ya"}`} {
		_, err := fx.ctrl.Patch([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidPatch, raw)
	}
	assert.Equal(t, "", fx.ctrl.Snapshot().Form.HeadOfFamilyName)
}

func TestPatch_HeadNameFlowsToFirstMember(t *testing.T) {
	fx := newFixture(t)
	fx.ctrl.Restore(professionalForm())

	s, err := fx.ctrl.Patch([]byte(`{"headOfFamilyName":"Yohanis Benu Jr."}`))
	require.NoError(t, err)
	assert.Equal(t, "Yohanis Benu Jr.", s.Form.ProfessionalFamilyMembers[0].Name)

	s, err = fx.ctrl.Patch([]byte(`{"professionalFamilyMembers":[{"name":"Orang Lain","workplace":"Bank NTT"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Yohanis Benu Jr.", s.Form.ProfessionalFamilyMembers[0].Name)
	assert.Equal(t, "Bank NTT", s.Form.ProfessionalFamilyMembers[0].Workplace)
	assert.Equal(t, []string{}, s.Form.ProfessionalFamilyMembers[0].SpecificSkills)
}

func TestPatch_WillingnessSeedsHeadEntry(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.ctrl.Patch([]byte(`{"headOfFamilyName":"Maria"}`))
	require.NoError(t, err)

	s, err := fx.ctrl.Patch([]byte(`{"professional_willingToServe":"Ya"}`))
	require.NoError(t, err)
	require.Len(t, s.Form.ProfessionalFamilyMembers, 1)
	assert.Equal(t, "Maria", s.Form.ProfessionalFamilyMembers[0].Name)
}

func TestPatch_AssetSentinel(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.ctrl.Patch([]byte(`{"economics_assets":["Mobil","Kulkas"],"economics_assetQuantities":{"Mobil":"1","Kulkas":"2","Pesawat":"1"}}`))
	require.NoError(t, err)

	s, err := fx.ctrl.Patch([]byte(`{"economics_assets":["Mobil","Kulkas","Tidak ada"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{models.NoAsset}, s.Form.Assets)
	for _, label := range models.AssetLabels {
		assert.Equal(t, models.Count("0"), s.Form.AssetQuantities[label], label)
	}
	assert.NotContains(t, s.Form.AssetQuantities, "Pesawat")

	s, err = fx.ctrl.Patch([]byte(`{"economics_assets":["Tidak ada","Perahu"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Perahu"}, s.Form.Assets)
}

func TestPatch_DeselectedAssetQuantityZeroed(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.ctrl.ToggleAsset("Mobil", true)
	require.NoError(t, err)
	_, err = fx.ctrl.SetAssetQuantity("Mobil", "2")
	require.NoError(t, err)

	s, err := fx.ctrl.Patch([]byte(`{"economics_assets":[]}`))
	require.NoError(t, err)
	assert.Equal(t, models.Count("0"), s.Form.AssetQuantities["Mobil"])

	_, err = fx.ctrl.SetAssetQuantity("Pesawat", "1")
	assert.ErrorIs(t, err, ErrUnknownAsset)
	_, err = fx.ctrl.ToggleAsset("Pesawat", true)
	assert.ErrorIs(t, err, ErrUnknownAsset)
}

func TestPatch_BusinessRecordFollowsFlag(t *testing.T) {
	fx := newFixture(t)
	s, err := fx.ctrl.Patch([]byte(`{"economics_hasBusiness":"Ya"}`))
	require.NoError(t, err)
	require.NotNil(t, s.Form.Business)

	s, err = fx.ctrl.Patch([]byte(`{"economics_hasBusiness":"Tidak"}`))
	require.NoError(t, err)
	assert.Nil(t, s.Form.Business)
}

func TestPatch_DisabilityRules(t *testing.T) {
	fx := newFixture(t)
	s, err := fx.ctrl.Patch([]byte(`{"health_hasDisability":"Ya","health_disabilityPhysical":["Tunadaksa"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tunadaksa"}, s.Form.DisabilityPhysical)
	assert.Equal(t, []string{models.TidakAda}, s.Form.DisabilitySensory)

	s, err = fx.ctrl.Patch([]byte(`{"health_disabilityDouble":true,"health_disabilitySensory":["Tidak Ada","Tunanetra"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tunadaksa"}, s.Form.DisabilityPhysical)
	assert.Equal(t, []string{"Tunanetra"}, s.Form.DisabilitySensory)

	s, err = fx.ctrl.Patch([]byte(`{"health_disabilityDouble":false}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tunadaksa"}, s.Form.DisabilityPhysical)
	assert.Equal(t, []string{models.TidakAda}, s.Form.DisabilitySensory)

	_, err = fx.ctrl.SetDisabilityCategory("lainnya", nil)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestPatch_CannotChangeMemberCount(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.ctrl.Patch([]byte(`{"headOfFamilyName":"Maria","professional_willingToServe":"Ya"}`))
	require.NoError(t, err)
	_, err = fx.ctrl.AddMember()
	require.NoError(t, err)

	_, err = fx.ctrl.RemoveMember(0)
	require.Error(t, err)

	for _, raw := range []string{
		`{"professionalFamilyMembers":[]}`,
		`{"professionalFamilyMembers":null}`,
		`{"professionalFamilyMembers":[{"name":"Maria"}]}`,
		`{"professionalFamilyMembers":[{},{},{}]}`,
	} {
		s, err := fx.ctrl.Patch([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidPatch, raw)
		assert.Len(t, s.Form.ProfessionalFamilyMembers, 2, raw)
	}

	s, err := fx.ctrl.Patch([]byte(`{"professionalFamilyMembers":[{"name":"Anak","workplace":"RSUD Kupang"},{"name":"Maria"}]}`))
	require.NoError(t, err)
	require.Len(t, s.Form.ProfessionalFamilyMembers, 2)
	assert.Equal(t, "Maria", s.Form.ProfessionalFamilyMembers[0].Name)
	assert.Equal(t, "RSUD Kupang", s.Form.ProfessionalFamilyMembers[0].Workplace)
}

func TestPatch_QuantitiesStayZeroUnlessSelected(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.ctrl.ToggleAsset(models.NoAsset, true)
	require.NoError(t, err)

	s, err := fx.ctrl.Patch([]byte(`{"economics_assetQuantities":{"Mobil":"3"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{models.NoAsset}, s.Form.Assets)
	assert.Equal(t, models.Count("0"), s.Form.AssetQuantities["Mobil"])

	s, err = fx.ctrl.SetAssetQuantity("Mobil", "3")
	assert.ErrorIs(t, err, ErrAssetNotSelected)
	assert.Equal(t, models.Count("0"), s.Form.AssetQuantities["Mobil"])

	s, err = fx.ctrl.Patch([]byte(`{"economics_assets":["Mobil"],"economics_assetQuantities":{"Mobil":"2","Kulkas":"5"}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mobil"}, s.Form.Assets)
	assert.Equal(t, models.Count("2"), s.Form.AssetQuantities["Mobil"])
	assert.Equal(t, models.Count("0"), s.Form.AssetQuantities["Kulkas"])
}

func TestPatch_SeveralDisabilityCategoriesAtOnce(t *testing.T) {
	fx := newFixture(t)

	s, err := fx.ctrl.Patch([]byte(`{"health_hasDisability":"Ya","health_disabilityPhysical":["Tunadaksa"],"health_disabilitySensory":["Tunanetra"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tunanetra"}, s.Form.DisabilitySensory)
	assert.Equal(t, []string{models.TidakAda}, s.Form.DisabilityPhysical)

	s, err = fx.ctrl.Patch([]byte(`{"health_disabilityDouble":true,"health_disabilityPhysical":["Tunadaksa"],"health_disabilitySensory":["Tunanetra"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tunadaksa"}, s.Form.DisabilityPhysical)
	assert.Equal(t, []string{"Tunanetra"}, s.Form.DisabilitySensory)
}

func TestMemberOperations(t *testing.T) {
	fx := newFixture(t)
	_, err := fx.ctrl.Patch([]byte(`{"headOfFamilyName":"Yohanis"}`))
	require.NoError(t, err)

	s, err := fx.ctrl.AddMember()
	require.NoError(t, err)
	require.Len(t, s.Form.ProfessionalFamilyMembers, 1)
	assert.Equal(t, "Yohanis", s.Form.ProfessionalFamilyMembers[0].Name)

	_, err = fx.ctrl.AddMember()
	assert.Error(t, err)

	_, err = fx.ctrl.CloseMember()
	require.NoError(t, err)
	_, err = fx.ctrl.AddMember()
	require.NoError(t, err)

	_, err = fx.ctrl.AddSkill(1, "Menjahit")
	require.NoError(t, err)
	_, err = fx.ctrl.AddContribution(1, "Tenaga")
	require.NoError(t, err)
	s, err = fx.ctrl.RemoveSkill(1, "Menjahit")
	require.NoError(t, err)
	assert.Empty(t, s.Form.ProfessionalFamilyMembers[1].SpecificSkills)
	s, err = fx.ctrl.RemoveContribution(1, "Tenaga")
	require.NoError(t, err)
	assert.Empty(t, s.Form.ProfessionalFamilyMembers[1].ContributionForm)

	_, err = fx.ctrl.RemoveMember(0)
	assert.Error(t, err)
	s, err = fx.ctrl.RemoveMember(1)
	require.NoError(t, err)
	assert.Len(t, s.Form.ProfessionalFamilyMembers, 1)
	assert.Nil(t, s.EditingIndex)

	_, err = fx.ctrl.EditMember(0)
	require.NoError(t, err)
	_, err = fx.ctrl.UpdateMember(0, []byte(`{"name":"Bukan Kepala","position":"Guru"}`))
	require.NoError(t, err)
	s = fx.ctrl.Snapshot()
	assert.Equal(t, "Yohanis", s.Form.ProfessionalFamilyMembers[0].Name)
	assert.Equal(t, "Guru", s.Form.ProfessionalFamilyMembers[0].Position)

	_, err = fx.ctrl.UpdateMember(4, []byte(`{}`))
	assert.Error(t, err)
}

func TestRestore_ThroughPersister(t *testing.T) {
	fx := newFixture(t)
	saved := professionalForm()
	fx.drafts.Schedule(saved)
	fx.drafts.Flush(context.Background())

	fresh := New(Options{Drafts: fx.drafts, Notifier: fx.events})
	ok := fx.drafts.Restore(context.Background(), models.NewFormAggregate(), fresh.Restore)
	require.True(t, ok)

	s := fresh.Snapshot()
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, saved, s.Form)
	assert.Equal(t, EventDraftRestored, fx.events.last().Type)
}

func TestSnapshotIsACopy(t *testing.T) {
	fx := newFixture(t)
	s := fx.ctrl.Snapshot()
	s.Form.HeadOfFamilyName = "diubah"
	assert.Equal(t, "", fx.ctrl.Snapshot().Form.HeadOfFamilyName)
}
