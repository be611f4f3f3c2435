package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/draft"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/testutil"
)

type fakeBackend struct {
	id    int64
	err   error
	calls int
	got   *models.FormAggregate
}

func (b *fakeBackend) CreateCongregant(_ context.Context, f *models.FormAggregate) (int64, error) {
	b.calls++
	b.got = f
	return b.id, b.err
}

func newDrafts(t *testing.T) (*draft.MemoryStore, *draft.Persister) {
	t.Helper()
	store := draft.NewMemoryStore()
	p := draft.NewPersister(store, "perangkat-1", 10*time.Millisecond, zap.NewNop())
	return store, p
}

func TestSubmit_Success(t *testing.T) {
	store, drafts := newDrafts(t)
	form := testutil.ValidForm()
	drafts.Schedule(form)
	drafts.Flush(context.Background())

	var receipts []Receipt
	backend := &fakeBackend{id: 77}
	p := NewPipeline(backend, func(_ context.Context, r Receipt) { receipts = append(receipts, r) }, zap.NewNop())
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	r, err := p.Submit(context.Background(), form, drafts)
	require.NoError(t, err)
	assert.Equal(t, int64(77), r.RegistrationID)
	assert.Equal(t, fixed, r.SubmittedAt)
	assert.Equal(t, form, r.Form)
	assert.Equal(t, 1, backend.calls)
	require.Len(t, receipts, 1)
	assert.Equal(t, int64(77), receipts[0].RegistrationID)

	_, err = store.Get(context.Background(), draft.DraftKey("perangkat-1"))
	assert.ErrorIs(t, err, draft.ErrNotFound)
	id, ok := drafts.LastRegistration(context.Background())
	require.True(t, ok)
	assert.Equal(t, int64(77), id)
}

func TestSubmit_ReceiptIsSnapshot(t *testing.T) {
	_, drafts := newDrafts(t)
	form := testutil.ValidForm()
	p := NewPipeline(&fakeBackend{id: 1}, nil, nil)

	r, err := p.Submit(context.Background(), form, drafts)
	require.NoError(t, err)
	form.HeadOfFamilyName = "diubah"
	assert.Equal(t, "Yohanis Benu", r.Form.HeadOfFamilyName)
}

func TestSubmit_FailureLeavesDraft(t *testing.T) {
	store, drafts := newDrafts(t)
	form := testutil.ValidForm()
	drafts.Schedule(form)
	drafts.Flush(context.Background())

	called := false
	cause := errors.New("connection refused")
	p := NewPipeline(&fakeBackend{err: cause}, func(context.Context, Receipt) { called = true }, zap.NewNop())

	r, err := p.Submit(context.Background(), form, drafts)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.ErrorIs(t, err, cause)
	assert.False(t, called)

	_, err = store.Get(context.Background(), draft.DraftKey("perangkat-1"))
	assert.NoError(t, err)
	_, ok := drafts.LastRegistration(context.Background())
	assert.False(t, ok)
}
