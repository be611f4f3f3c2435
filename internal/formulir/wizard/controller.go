// Package wizard menjalankan mesin langkah formulir sensus: langkah aktif,
// gerbang konfirmasi di langkah 3, validasi per langkah, dan pengiriman akhir.
package wizard

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/members"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/submission"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/validation"
)

// Direction hanya petunjuk transisi untuk lapisan tampilan.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// ProfessionalStep adalah langkah yang memiliki gerbang konfirmasi.
const ProfessionalStep = 3

var (
	ErrFinished         = errors.New("formulir sudah terkirim")
	ErrSubmitting       = errors.New("formulir sedang dikirim")
	ErrConfirmPending   = errors.New("jawab konfirmasi terlebih dahulu")
	ErrNoConfirm        = errors.New("tidak ada konfirmasi yang menunggu")
	ErrInvalidPatch     = errors.New("isi perubahan tidak valid")
	ErrUnknownAsset     = errors.New("jenis aset tidak dikenal")
	ErrAssetNotSelected = errors.New("pilih aset terlebih dahulu sebelum mengisi jumlah")
	ErrUnknownCategory  = errors.New("kategori disabilitas tidak dikenal")
)

// Drafts adalah penyimpanan draft yang dipakai controller.
type Drafts interface {
	submission.Drafts
	Schedule(f *models.FormAggregate)
}

// Submitter mengirim formulir final.
type Submitter interface {
	Submit(ctx context.Context, f *models.FormAggregate, drafts submission.Drafts) (*submission.Receipt, error)
}

type Options struct {
	Drafts    Drafts
	Submitter Submitter
	Notifier  Notifier
	Logger    *zap.Logger
}

// Controller memegang satu formulir yang sedang diisi. Semua method aman
// dipanggil bersamaan.
type Controller struct {
	mu sync.Mutex

	form           *models.FormAggregate
	step           int
	direction      Direction
	submitting     bool
	success        bool
	pendingConfirm bool
	confirmShown   bool
	editor         members.Editor
	receipt        *submission.Receipt

	drafts    Drafts
	submitter Submitter
	notifier  Notifier
	log       *zap.Logger
}

func New(opts Options) *Controller {
	c := &Controller{
		form:      models.NewFormAggregate(),
		step:      1,
		direction: Forward,
		drafts:    opts.Drafts,
		submitter: opts.Submitter,
		notifier:  opts.Notifier,
		log:       opts.Logger,
	}
	if c.notifier == nil {
		c.notifier = nopNotifier{}
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Snapshot adalah salinan keadaan controller untuk ditampilkan.
type Snapshot struct {
	Step           int                   `json:"step"`
	Direction      Direction             `json:"direction"`
	Submitting     bool                  `json:"submitting"`
	Success        bool                  `json:"success"`
	PendingConfirm bool                  `json:"pendingConfirm"`
	EditingIndex   *int                  `json:"editingIndex"`
	CanAddMember   bool                  `json:"canAddMember"`
	TotalExpense   int                   `json:"totalExpense"`
	Form           *models.FormAggregate `json:"form"`
	Receipt        *submission.Receipt   `json:"receipt,omitempty"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := Snapshot{
		Step:           c.step,
		Direction:      c.direction,
		Submitting:     c.submitting,
		Success:        c.success,
		PendingConfirm: c.pendingConfirm,
		CanAddMember:   c.editor.CanAdd(),
		TotalExpense:   c.form.TotalExpense(),
		Form:           c.form.Clone(),
		Receipt:        c.receipt,
	}
	if idx, ok := c.editor.EditingIndex(); ok {
		s.EditingIndex = &idx
	}
	return s
}

// Restore mengganti formulir dengan hasil pemulihan draft.
func (c *Controller) Restore(f *models.FormAggregate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.success || c.submitting {
		return
	}
	c.form = f
	c.form.Normalize()
	c.editor.Close()
	c.editor.SyncHead(c.form)
	c.notifier.Notify(Event{Type: EventDraftRestored, Step: c.step, Message: msgDraftRestored})
}

func (c *Controller) guardLocked() error {
	if c.success {
		return ErrFinished
	}
	if c.submitting {
		return ErrSubmitting
	}
	return nil
}

func (c *Controller) moveLocked(step int, dir Direction) {
	if c.step == ProfessionalStep && step != ProfessionalStep {
		c.confirmShown = false
	}
	c.step = step
	c.direction = dir
	c.notifier.Notify(Event{Type: EventStepChanged, Step: step, Direction: dir})
}

// Advance memvalidasi langkah aktif lalu maju satu langkah. Di langkah 7,
// Advance mengirim formulir. Pelanggaran validasi dikembalikan sebagai
// *validation.Violation.
func (c *Controller) Advance(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		defer c.mu.Unlock()
		return c.snapshotLocked(), err
	}
	if c.pendingConfirm {
		defer c.mu.Unlock()
		return c.snapshotLocked(), ErrConfirmPending
	}

	if v := validation.Validate(c.step, c.form); v != nil {
		defer c.mu.Unlock()
		c.notifier.Notify(Event{Type: EventValidationFailed, Step: c.step, Field: v.Field, Message: v.Message})
		return c.snapshotLocked(), v
	}

	if c.step == ProfessionalStep && len(c.form.ProfessionalFamilyMembers) > 0 && !c.confirmShown {
		defer c.mu.Unlock()
		c.pendingConfirm = true
		c.confirmShown = true
		c.notifier.Notify(Event{Type: EventConfirmRequested, Step: c.step, Message: msgConfirmMoreMembers})
		return c.snapshotLocked(), nil
	}

	if c.step < validation.StepCount {
		defer c.mu.Unlock()
		c.moveLocked(c.step+1, Forward)
		return c.snapshotLocked(), nil
	}

	c.submitting = true
	form := c.form.Clone()
	c.mu.Unlock()

	receipt, err := c.submit(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.log.Warn("pengiriman gagal, draft dipertahankan", zap.Error(err))
		c.notifier.Notify(Event{Type: EventSubmissionFailed, Step: c.step, Message: msgSubmissionFailed})
		return c.snapshotLocked(), err
	}
	c.success = true
	c.receipt = receipt
	c.notifier.Notify(Event{
		Type:           EventSubmitted,
		Step:           c.step,
		Message:        msgSubmitted,
		RegistrationID: receipt.RegistrationID,
	})
	return c.snapshotLocked(), nil
}

func (c *Controller) submit(ctx context.Context, form *models.FormAggregate) (*submission.Receipt, error) {
	if c.submitter == nil {
		return nil, submission.ErrSubmissionFailed
	}
	var drafts submission.Drafts
	if c.drafts != nil {
		drafts = c.drafts
	}
	return c.submitter.Submit(ctx, form, drafts)
}

// Retreat mundur satu langkah tanpa validasi. Tidak berbuat apa-apa di langkah 1.
func (c *Controller) Retreat() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guardLocked(); err != nil {
		return c.snapshotLocked(), err
	}
	if c.step > 1 {
		c.pendingConfirm = false
		c.moveLocked(c.step-1, Backward)
	}
	return c.snapshotLocked(), nil
}

// ResolvePendingConfirm menjawab konfirmasi langkah 3. addMore menambah entri
// kosong dan tetap di langkah 3; selain itu maju ke langkah 4.
func (c *Controller) ResolvePendingConfirm(addMore bool) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guardLocked(); err != nil {
		return c.snapshotLocked(), err
	}
	if !c.pendingConfirm {
		return c.snapshotLocked(), ErrNoConfirm
	}
	c.pendingConfirm = false
	if addMore {
		c.editor.Close()
		if _, err := c.editor.Add(c.form); err != nil {
			return c.snapshotLocked(), err
		}
		c.scheduleLocked()
		return c.snapshotLocked(), nil
	}
	c.moveLocked(ProfessionalStep+1, Forward)
	return c.snapshotLocked(), nil
}

// Receipt mengembalikan bukti pendaftaran setelah pengiriman sukses.
func (c *Controller) Receipt() (*submission.Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.receipt, c.receipt != nil
}

// Flush menulis draft yang masih menunggu, dipakai saat sesi ditutup.
func (c *Controller) Flush(ctx context.Context) {
	type flusher interface{ Flush(ctx context.Context) }
	if fl, ok := c.drafts.(flusher); ok {
		fl.Flush(ctx)
	}
}

func (c *Controller) scheduleLocked() {
	if c.drafts != nil {
		c.drafts.Schedule(c.form)
	}
}

// mutate menjalankan fn pada formulir lalu menjadwalkan penyimpanan draft.
func (c *Controller) mutate(fn func(f *models.FormAggregate) error) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.guardLocked(); err != nil {
		return c.snapshotLocked(), err
	}
	if err := fn(c.form); err != nil {
		return c.snapshotLocked(), err
	}
	c.scheduleLocked()
	return c.snapshotLocked(), nil
}
