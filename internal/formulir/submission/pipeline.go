// Package submission mengirim formulir yang sudah lengkap ke backend jemaat.
package submission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

// ErrSubmissionFailed membungkus semua kegagalan pengiriman.
var ErrSubmissionFailed = errors.New("gagal mengirim data")

// Backend menerima satu formulir utuh dan mengembalikan ID pendaftaran.
type Backend interface {
	CreateCongregant(ctx context.Context, f *models.FormAggregate) (int64, error)
}

// Drafts adalah bagian penyimpanan draft yang disentuh setelah pengiriman sukses.
type Drafts interface {
	Clear(ctx context.Context)
	RememberRegistration(ctx context.Context, id int64)
}

// Receipt adalah bukti pendaftaran yang diteruskan ke halaman sukses.
type Receipt struct {
	RegistrationID int64                 `json:"registrationId"`
	Form           *models.FormAggregate `json:"form"`
	SubmittedAt    time.Time             `json:"submittedAt"`
}

// ReceiptHandler menerima bukti setelah pengiriman sukses.
type ReceiptHandler func(ctx context.Context, r Receipt)

type Pipeline struct {
	backend  Backend
	receipts ReceiptHandler
	log      *zap.Logger
	now      func() time.Time
}

func NewPipeline(backend Backend, receipts ReceiptHandler, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{backend: backend, receipts: receipts, log: log, now: time.Now}
}

// Submit mengirim seluruh formulir satu kali, tanpa percobaan ulang. Bila
// gagal, draft dibiarkan utuh agar pengguna bisa mencoba lagi.
func (p *Pipeline) Submit(ctx context.Context, f *models.FormAggregate, drafts Drafts) (*Receipt, error) {
	snapshot := f.Clone()

	id, err := p.backend.CreateCongregant(ctx, snapshot)
	if err != nil {
		p.log.Error("pengiriman formulir gagal",
			zap.String("kepala_keluarga", snapshot.HeadOfFamilyName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, err)
	}

	receipt := Receipt{RegistrationID: id, Form: snapshot, SubmittedAt: p.now()}
	if drafts != nil {
		drafts.Clear(ctx)
		drafts.RememberRegistration(ctx, id)
	}
	p.log.Info("formulir terkirim", zap.Int64("registration_id", id))

	if p.receipts != nil {
		p.receipts(ctx, receipt)
	}
	return &receipt, nil
}
