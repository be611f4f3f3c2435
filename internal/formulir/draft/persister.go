package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
)

// DefaultDelay adalah jeda debounce sebelum draft ditulis.
const DefaultDelay = 800 * time.Millisecond

const writeTimeout = 5 * time.Second

// Persister menulis draft satu perangkat secara debounce. Kegagalan
// penyimpanan hanya dicatat; sesi tetap berjalan dari memori.
type Persister struct {
	store  Store
	key    string
	regKey string
	delay  time.Duration
	log    *zap.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte
	gen     uint64

	// io menyerialkan tulis dan hapus agar Clear tidak tertimpa tulis yang telat.
	io sync.Mutex
}

func NewPersister(store Store, deviceID string, delay time.Duration, log *zap.Logger) *Persister {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Persister{
		store:  store,
		key:    DraftKey(deviceID),
		regKey: RegistrationKey(deviceID),
		delay:  delay,
		log:    log.With(zap.String("draft_key", DraftKey(deviceID))),
	}
}

// Schedule mengambil salinan formulir sekarang dan menulisnya setelah jeda.
// Panggilan baru membatalkan jadwal sebelumnya.
func (p *Persister) Schedule(f *models.FormAggregate) {
	raw, err := json.Marshal(f)
	if err != nil {
		p.log.Error("gagal serialisasi draft", zap.Error(err))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = raw
	p.gen++
	gen := p.gen
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.delay, func() { p.fire(gen) })
}

// Pending melaporkan apakah masih ada draft yang menunggu ditulis.
func (p *Persister) Pending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending != nil
}

func (p *Persister) fire(gen uint64) {
	p.io.Lock()
	defer p.io.Unlock()

	p.mu.Lock()
	if gen != p.gen || p.pending == nil {
		p.mu.Unlock()
		return
	}
	raw := p.pending
	p.pending = nil
	p.timer = nil
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	p.write(ctx, raw)
}

func (p *Persister) write(ctx context.Context, raw []byte) {
	if err := p.store.Set(ctx, p.key, raw); err != nil {
		p.log.Warn("gagal menyimpan draft", zap.Error(err))
		return
	}
	p.log.Debug("draft tersimpan", zap.Int("bytes", len(raw)))
}

// take membatalkan timer dan mengambil snapshot yang menunggu.
func (p *Persister) take() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	raw := p.pending
	p.pending = nil
	return raw
}

// Flush langsung menulis draft yang masih menunggu.
func (p *Persister) Flush(ctx context.Context) {
	raw := p.take()
	if raw == nil {
		return
	}
	p.io.Lock()
	defer p.io.Unlock()
	p.write(ctx, raw)
}

// Clear membatalkan tulis yang menunggu lalu menghapus draft.
func (p *Persister) Clear(ctx context.Context) {
	p.take()
	p.io.Lock()
	defer p.io.Unlock()
	if err := p.store.Delete(ctx, p.key); err != nil {
		p.log.Warn("gagal menghapus draft", zap.Error(err))
	}
}

// Restore membaca draft sekali. Bila isinya objek JSON, draft ditimpakan di atas
// salinan defaults lalu diserahkan ke onRestore. Draft rusak diabaikan.
func (p *Persister) Restore(ctx context.Context, defaults *models.FormAggregate, onRestore func(*models.FormAggregate)) bool {
	raw, err := p.store.Get(ctx, p.key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		p.log.Warn("gagal membaca draft", zap.Error(err))
		return false
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		p.log.Warn("draft bukan objek JSON, diabaikan")
		return false
	}

	f := defaults.Clone()
	if err := json.Unmarshal(trimmed, f); err != nil {
		p.log.Warn("draft rusak, diabaikan", zap.Error(err))
		return false
	}
	f.Normalize()
	onRestore(f)
	return true
}

// RememberRegistration menyimpan ID pendaftaran terakhir untuk cek status.
func (p *Persister) RememberRegistration(ctx context.Context, id int64) {
	if err := p.store.Set(ctx, p.regKey, []byte(strconv.FormatInt(id, 10))); err != nil {
		p.log.Warn("gagal menyimpan ID pendaftaran", zap.Int64("id", id), zap.Error(err))
	}
}

// LastRegistration mengembalikan ID pendaftaran terakhir perangkat ini.
func (p *Persister) LastRegistration(ctx context.Context) (int64, bool) {
	raw, err := p.store.Get(ctx, p.regKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.Warn("gagal membaca ID pendaftaran", zap.Error(err))
		}
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
