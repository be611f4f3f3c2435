package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/draft"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/models"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/submission"
	"github.com/gmit-kupang/sensus-jemaat/internal/formulir/wizard"
	"github.com/gmit-kupang/sensus-jemaat/ws"
)

var (
	ErrSessionNotFound = errors.New("sesi formulir tidak ditemukan")
	ErrDeviceRequired  = errors.New("deviceId wajib diisi")
)

// Session adalah satu pengisian formulir yang sedang berjalan.
type Session struct {
	ID         string
	DeviceID   string
	CreatedAt  time.Time
	Restored   bool
	Controller *wizard.Controller
	Hub        *ws.Hub
	Drafts     *draft.Persister

	lastSeen atomic.Int64
}

func (s *Session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

// LastSeen adalah waktu terakhir sesi diakses.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// SessionService menyimpan sesi wizard di memori.
type SessionService struct {
	store    draft.Store
	pipeline *submission.Pipeline
	debounce time.Duration
	log      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionService(store draft.Store, pipeline *submission.Pipeline, debounce time.Duration, log *zap.Logger) *SessionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionService{
		store:    store,
		pipeline: pipeline,
		debounce: debounce,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// logNotifier mencatat event sebelum diteruskan ke hub.
type logNotifier struct {
	next wizard.Notifier
	log  *zap.Logger
}

func (n logNotifier) Notify(e wizard.Event) {
	n.log.Debug("wizard event",
		zap.String("type", string(e.Type)),
		zap.Int("step", e.Step),
		zap.String("field", e.Field),
	)
	n.next.Notify(e)
}

// Create membuka sesi baru untuk perangkat dan memulihkan draft-nya bila ada.
func (s *SessionService) Create(ctx context.Context, deviceID string) (*Session, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrDeviceRequired
	}

	id := uuid.NewString()
	log := s.log.With(zap.String("session_id", id), zap.String("device_id", deviceID))

	hub := ws.NewHub(log)
	go hub.Run()

	drafts := draft.NewPersister(s.store, deviceID, s.debounce, log)
	opts := wizard.Options{
		Drafts:   drafts,
		Notifier: logNotifier{next: hub, log: log},
		Logger:   log,
	}
	if s.pipeline != nil {
		opts.Submitter = s.pipeline
	}
	ctrl := wizard.New(opts)

	sess := &Session{
		ID:         id,
		DeviceID:   deviceID,
		CreatedAt:  time.Now(),
		Controller: ctrl,
		Hub:        hub,
		Drafts:     drafts,
	}
	sess.touch()
	sess.Restored = drafts.Restore(ctx, models.NewFormAggregate(), ctrl.Restore)

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	log.Info("sesi formulir dibuka", zap.Bool("restored", sess.Restored))
	return sess, nil
}

func (s *SessionService) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess, nil
}

// Close menulis draft yang tertunda lalu menutup sesi.
func (s *SessionService) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.Controller.Flush(ctx)
	sess.Hub.Stop()
	s.log.Info("sesi formulir ditutup", zap.String("session_id", id))
	return nil
}

// CloseAll dipakai saat server berhenti.
func (s *SessionService) CloseAll(ctx context.Context) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	for _, id := range ids {
		_ = s.Close(ctx, id)
	}
}

// Sweep menutup sesi yang tidak diakses selama maxIdle.
func (s *SessionService) Sweep(ctx context.Context, maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	s.mu.RLock()
	var stale []string
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()
	for _, id := range stale {
		_ = s.Close(ctx, id)
	}
	return len(stale)
}

// LastRegistration mengembalikan ID pendaftaran terakhir sebuah perangkat.
func (s *SessionService) LastRegistration(ctx context.Context, deviceID string) (int64, bool) {
	return draft.NewPersister(s.store, deviceID, s.debounce, s.log).LastRegistration(ctx)
}

// Count mengembalikan jumlah sesi aktif.
func (s *SessionService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
