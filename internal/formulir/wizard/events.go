package wizard

// EventType membedakan jenis notifikasi yang dikirim controller.
type EventType string

const (
	EventValidationFailed EventType = "validation_failed"
	EventConfirmRequested EventType = "confirm_requested"
	EventStepChanged      EventType = "step_changed"
	EventSubmitted        EventType = "submitted"
	EventSubmissionFailed EventType = "submission_failed"
	EventDraftRestored    EventType = "draft_restored"
)

// Event adalah sinyal ke lapisan tampilan. Field menunjuk isian yang perlu
// difokuskan bila ada.
type Event struct {
	Type           EventType `json:"type"`
	Step           int       `json:"step"`
	Direction      Direction `json:"direction,omitempty"`
	Field          string    `json:"field,omitempty"`
	Message        string    `json:"message,omitempty"`
	RegistrationID int64     `json:"registrationId,omitempty"`
}

// Notifier menerima event dari controller. Implementasi tidak boleh memblokir.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc mengadaptasi fungsi biasa menjadi Notifier.
type NotifierFunc func(e Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

const (
	msgConfirmMoreMembers = "Apakah masih ada anggota keluarga lain yang memiliki keahlian profesional?"
	msgSubmissionFailed   = "Gagal mengirim data. Silakan coba lagi."
	msgSubmitted          = "Data berhasil dikirim. Terima kasih."
	msgDraftRestored      = "Draft sebelumnya berhasil dipulihkan."
)
