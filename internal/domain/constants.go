package domain

// Default values
const (
	// DefaultServiceDurationMinutes длительность для записей без привязанной услуги
	DefaultServiceDurationMinutes = 30

	// DefaultSearchLimit лимит поиска по умолчанию
	DefaultSearchLimit = 20

	// MaxSearchLimit максимальный размер страницы поиска
	MaxSearchLimit = 100
)

// Appointment code constants
const (
	// CodePrefix префикс кода записи
	CodePrefix = "LH"

	// CodeDateFormat дата внутри кода записи (ГГММДД)
	CodeDateFormat = "060102"

	// MaxCodeGenerationAttempts ограничение на повторную генерацию при коллизии кода
	MaxCodeGenerationAttempts = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// MaxNotesLength ограничение на длину заметок
const MaxNotesLength = 500

// ValidStatuses полный набор статусов записи
// Переходы между статусами не ограничены, проверяется только принадлежность набору
var ValidStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

// ReminderStatuses статусы записей, по которым отправляются напоминания
var ReminderStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}

// IsValidStatus проверяет принадлежность статуса набору ValidStatuses
func IsValidStatus(status AppointmentStatus) bool {
	for _, valid := range ValidStatuses {
		if status == valid {
			return true
		}
	}
	return false
}
