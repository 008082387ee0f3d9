package session

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/trainer-scheduler/internal/models"
)

// -------- Ledger --------

// Ledger reasons written to the credit journal.
const (
	ReasonBooking         = "booking"
	ReasonCancellation    = "cancellation"
	ReasonNoShowWaiver    = "no_show_waiver"
	ReasonLateReschedule  = "late_reschedule"
	ReasonAdminAllocation = "admin_allocation"
)

type LedgerEntry struct {
	Reason    string
	SessionID *uint
	GroupID   *string
	// Note is free text kept on the journal row.
	Note string
}

// Ledger is the only writer of a client's session balance.
type Ledger interface {
	// Debit locks the balance row, fails with *InsufficientCreditError when
	// balance < amount, and returns the new balance.
	Debit(ctx context.Context, clientID uint, amount int, entry LedgerEntry) (int, error)

	Credit(ctx context.Context, clientID uint, amount int, entry LedgerEntry) (int, error)

	Balance(ctx context.Context, clientID uint) (int, error)
}

// -------- Session store --------

type NewSession struct {
	ClientID   uint
	TrainerID  uint
	Start      time.Time
	Duration   time.Duration
	GroupID    *string
	CreditCost int
}

// Transition carries the columns written together with a status change.
// Nil fields are left untouched.
type Transition struct {
	At time.Time

	ConfirmedBy *uint

	CancelledBy        *uint
	CancellationReason *string
	LateFeeApplied     *bool
	LateFeeAmount      *decimal.Decimal
	CreditRestored     *bool

	AttendanceStatus     *AttendanceStatus
	AttendanceRecordedBy *uint
	CheckInAt            *time.Time
	CheckOutAt           *time.Time
	NoShowReason         *string
}

type AttendanceFilter struct {
	TrainerID *uint
	ClientID  *uint
	From      *time.Time
	To        *time.Time
}

type AttendanceCounts struct {
	Present int
	Late    int
	NoShow  int
}

func (c AttendanceCounts) Total() int {
	return c.Present + c.Late + c.NoShow
}

type Store interface {
	// CreateSession inserts a scheduled session; *SlotConflictError when the
	// trainer already has an overlapping session in an occupying status.
	CreateSession(ctx context.Context, in NewSession) (*models.Session, error)

	// FindConflicts returns the starts that overlap an occupying session of
	// the trainer, locking the rows it reads.
	FindConflicts(ctx context.Context, trainerID uint, starts []time.Time, duration time.Duration) ([]time.Time, error)

	// RescheduleSession moves a session that is still in from and still
	// starts at oldStart to newStart, keeping its duration. The session
	// does not conflict with itself. *SlotConflictError when the trainer
	// is busy at newStart, ErrConflictingState when the row changed.
	RescheduleSession(ctx context.Context, id uint, from Status, oldStart, newStart time.Time) (*models.Session, error)

	GetSession(ctx context.Context, id uint) (*models.Session, error)

	// TransitionStatus is a compare-and-swap on the status column:
	// ErrConflictingState when the row is no longer in from.
	TransitionStatus(ctx context.Context, id uint, from, to Status, t Transition) (*models.Session, error)

	// MarkNoShowCreditRestored flips credit_restored once for a no-show.
	MarkNoShowCreditRestored(ctx context.Context, id uint, by uint, reason string, at time.Time) (*models.Session, error)

	ListGroup(ctx context.Context, groupID string) ([]models.Session, error)

	// ListClientGroups returns every recurring session of the client,
	// ordered by group and start.
	ListClientGroups(ctx context.Context, clientID uint) ([]models.Session, error)

	AttendanceCounts(ctx context.Context, f AttendanceFilter) (AttendanceCounts, error)
}

// -------- Unit of work --------

// Tx is the view of the repository bound to one database transaction.
type Tx interface {
	Ledger
	Store
}

type Repository interface {
	Tx

	// WithinTx runs fn in a single transaction; any error rolls back every
	// ledger and session mutation fn made.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
