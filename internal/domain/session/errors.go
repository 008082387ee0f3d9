package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/trainer-scheduler/internal/httperr"
)

// Sentinel errors. BusinessError is comparable, so errors.Is matches any
// wrapped value with the same code.
var (
	ErrInvalidInput             = httperr.ErrBusiness(httperr.CodeInvalidInput)
	ErrUnauthorized             = httperr.ErrBusiness(httperr.CodeUnauthorized)
	ErrNotFound                 = httperr.ErrBusiness(httperr.CodeNotFound)
	ErrClientNotFound           = httperr.ErrBusiness(httperr.CodeClientNotFound)
	ErrInsufficientCredit       = httperr.ErrBusiness(httperr.CodeInsufficientCredit)
	ErrSlotConflict             = httperr.ErrBusiness(httperr.CodeSlotConflict)
	ErrConflictingState         = httperr.ErrBusiness(httperr.CodeConflictingState)
	ErrConflict                 = httperr.ErrBusiness(httperr.CodeConflict)
	ErrAlreadyFinalized         = httperr.ErrBusiness(httperr.CodeAlreadyFinalized)
	ErrInvalidTransition        = httperr.ErrBusiness(httperr.CodeInvalidTransition)
	ErrLateConfirmationRequired = httperr.ErrBusiness(httperr.CodeLateConfirmationRequired)
	ErrBusy                     = httperr.ErrBusiness(httperr.CodeBusy)
)

// InsufficientCreditError reports the shortfall of a rejected debit.
type InsufficientCreditError struct {
	ClientID  uint
	Available int
	Requested int
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("%s: client %d has %d session(s), %d requested",
		httperr.CodeInsufficientCredit, e.ClientID, e.Available, e.Requested)
}

func (e *InsufficientCreditError) Unwrap() error {
	return ErrInsufficientCredit
}

func (e *InsufficientCreditError) Details() any {
	return map[string]int{
		"available": e.Available,
		"requested": e.Requested,
	}
}

// SlotConflictError lists every requested instant the trainer already has
// booked, so the caller can pick other times.
type SlotConflictError struct {
	TrainerID uint
	Instants  []time.Time
}

func (e *SlotConflictError) Error() string {
	parts := make([]string, 0, len(e.Instants))
	for _, at := range e.Instants {
		parts = append(parts, at.Format(time.RFC3339))
	}
	return fmt.Sprintf("%s: trainer %d is not free at %s",
		httperr.CodeSlotConflict, e.TrainerID, strings.Join(parts, ", "))
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}

func (e *SlotConflictError) Details() any {
	return map[string]any{
		"trainer_id":           e.TrainerID,
		"conflicting_instants": e.Instants,
	}
}
