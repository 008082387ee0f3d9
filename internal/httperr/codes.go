package httperr

// ===============================
// Business error codes
// ===============================

const (
	CodeInvalidInput             = "invalid_input"
	CodeInvalidPattern           = "invalid_pattern"
	CodeUnauthorized             = "unauthorized"
	CodeNotFound                 = "session_not_found"
	CodeClientNotFound           = "client_not_found"
	CodeInsufficientCredit       = "insufficient_credit"
	CodeSlotConflict             = "slot_conflict"
	CodeConflictingState         = "conflicting_state"
	CodeConflict                 = "conflict"
	CodeAlreadyFinalized         = "already_finalized"
	CodeInvalidTransition        = "invalid_transition"
	CodeLateConfirmationRequired = "late_confirmation_required"
	CodeBusy                     = "busy"
)
