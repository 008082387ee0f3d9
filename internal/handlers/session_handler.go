package handlers

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/trainer-scheduler/internal/actor"
	"github.com/BruksfildServices01/trainer-scheduler/internal/domain/recurrence"
	domain "github.com/BruksfildServices01/trainer-scheduler/internal/domain/session"
	"github.com/BruksfildServices01/trainer-scheduler/internal/dto"
	"github.com/BruksfildServices01/trainer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/trainer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/trainer-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/trainer-scheduler/internal/usecase/booking"
	ucSession "github.com/BruksfildServices01/trainer-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

type SessionHandler struct {
	bookRecurring    *ucBooking.BookRecurring
	bookSingle       *ucBooking.BookSingle
	getSession       *ucSession.GetSession
	preview          *ucSession.EvaluateCancellation
	cancel           *ucSession.Cancel
	cancelGroup      *ucSession.CancelGroup
	confirm          *ucSession.Confirm
	recordAttendance *ucSession.RecordAttendance
	waiveNoShow      *ucSession.WaiveNoShow
	report           *ucSession.GetAttendanceReport
	reschedule       *ucSession.Reschedule
	listGroups       *ucSession.ListRecurringGroups
}

type SessionUseCases struct {
	BookRecurring    *ucBooking.BookRecurring
	BookSingle       *ucBooking.BookSingle
	GetSession       *ucSession.GetSession
	Preview          *ucSession.EvaluateCancellation
	Cancel           *ucSession.Cancel
	CancelGroup      *ucSession.CancelGroup
	Confirm          *ucSession.Confirm
	RecordAttendance *ucSession.RecordAttendance
	WaiveNoShow      *ucSession.WaiveNoShow
	Report           *ucSession.GetAttendanceReport
	Reschedule       *ucSession.Reschedule
	ListGroups       *ucSession.ListRecurringGroups
}

func NewSessionHandler(uc SessionUseCases) *SessionHandler {
	return &SessionHandler{
		bookRecurring:    uc.BookRecurring,
		bookSingle:       uc.BookSingle,
		getSession:       uc.GetSession,
		preview:          uc.Preview,
		cancel:           uc.Cancel,
		cancelGroup:      uc.CancelGroup,
		confirm:          uc.Confirm,
		recordAttendance: uc.RecordAttendance,
		waiveNoShow:      uc.WaiveNoShow,
		report:           uc.Report,
		reschedule:       uc.Reschedule,
		listGroups:       uc.ListGroups,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRecurringRequest struct {
	ClientID        uint     `json:"client_id"`
	TrainerID       uint     `json:"trainer_id" binding:"required"`
	StartDate       string   `json:"start_date" binding:"required"`
	Weekdays        []string `json:"weekdays"`
	Time            string   `json:"time" binding:"required"`
	Occurrences     int      `json:"occurrences"`
	Timezone        string   `json:"timezone"`
	DurationMinutes int      `json:"duration_minutes"`
}

type BookSessionRequest struct {
	ClientID        uint   `json:"client_id"`
	TrainerID       uint   `json:"trainer_id" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Timezone        string `json:"timezone"`
	DurationMinutes int    `json:"duration_minutes"`
}

type CancelRequest struct {
	Reason        string `json:"reason"`
	ConfirmedLate bool   `json:"confirmed_late"`
}

type RescheduleRequest struct {
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Timezone      string `json:"timezone"`
	ConfirmedLate bool   `json:"confirmed_late"`
}

type AttendanceRequest struct {
	Status     string     `json:"status" binding:"required"`
	Reason     string     `json:"reason"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
}

type WaiveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

// clientFor lets a client omit client_id when booking for themselves.
func clientFor(by actor.Actor, requested uint) uint {
	if requested == 0 && by.Role == actor.RoleClient {
		return by.ID
	}
	return requested
}

func bookingResponse(res *ucBooking.BookingResult) dto.BookingDTO {
	return dto.BookingDTO{
		GroupID:    res.GroupID,
		SessionIDs: res.SessionIDs(),
		Sessions:   dto.FromSessions(res.Sessions),
		Balance:    res.Balance,
	}
}

func invalidInput(c *gin.Context, message string) {
	httperr.BadRequest(c, httperr.CodeInvalidInput, message)
}

// bindOptionalJSON accepts an empty body whatever its framing.
func bindOptionalJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ======================================================
// BOOK
// ======================================================

func (h *SessionHandler) BookRecurring(c *gin.Context) {
	by := middleware.ActorFrom(c)

	var req BookRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid request body.")
		return
	}

	loc, err := location(req.Timezone)
	if err != nil {
		invalidInput(c, err.Error())
		return
	}
	startDate, err := parseDate(req.StartDate, loc)
	if err != nil {
		invalidInput(c, "start_date must be YYYY-MM-DD.")
		return
	}
	tod, err := recurrence.ParseTimeOfDay(req.Time)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	weekdays, err := parseWeekdays(req.Weekdays)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidPattern, err.Error())
		return
	}

	res, err := h.bookRecurring.Execute(c.Request.Context(), by, ucBooking.BookRecurringInput{
		ClientID:  clientFor(by, req.ClientID),
		TrainerID: req.TrainerID,
		Pattern: recurrence.Pattern{
			StartDate:   startDate,
			Weekdays:    weekdays,
			TimeOfDay:   tod,
			Occurrences: req.Occurrences,
			Location:    loc,
		},
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, bookingResponse(res))
}

func (h *SessionHandler) Book(c *gin.Context) {
	by := middleware.ActorFrom(c)

	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid request body.")
		return
	}

	loc, err := location(req.Timezone)
	if err != nil {
		invalidInput(c, err.Error())
		return
	}
	start, err := parseDateTime(req.Date, req.Time, loc)
	if err != nil {
		invalidInput(c, "date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	res, err := h.bookSingle.Execute(c.Request.Context(), by, ucBooking.BookSingleInput{
		ClientID:        clientFor(by, req.ClientID),
		TrainerID:       req.TrainerID,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, bookingResponse(res))
}

// ======================================================
// READ
// ======================================================

func (h *SessionHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	s, err := h.getSession.Execute(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(*s))
}

func (h *SessionHandler) CancelPreview(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	p, err := h.preview.Execute(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *SessionHandler) ListRecurring(c *gin.Context) {
	clientID, err := parseUintQuery(c, "client_id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}
	var id uint
	if clientID != nil {
		id = *clientID
	}

	groups, err := h.listGroups.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"groups": groups})
}

func (h *SessionHandler) AttendanceReport(c *gin.Context) {
	trainerID, err := parseUintQuery(c, "trainer_id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}
	clientID, err := parseUintQuery(c, "client_id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}
	from, err := parseDateQuery(c, "from")
	if err != nil {
		invalidInput(c, "from must be YYYY-MM-DD.")
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		invalidInput(c, "to must be YYYY-MM-DD.")
		return
	}

	rep, err := h.report.Execute(c.Request.Context(), middleware.ActorFrom(c), ucSession.ReportFilter{
		TrainerID: trainerID,
		ClientID:  clientID,
		From:      from,
		To:        to,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, rep)
}

// ======================================================
// CANCEL
// ======================================================

func (h *SessionHandler) Cancel(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	var req CancelRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		invalidInput(c, "Invalid request body.")
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), id, middleware.ActorFrom(c), ucSession.CancelInput{
		Reason:        req.Reason,
		ConfirmedLate: req.ConfirmedLate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"session":          dto.FromSession(*res.Session),
		"is_late":          res.IsLate,
		"late_fee_applied": res.LateFeeApplied,
		"fee_amount":       res.FeeAmount.StringFixed(2),
		"credit_restored":  res.CreditRestored,
		"balance":          res.Balance,
	})
}

func (h *SessionHandler) CancelGroup(c *gin.Context) {
	groupID := c.Param("groupId")
	confirmedLate, _ := strconv.ParseBool(c.Query("confirmed_late"))

	res, err := h.cancelGroup.Execute(c.Request.Context(), groupID, middleware.ActorFrom(c), ucSession.CancelInput{
		Reason:        c.Query("reason"),
		ConfirmedLate: confirmedLate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"group_id":         res.GroupID,
		"cancelled":        dto.FromSessions(res.Cancelled),
		"skipped":          res.Skipped,
		"credits_restored": res.CreditsRestored,
		"late_fee_total":   res.LateFeeTotal,
		"balance":          res.Balance,
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *SessionHandler) Reschedule(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "date and time are required.")
		return
	}
	loc, err := location(req.Timezone)
	if err != nil {
		invalidInput(c, err.Error())
		return
	}
	start, err := parseDateTime(req.Date, req.Time, loc)
	if err != nil {
		invalidInput(c, "date must be YYYY-MM-DD and time HH:MM.")
		return
	}

	res, err := h.reschedule.Execute(c.Request.Context(), id, middleware.ActorFrom(c), ucSession.RescheduleInput{
		Start:         start,
		ConfirmedLate: req.ConfirmedLate,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"session":         dto.FromSession(*res.Session),
		"previous_start":  res.PreviousStart,
		"is_late":         res.IsLate,
		"credit_deducted": res.CreditDeducted,
		"balance":         res.Balance,
	})
}

// ======================================================
// CONFIRM / ATTENDANCE
// ======================================================

func (h *SessionHandler) Confirm(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	s, err := h.confirm.Execute(c.Request.Context(), id, middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(*s))
}

func (h *SessionHandler) RecordAttendance(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	var req AttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "Invalid request body.")
		return
	}

	status, err := domain.ParseAttendanceStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	s, err := h.recordAttendance.Execute(c.Request.Context(), id, middleware.ActorFrom(c), ucSession.AttendanceInput{
		Status:     status,
		Reason:     req.Reason,
		CheckInAt:  req.CheckInAt,
		CheckOutAt: req.CheckOutAt,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromSession(*s))
}

func (h *SessionHandler) WaiveNoShow(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		invalidInput(c, err.Error())
		return
	}

	var req WaiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidInput(c, "reason is required.")
		return
	}

	res, err := h.waiveNoShow.Execute(c.Request.Context(), id, middleware.ActorFrom(c), req.Reason)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"session": dto.FromSession(*res.Session),
		"balance": res.Balance,
	})
}
