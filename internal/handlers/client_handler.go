package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/trainer-scheduler/internal/httperr"
	"github.com/BruksfildServices01/trainer-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/trainer-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/trainer-scheduler/internal/usecase/booking"
)

type ClientHandler struct {
	getBalance *ucBooking.GetBalance
	allocate   *ucBooking.AllocateCredit
}

func NewClientHandler(getBalance *ucBooking.GetBalance, allocate *ucBooking.AllocateCredit) *ClientHandler {
	return &ClientHandler{getBalance: getBalance, allocate: allocate}
}

type AllocateCreditsRequest struct {
	Sessions int    `json:"sessions" binding:"required"`
	Reason   string `json:"reason"`
}

// ======================================================
// BALANCE
// ======================================================
func (h *ClientHandler) Balance(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, err.Error())
		return
	}

	balance, err := h.getBalance.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"client_id":          id,
		"available_sessions": balance,
	})
}

// ======================================================
// ALLOCATE (ADMIN)
// ======================================================
func (h *ClientHandler) AllocateCredits(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, err.Error())
		return
	}

	var req AllocateCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidInput, "sessions is required.")
		return
	}

	balance, err := h.allocate.Execute(c.Request.Context(), middleware.ActorFrom(c), ucBooking.AllocateCreditInput{
		ClientID: id,
		Sessions: req.Sessions,
		Reason:   req.Reason,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"client_id":          id,
		"allocated":          req.Sessions,
		"available_sessions": balance,
	})
}
