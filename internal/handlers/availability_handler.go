package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/middleware"
	"github.com/clinicore/clinic-scheduler/internal/models"
	ucavailability "github.com/clinicore/clinic-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	setUC    *ucavailability.SetAvailability
	removeUC *ucavailability.RemoveSlot
	updateUC *ucavailability.UpdateSlot
	getUC    *ucavailability.GetAvailability
}

func NewAvailabilityHandler(
	setUC *ucavailability.SetAvailability,
	removeUC *ucavailability.RemoveSlot,
	updateUC *ucavailability.UpdateSlot,
	getUC *ucavailability.GetAvailability,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		setUC:    setUC,
		removeUC: removeUC,
		updateUC: updateUC,
		getUC:    getUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type slotRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type SetAvailabilityRequest struct {
	Date  string        `json:"date" binding:"required"`
	Slots []slotRequest `json:"slots" binding:"required"`

	Recurring        bool   `json:"recurring"`
	RecurringEndDate string `json:"recurring_end_date"`
	RecurringDays    []int  `json:"recurring_days"`
}

type UpdateSlotRequest struct {
	Slot   slotRequest `json:"slot" binding:"required"`
	Reason string      `json:"reason"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AvailabilityHandler) Set(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	in := ucavailability.SetAvailabilityInput{
		DoctorID:  doctorID,
		Date:      date,
		Recurring: req.Recurring,
	}

	for _, s := range req.Slots {
		in.Slots = append(in.Slots, models.TimeSlot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		})
	}

	if req.Recurring {
		end, err := dateutil.ParseDay(req.RecurringEndDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Recurring end date must be YYYY-MM-DD.")
			return
		}
		in.RecurringEndDate = end
		for _, d := range req.RecurringDays {
			in.RecurringDays = append(in.RecurringDays, time.Weekday(d))
		}
	}

	result, err := h.setUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *AvailabilityHandler) RemoveSlot(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	availabilityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid availability id.")
		return
	}
	slotIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_index", "Invalid slot index.")
		return
	}

	if err := h.removeUC.Execute(
		c.Request.Context(),
		uint(availabilityID),
		slotIndex,
		doctorID,
		c.Query("reason"),
	); err != nil {
		httperr.From(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AvailabilityHandler) UpdateSlot(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	availabilityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid availability id.")
		return
	}
	slotIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_index", "Invalid slot index.")
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	av, err := h.updateUC.Execute(
		c.Request.Context(),
		uint(availabilityID),
		slotIndex,
		models.TimeSlot{StartTime: req.Slot.StartTime, EndTime: req.Slot.EndTime},
		doctorID,
		req.Reason,
	)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, av)
}

// Get serves the public doctor calendar. free_only=true hides slots that
// are already booked.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	now := dateutil.NowUTC()

	from, err := parseDayQuery(c, "from", now)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
		return
	}
	to, err := parseDayQuery(c, "to", now.AddDate(0, 0, 7))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
		return
	}

	filterBooked := c.Query("free_only") == "true"

	days, err := h.getUC.Execute(c.Request.Context(), uint(doctorID), from, to, filterBooked)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availabilities": days})
}
