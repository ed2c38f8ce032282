package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/httpresp"
	"github.com/clinicore/clinic-scheduler/internal/middleware"
	ucbooking "github.com/clinicore/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC     *ucbooking.BookAppointment
	cancelUC   *ucbooking.CancelAppointment
	completeUC *ucbooking.CompleteAppointment
	freeUC     *ucbooking.CheckFreeBooking
	listUC     *ucbooking.ListAppointments
}

func NewAppointmentHandler(
	bookUC *ucbooking.BookAppointment,
	cancelUC *ucbooking.CancelAppointment,
	completeUC *ucbooking.CompleteAppointment,
	freeUC *ucbooking.CheckFreeBooking,
	listUC *ucbooking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:     bookUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
		freeUC:     freeUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookAppointmentRequest struct {
	DoctorID      uint   `json:"doctor_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	IsFreeBooking bool   `json:"is_free_booking"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type CompleteAppointmentRequest struct {
	PrescriptionID *uint `json:"prescription_id"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := dateutil.ParseDay(req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	ap, err := h.bookUC.Execute(c.Request.Context(), ucbooking.BookAppointmentInput{
		PatientID:     patientID,
		DoctorID:      req.DoctorID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		IsFreeBooking: req.IsFreeBooking,
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) CancelByPatient(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)
	h.cancel(c, ucbooking.CancelAppointmentInput{RequesterPatientID: &patientID})
}

func (h *AppointmentHandler) CancelByDoctor(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)
	h.cancel(c, ucbooking.CancelAppointmentInput{RequesterDoctorID: &doctorID})
}

func (h *AppointmentHandler) cancel(c *gin.Context, in ucbooking.CancelAppointmentInput) {
	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in.AppointmentID = uint(appointmentID)
	in.Reason = req.Reason

	if err := h.cancelUC.Execute(c.Request.Context(), in); err != nil {
		httperr.From(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), uint(appointmentID), doctorID, req.PrescriptionID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// FREE-BOOKING PRE-FLIGHT
// ======================================================

func (h *AppointmentHandler) CheckFreeBooking(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	if err := h.freeUC.Execute(c.Request.Context(), patientID, uint(doctorID)); err != nil {
		if httperr.IsKind(err, httperr.KindValidation) {
			c.JSON(http.StatusOK, gin.H{"eligible": false, "reason": err.Error()})
			return
		}
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"eligible": true})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListForDoctor(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	now := dateutil.NowUTC()
	from, err := parseDayQuery(c, "from", now.AddDate(0, -1, 0))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
		return
	}
	to, err := parseDayQuery(c, "to", now.AddDate(0, 1, 0))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
		return
	}

	out, err := h.listUC.ForDoctor(c.Request.Context(), doctorID, from, to)
	if err != nil {
		httperr.From(c, err)
		return
	}
	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListForPatient(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	now := dateutil.NowUTC()
	from, err := parseDayQuery(c, "from", now.AddDate(0, -1, 0))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD.")
		return
	}
	to, err := parseDayQuery(c, "to", now.AddDate(0, 1, 0))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD.")
		return
	}

	out, err := h.listUC.ForPatient(c.Request.Context(), patientID, from, to)
	if err != nil {
		httperr.From(c, err)
		return
	}
	httpresp.List(c, out)
}
