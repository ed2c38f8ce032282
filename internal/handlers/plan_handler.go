package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/httpresp"
	"github.com/clinicore/clinic-scheduler/internal/middleware"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

type PlanHandler struct {
	db *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

// --------- Requests ---------

type CreatePlanRequest struct {
	Name             string `json:"name" binding:"required"`
	PriceCents       int64  `json:"price_cents" binding:"required,gt=0"`
	AppointmentCount int    `json:"appointment_count" binding:"required,gt=0"`
	DurationDays     int    `json:"duration_days" binding:"required,gt=0"`
}

// --------- Handlers ---------

func (h *PlanHandler) Create(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	plan := models.Plan{
		DoctorID:         doctorID,
		Name:             req.Name,
		PriceCents:       req.PriceCents,
		AppointmentCount: req.AppointmentCount,
		DurationDays:     req.DurationDays,
		Active:           true,
	}

	if err := h.db.Create(&plan).Error; err != nil {
		httperr.Internal(c, "failed_to_create_plan", "Could not create the plan.")
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) ListByDoctor(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid doctor id.")
		return
	}

	var plans []models.Plan
	if err := h.db.
		Where("doctor_id = ? AND active = ?", uint(doctorID), true).
		Order("price_cents ASC").
		Find(&plans).Error; err != nil {
		httperr.Internal(c, "failed_to_list_plans", "Could not load plans.")
		return
	}

	httpresp.List(c, plans)
}
