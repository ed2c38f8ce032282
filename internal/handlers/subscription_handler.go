package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	subdomain "github.com/clinicore/clinic-scheduler/internal/domain/subscription"
	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/middleware"
	"github.com/clinicore/clinic-scheduler/internal/models"
	ucsubscription "github.com/clinicore/clinic-scheduler/internal/usecase/subscription"
)

type SubscriptionHandler struct {
	db         *gorm.DB
	purchaseUC *ucsubscription.PurchaseSubscription
	cancelUC   *ucsubscription.CancelSubscription
}

func NewSubscriptionHandler(
	db *gorm.DB,
	purchaseUC *ucsubscription.PurchaseSubscription,
	cancelUC *ucsubscription.CancelSubscription,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		db:         db,
		purchaseUC: purchaseUC,
		cancelUC:   cancelUC,
	}
}

// --------- Requests ---------

type PurchaseSubscriptionRequest struct {
	PlanID uint `json:"plan_id" binding:"required"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason"`
}

// --------- Handlers ---------

func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var req PurchaseSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	sub, err := h.purchaseUC.Execute(c.Request.Context(), patientID, req.PlanID)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	subscriptionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid subscription id.")
		return
	}

	var req CancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.cancelUC.Execute(c.Request.Context(), uint(subscriptionID), patientID, req.Reason); err != nil {
		httperr.From(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMine returns the patient's subscriptions with the displayed
// remaining count clamped at zero.
func (h *SubscriptionHandler) ListMine(c *gin.Context) {
	patientID := c.MustGet(middleware.ContextUserID).(uint)

	var subs []models.PatientSubscription
	if err := h.db.Preload("Plan").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_subscriptions", "Could not load subscriptions.")
		return
	}

	out := make([]gin.H, 0, len(subs))
	for i := range subs {
		out = append(out, gin.H{
			"subscription":      subs[i],
			"appointments_left": subdomain.RemainingForDisplay(&subs[i]),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": out, "total": len(out)})
}
