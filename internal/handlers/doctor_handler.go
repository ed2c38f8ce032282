package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-scheduler/internal/httperr"
	"github.com/clinicore/clinic-scheduler/internal/infra/storage"
	"github.com/clinicore/clinic-scheduler/internal/media"
	"github.com/clinicore/clinic-scheduler/internal/middleware"
	"github.com/clinicore/clinic-scheduler/internal/models"
)

const avatarMaxDim = 512

type DoctorHandler struct {
	db       *gorm.DB
	uploader *storage.S3Uploader
}

func NewDoctorHandler(db *gorm.DB, uploader *storage.S3Uploader) *DoctorHandler {
	return &DoctorHandler{db: db, uploader: uploader}
}

// --------- Requests ---------

type UpdateDoctorRequest struct {
	Phone             *string `json:"phone"`
	Specialty         *string `json:"specialty"`
	AllowsFreeBooking *bool   `json:"allows_free_booking"`
}

// --------- Handlers ---------

func (h *DoctorHandler) GetMe(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var doc models.Doctor
	if err := h.db.First(&doc, doctorID).Error; err != nil {
		httperr.NotFound(c, "doctor_not_found", "Doctor not found.")
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (h *DoctorHandler) UpdateMe(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	updates := map[string]any{}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.AllowsFreeBooking != nil {
		updates["allows_free_booking"] = *req.AllowsFreeBooking
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "empty_update", "Nothing to update.")
		return
	}

	if err := h.db.Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_doctor", "Could not update the profile.")
		return
	}

	var doc models.Doctor
	h.db.First(&doc, doctorID)
	c.JSON(http.StatusOK, doc)
}

// UploadAvatar converts the uploaded image to WebP and stores it in the
// media bucket.
func (h *DoctorHandler) UploadAvatar(c *gin.Context) {
	doctorID := c.MustGet(middleware.ContextUserID).(uint)

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "An avatar file is required.")
		return
	}
	defer file.Close()

	encoded, err := media.ToWebP(file, avatarMaxDim)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file must be a JPEG or PNG image.")
		return
	}

	objectKey := "avatars/" + uuid.NewString() + ".webp"

	url, err := h.uploader.Upload(c.Request.Context(), objectKey, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the avatar.")
		return
	}

	if err := h.db.Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Update("avatar_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_doctor", "Could not save the avatar URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
