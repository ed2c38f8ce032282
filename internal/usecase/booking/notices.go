package booking

import (
	"fmt"
	"time"

	"github.com/clinicore/clinic-scheduler/internal/dateutil"
	domain "github.com/clinicore/clinic-scheduler/internal/domain/booking"
	"github.com/clinicore/clinic-scheduler/internal/models"
	"github.com/clinicore/clinic-scheduler/internal/notify"
)

// The helpers below build the per-party messages for a booking event. They
// take references so callers that already resolved the records pass them
// along, and ones that only have ids still work.

func slotLabel(date time.Time, start, end string) string {
	return fmt.Sprintf("%s %s-%s", date.Format(dateutil.DayLayout), start, end)
}

func bookingNotices(
	doctor domain.Reference[models.Doctor],
	patient domain.Reference[models.Patient],
	ap *models.Appointment,
) []notify.Message {

	label := slotLabel(ap.Date, ap.StartTime, ap.EndTime)

	doctorName := "your doctor"
	var doctorEmail string
	if doc, ok := doctor.Record(); ok {
		doctorName = doc.Name
		doctorEmail = doc.Email
	}

	patientName := "a patient"
	var patientEmail string
	if pat, ok := patient.Record(); ok {
		patientName = pat.Name
		patientEmail = pat.Email
	}

	return []notify.Message{
		{
			RecipientType: models.RecipientPatient,
			RecipientID:   patient.ID(),
			Type:          "appointment_booked",
			Text:          fmt.Sprintf("Your appointment with %s on %s is confirmed.", doctorName, label),
			Email:         patientEmail,
			EmailSubject:  "Appointment confirmed",
		},
		{
			RecipientType: models.RecipientDoctor,
			RecipientID:   doctor.ID(),
			Type:          "appointment_booked",
			Text:          fmt.Sprintf("%s booked %s.", patientName, label),
			Email:         doctorEmail,
			EmailSubject:  "New appointment",
		},
	}
}

func cancellationNotices(
	doctor domain.Reference[models.Doctor],
	patient domain.Reference[models.Patient],
	ap *models.Appointment,
) []notify.Message {

	label := slotLabel(ap.Date, ap.StartTime, ap.EndTime)

	var doctorEmail, patientEmail string
	if doc, ok := doctor.Record(); ok {
		doctorEmail = doc.Email
	}
	if pat, ok := patient.Record(); ok {
		patientEmail = pat.Email
	}

	text := fmt.Sprintf("The appointment on %s was cancelled.", label)
	if ap.CancellationReason != "" {
		text = fmt.Sprintf("%s Reason: %s", text, ap.CancellationReason)
	}

	return []notify.Message{
		{
			RecipientType: models.RecipientPatient,
			RecipientID:   patient.ID(),
			Type:          "appointment_cancelled",
			Text:          text,
			Email:         patientEmail,
			EmailSubject:  "Appointment cancelled",
		},
		{
			RecipientType: models.RecipientDoctor,
			RecipientID:   doctor.ID(),
			Type:          "appointment_cancelled",
			Text:          text,
			Email:         doctorEmail,
			EmailSubject:  "Appointment cancelled",
		},
	}
}
