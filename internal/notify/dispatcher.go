package notify

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicore/clinic-scheduler/internal/models"
)

// Message is one in-app notification, optionally mirrored to email when
// the recipient's address is known.
type Message struct {
	RecipientType string
	RecipientID   uint
	Type          string
	Text          string

	Email        string
	EmailSubject string
}

// Dispatcher persists notifications and sends emails off the request path.
// Delivery is fire-and-forget: a full queue drops the message rather than
// slowing the API.
type Dispatcher struct {
	db     *gorm.DB
	mailer Mailer
	logger *zap.Logger
	queue  chan Message
}

func NewDispatcher(db *gorm.DB, mailer Mailer, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		db:     db,
		mailer: mailer,
		logger: logger,
		queue:  make(chan Message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		n := models.Notification{
			RecipientType: msg.RecipientType,
			RecipientID:   msg.RecipientID,
			Type:          msg.Type,
			Message:       msg.Text,
		}
		if err := d.db.Create(&n).Error; err != nil {
			d.logger.Warn("notification persist failed",
				zap.String("type", msg.Type),
				zap.Error(err),
			)
		}

		if msg.Email == "" || d.mailer == nil {
			continue
		}
		if err := d.mailer.Send(msg.Email, msg.EmailSubject, msg.Text); err != nil {
			d.logger.Warn("notification email failed",
				zap.String("type", msg.Type),
				zap.Error(err),
			)
		}
	}
}

// Dispatch enqueues msg. A nil dispatcher silently drops it.
func (d *Dispatcher) Dispatch(msg Message) {
	if d == nil {
		return
	}
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn("notification queue full, dropping message",
			zap.String("type", msg.Type),
		)
	}
}
