package services

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/drivehive/drivehive-backend/internal/models"
	"gorm.io/gorm"
)

// BookingAlert is one notification side effect of a booking mutation: an
// in-app record for the receiver plus a push to their devices.
type BookingAlert struct {
	ReceiverID   uint
	SenderID     uint
	Title        string
	Body         string
	Type         string
	BookingID    uint
	DeviceTokens []string
	Data         map[string]string
}

// Notifier delivers booking alerts off the request path. Handlers enqueue
// after the authoritative write commits; delivery failures are logged and
// never reach the HTTP response.
type Notifier struct {
	db    *gorm.DB
	tasks chan BookingAlert
	wg    sync.WaitGroup
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{
		db:    db,
		tasks: make(chan BookingAlert, 64),
	}
}

// Run drains the queue. Call it once, in its own goroutine.
func (n *Notifier) Run() {
	for alert := range n.tasks {
		if err := n.deliver(alert); err != nil {
			log.Printf("Error delivering booking notification to %d: %v", alert.ReceiverID, err)
		}
		n.wg.Done()
	}
}

func (n *Notifier) Enqueue(alert BookingAlert) {
	n.wg.Add(1)
	n.tasks <- alert
}

// Wait blocks until every alert enqueued so far has been processed.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) Close() {
	close(n.tasks)
}

func (n *Notifier) deliver(alert BookingAlert) error {
	if alert.ReceiverID == 0 || alert.Title == "" || alert.Body == "" || alert.Type == "" || alert.BookingID == 0 {
		return errors.New("receiverId, title, body, type and bookingId are required")
	}

	bookingID := alert.BookingID
	notification := models.Notification{
		ReceiverID: alert.ReceiverID,
		SenderID:   alert.SenderID,
		Title:      alert.Title,
		Body:       alert.Body,
		BookingID:  &bookingID,
		Type:       alert.Type,
	}
	if err := n.db.Create(&notification).Error; err != nil {
		return err
	}

	SendPushNotification(context.Background(), alert.DeviceTokens, alert.Title, alert.Body, alert.Data)
	return nil
}
