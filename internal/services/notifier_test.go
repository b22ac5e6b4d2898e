package services

import (
	"testing"

	"github.com/drivehive/drivehive-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newNotifierTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func TestNotifierPersistsAlert(t *testing.T) {
	db := newNotifierTestDB(t)
	n := NewNotifier(db)
	go n.Run()
	defer n.Close()

	n.Enqueue(BookingAlert{
		ReceiverID: 7,
		SenderID:   3,
		Title:      "New Booking Alert",
		Body:       "A customer has booked your car.",
		Type:       "partner",
		BookingID:  42,
	})
	n.Wait()

	var stored models.Notification
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, uint(7), stored.ReceiverID)
	assert.Equal(t, uint(3), stored.SenderID)
	assert.Equal(t, "partner", stored.Type)
	require.NotNil(t, stored.BookingID)
	assert.Equal(t, uint(42), *stored.BookingID)
	assert.False(t, stored.IsRead)
}

func TestNotifierDropsIncompleteAlert(t *testing.T) {
	db := newNotifierTestDB(t)
	n := NewNotifier(db)
	go n.Run()
	defer n.Close()

	// Missing title and body: logged and dropped, nothing persisted
	n.Enqueue(BookingAlert{ReceiverID: 7, Type: "partner", BookingID: 42})
	n.Wait()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestNotifierWaitCoversQueuedBacklog(t *testing.T) {
	db := newNotifierTestDB(t)
	n := NewNotifier(db)

	for i := 1; i <= 5; i++ {
		n.Enqueue(BookingAlert{
			ReceiverID: uint(i),
			Title:      "Ping",
			Body:       "Queued before the worker started",
			Type:       "customer",
			BookingID:  uint(i),
		})
	}
	go n.Run()
	defer n.Close()
	n.Wait()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)
}
