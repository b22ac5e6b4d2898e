package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	ReceiverID uint     `json:"receiverId" gorm:"column:receiver_id;not null;index"`
	SenderID   uint     `json:"senderId" gorm:"column:sender_id"`
	Title      string   `json:"title" gorm:"column:title;not null"`
	Body       string   `json:"body" gorm:"column:body;not null"`
	BookingID  *uint    `json:"bookingId" gorm:"column:booking_id;index"`
	Booking    *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Type       string   `json:"type" gorm:"column:type;not null"`
	IsRead     bool     `json:"isRead" gorm:"column:is_read;not null;default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}
