package models

import "time"

// Message is a single ingested webhook event. MessageID is supplied by the
// producer and acts as the idempotency key: the primary key constraint is
// what collapses duplicate deliveries into one row.
//
// Ts holds the validated Z-suffixed ISO-8601 string exactly as the producer
// sent it. Every accepted value is UTC in the same textual form, so
// lexicographic comparison in SQL matches chronological order.
type Message struct {
	MessageID  string    `gorm:"primaryKey;size:255;column:message_id" json:"message_id"`
	FromMSISDN string    `gorm:"size:64;not null;index;column:from_msisdn" json:"from"`
	ToMSISDN   string    `gorm:"size:64;not null;column:to_msisdn" json:"to"`
	Ts         string    `gorm:"size:64;not null;index;column:ts" json:"ts"`
	Text       string    `gorm:"type:text" json:"text"`

	// CreatedAt is the receipt timestamp assigned at insert. It is kept for
	// observability only and is not part of any read contract.
	CreatedAt time.Time `json:"-"`
}
