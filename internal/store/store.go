// Package store owns persisted message state: idempotent ingest, filtered
// listing and aggregate statistics.
package store

import (
	"fmt"
	"time"

	"github.com/hooksink/hooksink/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsertOutcome reports what an insert attempt did.
type InsertOutcome int

const (
	// Created means a new row was written.
	Created InsertOutcome = iota
	// DuplicateIgnored means a row with the same message_id already existed
	// and the attempt left the store unchanged.
	DuplicateIgnored
)

// Insert writes a message keyed by its message_id. The uniqueness check and
// the write are a single statement (INSERT ... ON CONFLICT DO NOTHING), so
// two concurrent inserts of the same id cannot race into two rows: one
// creates, the other reports DuplicateIgnored.
func Insert(conn *gorm.DB, msg *models.Message) (InsertOutcome, error) {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	result := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}},
		DoNothing: true,
	}).Create(msg)
	if result.Error != nil {
		return Created, fmt.Errorf("store: insert %s: %w", msg.MessageID, result.Error)
	}
	if result.RowsAffected == 0 {
		return DuplicateIgnored, nil
	}
	return Created, nil
}
