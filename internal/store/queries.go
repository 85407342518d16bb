package store

import (
	"fmt"
	"strings"

	"github.com/hooksink/hooksink/internal/models"
	"gorm.io/gorm"
)

// Pagination bounds for List. Out-of-range values are clamped by the HTTP
// layer, never rejected.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// ListFilter holds the optional message filters. All set fields are combined
// with AND.
type ListFilter struct {
	From  string // exact match on sender
	Since string // inclusive lower bound on ts (Z-suffixed ISO-8601)
	Q     string // case-insensitive substring match on text
}

// filtered applies f to a fresh messages query.
func filtered(conn *gorm.DB, f ListFilter) *gorm.DB {
	q := conn.Model(&models.Message{})
	if f.From != "" {
		q = q.Where("from_msisdn = ?", f.From)
	}
	if f.Since != "" {
		q = q.Where("ts >= ?", f.Since)
	}
	if f.Q != "" {
		q = q.Where("LOWER(text) LIKE ?", "%"+strings.ToLower(f.Q)+"%")
	}
	return q
}

// List returns one page of messages matching f together with the total
// number of matching rows ignoring limit/offset. Ordering is ts ascending
// with message_id as tie-break, so the result order is a stable total order
// even when many rows share a timestamp.
func List(conn *gorm.DB, f ListFilter, limit, offset int) ([]models.Message, int64, error) {
	var total int64
	if err := filtered(conn, f).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("store: count messages: %w", err)
	}

	msgs := make([]models.Message, 0, limit)
	if err := filtered(conn, f).
		Order("ts ASC, message_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&msgs).Error; err != nil {
		return nil, 0, fmt.Errorf("store: list messages: %w", err)
	}
	return msgs, total, nil
}
