package store

import (
	"database/sql"
	"fmt"

	"github.com/hooksink/hooksink/internal/models"
	"gorm.io/gorm"
)

// topSenders caps the messages_per_sender breakdown.
const topSenders = 10

// SenderCount is one entry of the per-sender breakdown.
type SenderCount struct {
	From  string `json:"from"`
	Count int64  `json:"count"`
}

// Stats is an aggregate snapshot over all stored messages. The timestamp
// bounds are nil, not zero values, when the store is empty.
type Stats struct {
	TotalMessages     int64         `json:"total_messages"`
	SendersCount      int64         `json:"senders_count"`
	MessagesPerSender []SenderCount `json:"messages_per_sender"`
	FirstMessageTs    *string       `json:"first_message_ts"`
	LastMessageTs     *string       `json:"last_message_ts"`
}

// ComputeStats gathers the aggregate snapshot. The top-sender list is
// ordered count descending with sender ascending as tie-break, which makes
// the output deterministic.
func ComputeStats(conn *gorm.DB) (*Stats, error) {
	stats := &Stats{MessagesPerSender: make([]SenderCount, 0, topSenders)}

	if err := conn.Model(&models.Message{}).Count(&stats.TotalMessages).Error; err != nil {
		return nil, fmt.Errorf("store: count total: %w", err)
	}

	if err := conn.Model(&models.Message{}).
		Distinct("from_msisdn").
		Count(&stats.SendersCount).Error; err != nil {
		return nil, fmt.Errorf("store: count senders: %w", err)
	}

	type senderRow struct {
		FromMSISDN string `gorm:"column:from_msisdn"`
		Count      int64  `gorm:"column:count"`
	}
	var rows []senderRow
	if err := conn.Model(&models.Message{}).
		Select("from_msisdn, COUNT(*) AS count").
		Group("from_msisdn").
		Order("count DESC, from_msisdn ASC").
		Limit(topSenders).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("store: top senders: %w", err)
	}
	for _, r := range rows {
		stats.MessagesPerSender = append(stats.MessagesPerSender, SenderCount{From: r.FromMSISDN, Count: r.Count})
	}

	var first, last sql.NullString
	row := conn.Model(&models.Message{}).
		Select("MIN(ts), MAX(ts)").
		Row()
	if err := row.Scan(&first, &last); err != nil {
		return nil, fmt.Errorf("store: timestamp bounds: %w", err)
	}
	if first.Valid {
		stats.FirstMessageTs = &first.String
	}
	if last.Valid {
		stats.LastMessageTs = &last.String
	}
	return stats, nil
}
