package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hooksink/hooksink/internal/metrics"
	"github.com/hooksink/hooksink/internal/signature"
	"github.com/hooksink/hooksink/internal/store"
)

var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// handleWebhook is the ingestion pipeline: signature check, schema
// validation, idempotent insert. The signature is always verified before the
// body is parsed, so malformed payloads from unauthenticated callers are
// rejected without exposing any parsing behavior. Created and duplicate both
// answer 200 so that client retries converge on success.
func handleWebhook(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "could not read request body"})
			return
		}
		// The signature covers the exact raw bytes; the BOM is stripped only
		// for JSON parsing.
		rawJSON := bytes.TrimPrefix(raw, utf8BOM)

		// Best-effort message_id for the request log, available even when
		// the request is rejected before validation.
		if id := peekMessageID(rawJSON); id != "" {
			c.Set(ctxMessageID, id)
		}

		secret := opts.Config.WebhookSecret
		if secret == "" {
			c.Set(ctxResult, "missing_secret")
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "webhook secret not configured"})
			return
		}

		if !signature.Verify(secret, raw, c.GetHeader("X-Signature")) {
			opts.Metrics.IncWebhook(metrics.ResultInvalidSignature)
			c.Set(ctxResult, metrics.ResultInvalidSignature)
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "invalid signature"})
			return
		}

		msg, fieldErrs := parsePayload(rawJSON)
		if len(fieldErrs) > 0 {
			opts.Metrics.IncWebhook(metrics.ResultValidationError)
			c.Set(ctxResult, metrics.ResultValidationError)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fieldErrs})
			return
		}
		c.Set(ctxMessageID, msg.MessageID)

		outcome, err := store.Insert(opts.DB, msg)
		if err != nil {
			c.Set(ctxResult, "storage_error")
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "storage unavailable"})
			return
		}

		result := metrics.ResultCreated
		if outcome == store.DuplicateIgnored {
			result = metrics.ResultDuplicate
		}
		opts.Metrics.IncWebhook(result)
		c.Set(ctxResult, result)
		c.Set(ctxDup, outcome == store.DuplicateIgnored)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// peekMessageID extracts message_id from an arbitrary JSON body without
// validating it. Returns "" when the body is not an object or the field is
// not a string.
func peekMessageID(rawJSON []byte) string {
	var probe struct {
		MessageID json.RawMessage `json:"message_id"`
	}
	if err := json.Unmarshal(rawJSON, &probe); err != nil {
		return ""
	}
	var id string
	if err := json.Unmarshal(probe.MessageID, &id); err != nil {
		return ""
	}
	return id
}
