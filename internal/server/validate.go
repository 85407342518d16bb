package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hooksink/hooksink/internal/models"
)

// maxTextLength caps the message body.
const maxTextLength = 4096

// fieldError mirrors the wire shape of a single validation failure.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func bodyError(field, msg string) fieldError {
	return fieldError{Loc: []string{"body", field}, Msg: msg, Type: "value_error"}
}

// webhookPayload is the explicit shape contract for POST /webhook bodies.
// Pointer fields distinguish "absent" from "zero".
type webhookPayload struct {
	MessageID *string `json:"message_id"`
	From      *string `json:"from"`
	To        *string `json:"to"`
	Ts        *string `json:"ts"`
	Text      *string `json:"text"`
}

// parsePayload validates rawJSON against the webhook shape and returns the
// message to persist, or the list of field errors.
func parsePayload(rawJSON []byte) (*models.Message, []fieldError) {
	var payload webhookPayload
	if err := json.Unmarshal(rawJSON, &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, []fieldError{{
				Loc:  []string{"body", typeErr.Field},
				Msg:  fmt.Sprintf("must be a string, got %s", typeErr.Value),
				Type: "type_error",
			}}
		}
		return nil, []fieldError{{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error"}}
	}

	var errs []fieldError
	if payload.MessageID == nil || *payload.MessageID == "" {
		errs = append(errs, bodyError("message_id", "message_id is required"))
	}
	if payload.From == nil || *payload.From == "" {
		errs = append(errs, bodyError("from", "from is required"))
	}
	if payload.To == nil || *payload.To == "" {
		errs = append(errs, bodyError("to", "to is required"))
	}
	switch {
	case payload.Ts == nil || *payload.Ts == "":
		errs = append(errs, bodyError("ts", "ts is required"))
	default:
		if err := validateUTCZ(*payload.Ts); err != nil {
			errs = append(errs, bodyError("ts", err.Error()))
		}
	}
	switch {
	case payload.Text == nil:
		errs = append(errs, bodyError("text", "text is required"))
	case len(*payload.Text) > maxTextLength:
		errs = append(errs, bodyError("text", fmt.Sprintf("text must be at most %d characters", maxTextLength)))
	}
	if len(errs) > 0 {
		return nil, errs
	}

	return &models.Message{
		MessageID:  *payload.MessageID,
		FromMSISDN: *payload.From,
		ToMSISDN:   *payload.To,
		Ts:         *payload.Ts,
		Text:       *payload.Text,
	}, nil
}

// validateUTCZ checks that v is an ISO-8601 UTC timestamp with an explicit
// Z suffix. Naive or offset-bearing timestamps are rejected here, before
// anything reaches the store.
func validateUTCZ(v string) error {
	if !strings.HasSuffix(v, "Z") {
		return errors.New("must be an ISO-8601 UTC timestamp with Z suffix")
	}
	if _, err := time.Parse(time.RFC3339, v); err != nil {
		return errors.New("must be an ISO-8601 UTC timestamp with Z suffix")
	}
	return nil
}
