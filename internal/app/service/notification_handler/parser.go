package notification_handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
)

// ErrMalformedEvent marks a delivery that can never be processed. Such
// deliveries are acknowledged so the gateway stops retrying them.
var ErrMalformedEvent = errors.New("malformed gateway event")

type wireEvent struct {
	Status    string `json:"status"`
	Reference *struct {
		Transaction string `json:"transaction"`
	} `json:"reference"`
	Metadata any `json:"metadata"`
}

// ParseEvent validates a raw webhook body and decodes its metadata into the
// typed form used by reconciliation.
func ParseEvent(body []byte) (*reconciliation.Event, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var w wireEvent
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	ev := &reconciliation.Event{Status: strings.TrimSpace(w.Status)}
	if w.Reference != nil {
		ev.TransactionID = strings.TrimSpace(w.Reference.Transaction)
	}
	if ev.Status == "" {
		return ev, fmt.Errorf("%w: missing status", ErrMalformedEvent)
	}
	if ev.TransactionID == "" {
		return ev, fmt.Errorf("%w: missing reference.transaction", ErrMalformedEvent)
	}

	md, err := decodeMetadata(w.Metadata)
	if err != nil {
		return ev, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	ev.Metadata = md
	return ev, nil
}

func decodeMetadata(raw any) (reconciliation.Metadata, error) {
	var md reconciliation.Metadata
	if raw == nil {
		return md, nil
	}
	if _, ok := raw.(map[string]any); !ok {
		return md, errors.New("metadata is not an object")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &md,
	})
	if err != nil {
		return md, err
	}
	if err := dec.Decode(raw); err != nil {
		return md, fmt.Errorf("invalid metadata: %w", err)
	}
	return md, nil
}
