package reconciliation

import (
	"strings"

	"github.com/fatflowers/letterpay/pkg/types"
)

// Event is a validated gateway webhook delivery.
type Event struct {
	// Status is the raw gateway label, e.g. CAPTURED.
	Status        string
	TransactionID string
	Metadata      Metadata
}

// Metadata is the typed form of the gateway's free-form metadata object.
type Metadata struct {
	RequestType types.RequestType `mapstructure:"requestType"`
	// ExistingRequestID is 0 when absent.
	ExistingRequestID uint64         `mapstructure:"existingRequestId"`
	CustomerEmail     string         `mapstructure:"customerEmail"`
	CustomerName      string         `mapstructure:"customerName"`
	CustomerPhone     string         `mapstructure:"customerPhone"`
	Purpose           string         `mapstructure:"purpose"`
	Recipient         string         `mapstructure:"recipient"`
	PaymentMethod     string         `mapstructure:"paymentMethod"`
	Payload           map[string]any `mapstructure:"payload"`
}

// Email returns the normalized customer email.
func (m Metadata) Email() string {
	return strings.ToLower(strings.TrimSpace(m.CustomerEmail))
}

// CreatesRequest reports whether a completed payment with this metadata may
// create a new Request. Unrecognized request types never do.
func (m Metadata) CreatesRequest() bool {
	return m.RequestType == "" || m.RequestType == types.RequestTypeNewRequest
}
