package types

import "strings"

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "PENDING"
	RequestStatusInProgress RequestStatus = "IN_PROGRESS"
	RequestStatusCompleted  RequestStatus = "COMPLETED"
	RequestStatusCancelled  RequestStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

type ReminderType string

const (
	ReminderTypeFirst  ReminderType = "FIRST_REMINDER"
	ReminderTypeSecond ReminderType = "SECOND_REMINDER"
	ReminderTypeFinal  ReminderType = "FINAL_REMINDER"
)

type ReminderStatus string

const (
	ReminderStatusDelivered ReminderStatus = "DELIVERED"
	ReminderStatusFailed    ReminderStatus = "FAILED"
)

// RequestType is the metadata.requestType value sent with gateway events.
type RequestType string

const RequestTypeNewRequest RequestType = "new_request"

// GatewayOutcome tells reconciliation what to do with a gateway status label.
type GatewayOutcome int

const (
	// GatewayOutcomeUnknown: label not in the table, acknowledge without mutation.
	GatewayOutcomeUnknown GatewayOutcome = iota
	// GatewayOutcomeAcknowledge: recognized, but carries no state change.
	GatewayOutcomeAcknowledge
	// GatewayOutcomeApply: recognized and maps onto a PaymentStatus.
	GatewayOutcomeApply
)

type gatewayStatusEntry struct {
	status  PaymentStatus
	outcome GatewayOutcome
}

// gatewayStatusTable is the only place gateway vocabulary is translated.
var gatewayStatusTable = map[string]gatewayStatusEntry{
	"CAPTURED":  {PaymentStatusCompleted, GatewayOutcomeApply},
	"FAILED":    {PaymentStatusFailed, GatewayOutcomeApply},
	"DECLINED":  {PaymentStatusFailed, GatewayOutcomeApply},
	"CANCELLED": {PaymentStatusFailed, GatewayOutcomeApply},
	"REFUNDED":  {PaymentStatusRefunded, GatewayOutcomeApply},
	"INITIATED": {"", GatewayOutcomeAcknowledge},
	"PENDING":   {"", GatewayOutcomeAcknowledge},
}

// paymentStatusLabels is the reverse direction, used when echoing state back
// in logs and admin payloads.
var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusPending:   "INITIATED",
	PaymentStatusCompleted: "CAPTURED",
	PaymentStatusFailed:    "DECLINED",
	PaymentStatusRefunded:  "REFUNDED",
}

// ResolveGatewayStatus maps a raw gateway label onto an internal payment status.
func ResolveGatewayStatus(raw string) (PaymentStatus, GatewayOutcome) {
	entry, ok := gatewayStatusTable[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", GatewayOutcomeUnknown
	}
	return entry.status, entry.outcome
}

// GatewayLabel returns the canonical gateway label for a payment status.
func (s PaymentStatus) GatewayLabel() string {
	return paymentStatusLabels[s]
}

type reminderTier struct {
	templateID string
	label      string
	requires   ReminderType
}

var reminderTiers = map[ReminderType]reminderTier{
	ReminderTypeFirst:  {templateID: "payment_reminder_first", label: "first"},
	ReminderTypeSecond: {templateID: "payment_reminder_second", label: "second", requires: ReminderTypeFirst},
	ReminderTypeFinal:  {templateID: "payment_reminder_final", label: "final", requires: ReminderTypeSecond},
}

// ReminderTiers lists the tiers in escalation order.
var ReminderTiers = []ReminderType{ReminderTypeFirst, ReminderTypeSecond, ReminderTypeFinal}

func (t ReminderType) TemplateID() string { return reminderTiers[t].templateID }

func (t ReminderType) Label() string { return reminderTiers[t].label }

// Prerequisite returns the tier that must have been DELIVERED before t, or ""
// for the first tier.
func (t ReminderType) Prerequisite() ReminderType { return reminderTiers[t].requires }

func (t ReminderType) Valid() bool {
	_, ok := reminderTiers[t]
	return ok
}

// ReminderStatusFromSend converts a sender outcome into the persisted status.
func ReminderStatusFromSend(success bool) ReminderStatus {
	if success {
		return ReminderStatusDelivered
	}
	return ReminderStatusFailed
}
