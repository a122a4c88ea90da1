package handlers

import (
	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/internal/app/service/statistics"
	"github.com/fatflowers/letterpay/pkg/response"
)

// RespOK is a generic envelope for endpoints returning no specific data.
type RespOK struct {
	Success bool                     `json:"success"`
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// WebhookPayload documents the gateway event body.
type WebhookPayload struct {
	Status    string `json:"status" example:"CAPTURED"`
	Reference struct {
		Transaction string `json:"transaction" example:"RF70"`
	} `json:"reference"`
	Metadata map[string]interface{} `json:"metadata"`
}

type RespWebhook struct {
	Success bool                     `json:"success"`
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    reconciliation.Result    `json:"data"`
}

type RespReminderSummary struct {
	Success bool                     `json:"success"`
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    reminder.Summary         `json:"data"`
}

type RespListPaymentReminders struct {
	Success bool                           `json:"success"`
	Code    response.APIResponseCode       `json:"code"`
	Message string                         `json:"message"`
	Data    reminder.ScanRemindersResponse `json:"data"`
}

type RespReminderStatistic struct {
	Success bool                                 `json:"success"`
	Code    response.APIResponseCode             `json:"code"`
	Message string                               `json:"message"`
	Data    statistics.ReminderStatisticResponse `json:"data"`
}
