package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	nh "github.com/fatflowers/letterpay/internal/app/service/notification_handler"
	"github.com/fatflowers/letterpay/internal/app/service/reconciliation"
	"github.com/fatflowers/letterpay/internal/app/service/reminder"
	"github.com/fatflowers/letterpay/internal/app/service/statistics"
	"github.com/fatflowers/letterpay/internal/models"
	"github.com/fatflowers/letterpay/internal/platform/db"
	"github.com/fatflowers/letterpay/pkg/tool"
	"github.com/fatflowers/letterpay/pkg/types"
)

type stubWebhook struct {
	res *reconciliation.Result
	err error
}

func (s *stubWebhook) HandleNotification(context.Context, []byte) (*reconciliation.Result, error) {
	return s.res, s.err
}

type stubTicker struct {
	summary *reminder.Summary
	err     error
}

func (s *stubTicker) RunTick(context.Context) (*reminder.Summary, error) {
	return s.summary, s.err
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestApiPaymentWebhook(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		stub    *stubWebhook
		code    int
		success bool
	}{
		{"handled", &stubWebhook{res: &reconciliation.Result{Action: reconciliation.ActionAttached, RequestID: 70}}, http.StatusOK, true},
		{"ignored", &stubWebhook{res: &reconciliation.Result{Action: reconciliation.ActionIgnored}}, http.StatusOK, true},
		{"malformed", &stubWebhook{err: fmt.Errorf("%w: missing status", nh.ErrMalformedEvent)}, http.StatusOK, false},
		{"storage failure", &stubWebhook{err: errors.New("connection refused")}, http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			RegisterPaymentWebhookRoutes(r.Group("/api/v1/payments"), tc.stub, zap.NewNop().Sugar())

			w := do(r, http.MethodPost, "/api/v1/payments/webhook", map[string]any{"status": "CAPTURED"})
			require.Equal(t, tc.code, w.Code)
			var out struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
			require.Equal(t, tc.success, out.Success)
			if tc.stub.res != nil {
				require.Equal(t, string(tc.stub.res.Action), out.Message)
			}
		})
	}
}

func TestApiRunReminders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	summary := &reminder.Summary{
		FirstReminders: reminder.TierCount{Sent: 2, Failed: 1},
		TotalProcessed: 3,
		Details:        []reminder.Detail{},
	}
	cases := []struct {
		name string
		stub *stubTicker
		code int
	}{
		{"ok", &stubTicker{summary: summary}, http.StatusOK},
		{"busy", &stubTicker{err: reminder.ErrTickInProgress}, http.StatusConflict},
		{"failed", &stubTicker{err: errors.New("db down")}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			RegisterReminderRoutes(r.Group("/api/v1/reminders"), tc.stub, zap.NewNop().Sugar())
			w := do(r, http.MethodPost, "/api/v1/reminders/run", nil)
			require.Equal(t, tc.code, w.Code)
		})
	}

	r := gin.New()
	RegisterReminderRoutes(r.Group("/api/v1/reminders"), &stubTicker{summary: summary}, zap.NewNop().Sugar())
	w := do(r, http.MethodPost, "/api/v1/reminders/run", nil)
	require.JSONEq(t, `{
		"success": true, "code": 0, "message": "ok",
		"data": {
			"firstReminders": {"sent": 2, "failed": 1},
			"secondReminders": {"sent": 0, "failed": 0},
			"finalReminders": {"sent": 0, "failed": 0},
			"totalProcessed": 3,
			"details": []
		}
	}`, w.Body.String())
}

func TestAdminRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := db.OpenTestDB(t)
	sentAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, gdb.Create([]*models.PaymentReminder{
		{ID: tool.GenerateUUIDV7(), RequestID: 70, UserID: 7, ReminderType: types.ReminderTypeFirst, Status: types.ReminderStatusDelivered, SentAt: sentAt},
		{ID: tool.GenerateUUIDV7(), RequestID: 71, UserID: 8, ReminderType: types.ReminderTypeFirst, Status: types.ReminderStatusFailed, SentAt: sentAt},
	}).Error)

	r := gin.New()
	RegisterAdminRoutes(r.Group("/api/v1/admin"), reminder.NewHistory(gdb), statistics.New(gdb))

	type listResp struct {
		Success bool                           `json:"success"`
		Data    reminder.ScanRemindersResponse `json:"data"`
	}

	w := do(r, http.MethodPost, "/api/v1/admin/list_payment_reminders", map[string]any{
		"filters": []map[string]any{{"field": "status", "operator": "eq", "values": []any{"FAILED"}}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var list listResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.True(t, list.Success)
	require.EqualValues(t, 1, list.Data.Total)
	require.EqualValues(t, 71, list.Data.Items[0].RequestID)

	w = do(r, http.MethodGet, "/api/v1/admin/request_reminders?request_id=70", nil)
	list = listResp{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.True(t, list.Success)
	require.EqualValues(t, 1, list.Data.Total)

	w = do(r, http.MethodGet, "/api/v1/admin/request_reminders", nil)
	require.Contains(t, w.Body.String(), "invalid request_id")

	w = do(r, http.MethodPost, "/api/v1/admin/reminder_statistic", map[string]any{
		"data_items": []map[string]any{{"id": "daily_reminder_count"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "first:FAILED")
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := db.OpenTestDB(t)
	r := gin.New()
	RegisterHealthRoutes(r, gdb)

	w := do(r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"status":"ok"`)
	require.Contains(t, w.Body.String(), `"database":"up"`)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = do(r, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), `"success":false`)
	require.Contains(t, w.Body.String(), `"database":"down"`)
}
