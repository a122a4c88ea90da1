package notification_handler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/letterpay/pkg/types"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent([]byte(`{
		"status": "CAPTURED",
		"reference": {"transaction": "RF99"},
		"metadata": {
			"requestType": "new_request",
			"customerEmail": "a@b.com",
			"customerName": "Amal",
			"purpose": "Love letter",
			"payload": {"tone": "warm", "words": 300}
		}
	}`))
	require.NoError(t, err)
	require.Equal(t, "CAPTURED", ev.Status)
	require.Equal(t, "RF99", ev.TransactionID)
	require.Equal(t, types.RequestTypeNewRequest, ev.Metadata.RequestType)
	require.Equal(t, "a@b.com", ev.Metadata.CustomerEmail)
	require.Equal(t, "Love letter", ev.Metadata.Purpose)
	require.EqualValues(t, 0, ev.Metadata.ExistingRequestID)
	require.Equal(t, "warm", ev.Metadata.Payload["tone"])
}

func TestParseEvent_ExistingRequestID(t *testing.T) {
	for _, body := range []string{
		`{"status":"CAPTURED","reference":{"transaction":"RF70"},"metadata":{"existingRequestId":"70"}}`,
		`{"status":"CAPTURED","reference":{"transaction":"RF70"},"metadata":{"existingRequestId":70}}`,
	} {
		ev, err := ParseEvent([]byte(body))
		require.NoError(t, err)
		require.EqualValues(t, 70, ev.Metadata.ExistingRequestID)
	}
}

func TestParseEvent_NoMetadata(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"status":"DECLINED","reference":{"transaction":"RF1"}}`))
	require.NoError(t, err)
	require.Equal(t, "DECLINED", ev.Status)
	require.Empty(t, ev.Metadata.CustomerEmail)
}

func TestParseEvent_Malformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `status=CAPTURED`,
		"missing status":    `{"reference":{"transaction":"RF1"}}`,
		"missing reference": `{"status":"CAPTURED"}`,
		"empty transaction": `{"status":"CAPTURED","reference":{"transaction":"  "}}`,
		"metadata array":    `{"status":"CAPTURED","reference":{"transaction":"RF1"},"metadata":[1,2]}`,
		"bad request id":    `{"status":"CAPTURED","reference":{"transaction":"RF1"},"metadata":{"existingRequestId":"seventy"}}`,
		"negative id":       `{"status":"CAPTURED","reference":{"transaction":"RF1"},"metadata":{"existingRequestId":-3}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEvent([]byte(body))
			require.ErrorIs(t, err, ErrMalformedEvent)
			require.True(t, IsMalformed(err))
		})
	}
}
