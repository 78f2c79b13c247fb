package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-api/internal/worker"

	"github.com/stretchr/testify/require"
)

type recordNotifier struct {
	events []Event
	err    error
}

func (r *recordNotifier) Notify(_ context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func TestNew(t *testing.T) {
	require.IsType(t, NopNotifier{}, New(""))
	require.IsType(t, &WebhookNotifier{}, New("http://example.com/hook"))
	require.NoError(t, NopNotifier{}.Notify(context.Background(), NewEvent("x", nil)))
}

func TestWebhookNotifier(t *testing.T) {
	var got Event
	var contentType string
	status := http.StatusNoContent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, time.Second)
	ev := NewEvent(EventQuotationCreated, map[string]int{"id": 7})
	require.NoError(t, n.Notify(context.Background(), ev))
	require.Equal(t, EventQuotationCreated, got.Type)
	require.Equal(t, map[string]interface{}{"id": float64(7)}, got.Data)
	require.Contains(t, contentType, "application/json")

	status = http.StatusBadGateway
	err := n.Notify(context.Background(), ev)
	require.ErrorContains(t, err, "unexpected status 502")

	status = http.StatusFound
	require.Error(t, n.Notify(context.Background(), ev))
}

func TestWebhookNotifierUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewWebhookNotifier(url, time.Second).Notify(context.Background(), NewEvent(EventOrderPaid, nil))
	require.ErrorContains(t, err, "notify order.paid")
}

func TestDispatch(t *testing.T) {
	pool := &worker.FakePool{}
	rec := &recordNotifier{}
	Dispatch(pool, rec, NewEvent(EventOrderRefunded, 1))
	require.Equal(t, 1, pool.Submitted)
	require.Len(t, rec.events, 1)

	rec.err = errors.New("down")
	require.NotPanics(t, func() { Dispatch(pool, rec, NewEvent(EventOrderPaid, 2)) })
	require.Len(t, rec.events, 2)
}
