package quotations

import (
	"context"
	"net/http"
	"testing"

	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/handlertest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/notify"
	"portfolio-api/internal/store"
	"portfolio-api/internal/worker"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func restore() {
	createQuotation = store.CreateQuotation
	listQuotations = store.ListQuotations
	getQuotation = store.GetQuotation
	updateQuotationStatus = store.UpdateQuotationStatus
	deleteQuotation = store.DeleteQuotation
	dispatch = notify.Dispatch
}

func TestCreateQuotationHandler(t *testing.T) {
	const body = `{"name":"Carol","email":"Carol@Example.com","service_id":2,"message":"hi"}`

	t.Run("ok dispatches event", func(t *testing.T) {
		t.Cleanup(restore)
		createQuotation = func(_ context.Context, _ database.Querier, q *model.Quotation) (*model.Quotation, error) {
			require.Equal(t, "carol@example.com", q.Email)
			q.ID = 1
			q.Status = model.QuotationNew
			return q, nil
		}
		var sent []notify.Event
		dispatch = func(_ worker.Pool, _ notify.Notifier, ev notify.Event) { sent = append(sent, ev) }

		c, rec := handlertest.New(http.MethodPost, "/quotations", body)
		require.NoError(t, CreateQuotationHandler(nil, &worker.FakePool{}, notify.NopNotifier{})(c))
		handlertest.Expect(t, rec, http.StatusCreated, "quotation received")
		require.Len(t, sent, 1)
		require.Equal(t, notify.EventQuotationCreated, sent[0].Type)
	})

	t.Run("unknown service", func(t *testing.T) {
		t.Cleanup(restore)
		createQuotation = func(context.Context, database.Querier, *model.Quotation) (*model.Quotation, error) {
			return nil, &pgconn.PgError{Code: "23503"}
		}
		pool := &worker.FakePool{}
		c, rec := handlertest.New(http.MethodPost, "/quotations", body)
		require.NoError(t, CreateQuotationHandler(nil, pool, notify.NopNotifier{})(c))
		handlertest.Expect(t, rec, http.StatusBadRequest, "unknown service")
		require.Zero(t, pool.Submitted)
	})

	t.Run("validation", func(t *testing.T) {
		c, rec := handlertest.New(http.MethodPost, "/quotations", `{"name":"Carol","email":"carol@example.com"}`)
		require.NoError(t, CreateQuotationHandler(nil, &worker.FakePool{}, notify.NopNotifier{})(c))
		handlertest.Expect(t, rec, http.StatusBadRequest, "message is required")
	})
}

func TestListQuotationsHandler(t *testing.T) {
	t.Cleanup(restore)
	listQuotations = func(_ context.Context, _ database.Querier, status string, _ store.ListParams) ([]model.Quotation, int, error) {
		require.Equal(t, model.QuotationNew, status)
		return nil, 0, nil
	}
	c, rec := handlertest.New(http.MethodGet, "/?status=new", "")
	require.NoError(t, ListQuotationsHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusOK, "ok")

	c, rec = handlertest.New(http.MethodGet, "/?status=spam", "")
	require.NoError(t, ListQuotationsHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusBadRequest, "invalid quotation status")
}

func TestQuotationByIDHandlers(t *testing.T) {
	t.Cleanup(restore)
	status := model.QuotationNew
	getQuotation = func(_ context.Context, _ database.Querier, id int) (*model.Quotation, error) {
		if id != 1 {
			return nil, pgx.ErrNoRows
		}
		return &model.Quotation{ID: 1, Status: status}, nil
	}
	updateQuotationStatus = func(_ context.Context, _ database.Querier, id int, s string) error {
		if id != 1 {
			return pgx.ErrNoRows
		}
		status = s
		return nil
	}
	deleteQuotation = func(_ context.Context, _ database.Querier, id int) error {
		if id != 1 {
			return pgx.ErrNoRows
		}
		return nil
	}

	c, rec := handlertest.New(http.MethodGet, "/", "")
	require.NoError(t, GetQuotationHandler(nil)(handlertest.Params(c, "id", "2")))
	handlertest.Expect(t, rec, http.StatusNotFound, msgNotFound)

	c, rec = handlertest.New(http.MethodPatch, "/", `{"status":"won"}`)
	require.NoError(t, UpdateQuotationStatusHandler(nil)(handlertest.Params(c, "id", "1")))
	handlertest.Expect(t, rec, http.StatusBadRequest, "status must be one of [new contacted accepted rejected]")

	c, rec = handlertest.New(http.MethodPatch, "/", `{"status":"contacted"}`)
	require.NoError(t, UpdateQuotationStatusHandler(nil)(handlertest.Params(c, "id", "2")))
	handlertest.Expect(t, rec, http.StatusNotFound, msgNotFound)

	c, rec = handlertest.New(http.MethodPatch, "/", `{"status":"contacted"}`)
	require.NoError(t, UpdateQuotationStatusHandler(nil)(handlertest.Params(c, "id", "1")))
	var q model.Quotation
	handlertest.Data(t, rec, &q)
	require.Equal(t, model.QuotationContacted, q.Status)

	c, rec = handlertest.New(http.MethodDelete, "/", "")
	require.NoError(t, DeleteQuotationHandler(nil)(handlertest.Params(c, "id", "1")))
	handlertest.Expect(t, rec, http.StatusOK, "quotation deleted")
}
