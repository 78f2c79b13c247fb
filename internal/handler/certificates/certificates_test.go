package certificates

import (
	"context"
	"net/http"
	"testing"
	"time"

	"portfolio-api/internal/database"
	"portfolio-api/internal/handler/handlertest"
	"portfolio-api/internal/model"
	"portfolio-api/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func restore() {
	listUserCertificates = store.ListUserCertificates
	getCertificateByNumber = store.GetCertificateByNumber
	listCertificates = store.ListCertificates
	revokeCertificate = store.RevokeCertificate
}

func TestMyCertificatesHandler(t *testing.T) {
	t.Cleanup(restore)

	c, rec := handlertest.New(http.MethodGet, "/", "")
	require.NoError(t, MyCertificatesHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusUnauthorized, "")

	listUserCertificates = func(_ context.Context, _ database.Querier, id int) ([]model.Certificate, error) {
		require.Equal(t, 3, id)
		return nil, nil
	}
	c, rec = handlertest.New(http.MethodGet, "/", "")
	require.NoError(t, MyCertificatesHandler(nil)(handlertest.AsUser(c, 3)))
	require.JSONEq(t, `{"success":true,"message":"ok","data":[]}`, rec.Body.String())
}

func TestVerifyCertificateHandler(t *testing.T) {
	t.Cleanup(restore)
	revoked := time.Now()
	getCertificateByNumber = func(_ context.Context, _ database.Querier, number string) (*model.Certificate, error) {
		switch number {
		case "CERT-AAA":
			return &model.Certificate{Number: number}, nil
		case "CERT-BBB":
			return &model.Certificate{Number: number, RevokedAt: &revoked}, nil
		}
		return nil, pgx.ErrNoRows
	}

	cases := map[string]struct {
		code int
		msg  string
	}{
		"cert-aaa": {http.StatusOK, "valid"},
		"CERT-BBB": {http.StatusOK, "revoked"},
		"CERT-CCC": {http.StatusNotFound, msgNotFound},
	}
	for number, want := range cases {
		c, rec := handlertest.New(http.MethodGet, "/", "")
		require.NoError(t, VerifyCertificateHandler(nil)(handlertest.Params(c, "number", number)))
		handlertest.Expect(t, rec, want.code, want.msg)
	}
}

func TestAdminCertificates(t *testing.T) {
	t.Cleanup(restore)
	listCertificates = func(_ context.Context, _ database.Querier, p store.ListParams) ([]model.Certificate, int, error) {
		require.Equal(t, "go", p.Query)
		return []model.Certificate{{ID: 1}}, 1, nil
	}
	c, rec := handlertest.New(http.MethodGet, "/?q=go", "")
	require.NoError(t, ListCertificatesHandler(nil)(c))
	handlertest.Expect(t, rec, http.StatusOK, "ok")

	revokeCertificate = func(_ context.Context, _ database.Querier, id int) (*model.Certificate, error) {
		if id != 1 {
			return nil, pgx.ErrNoRows
		}
		now := time.Now()
		return &model.Certificate{ID: 1, RevokedAt: &now}, nil
	}
	c, rec = handlertest.New(http.MethodDelete, "/", "")
	require.NoError(t, RevokeCertificateHandler(nil)(handlertest.Params(c, "id", "2")))
	handlertest.Expect(t, rec, http.StatusNotFound, msgNotFound)

	c, rec = handlertest.New(http.MethodDelete, "/", "")
	require.NoError(t, RevokeCertificateHandler(nil)(handlertest.Params(c, "id", "1")))
	var cert model.Certificate
	handlertest.Data(t, rec, &cert)
	require.NotNil(t, cert.RevokedAt)
}
