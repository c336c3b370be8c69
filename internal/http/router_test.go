package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/gastos/internal/export"
	gastosHttp "github.com/MrJamesThe3rd/gastos/internal/http"
	exportHandler "github.com/MrJamesThe3rd/gastos/internal/http/export"
	"github.com/MrJamesThe3rd/gastos/internal/http/importstatement"
	rulesHandler "github.com/MrJamesThe3rd/gastos/internal/http/rules"
	txHandler "github.com/MrJamesThe3rd/gastos/internal/http/transaction"
	"github.com/MrJamesThe3rd/gastos/internal/importer"
	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
	"github.com/MrJamesThe3rd/gastos/internal/rules"
	"github.com/MrJamesThe3rd/gastos/internal/transaction"
)

const secret = "test-secret"

type fakeImporter struct {
	bank   importer.Bank
	dryRun bool
	body   string
	result reconcile.Result
	err    error
}

func (f *fakeImporter) ImportFile(_ context.Context, bank importer.Bank, r io.Reader, dryRun bool) (reconcile.Result, error) {
	b, _ := io.ReadAll(r)
	f.bank, f.dryRun, f.body = bank, dryRun, string(b)

	return f.result, f.err
}

type fakeLedger struct {
	start, end time.Time
	txs        []transaction.Transaction
	err        error
}

func (f *fakeLedger) QueryRange(_ context.Context, start, end time.Time) ([]transaction.Transaction, error) {
	f.start, f.end = start, end
	return f.txs, f.err
}

type fixture struct {
	importer *fakeImporter
	ledger   *fakeLedger
	router   http.Handler
}

func newFixture(t *testing.T, jwtSecret string) *fixture {
	t.Helper()

	engine, err := rules.NewEngine([]rules.Rule{
		{Name: "market", Priority: 10, Contains: "MERCADONA", Category: "Casa", Subcategory: "Supermercado"},
		{Name: "ignored", Priority: 5, Exact: "TRASPASO"},
	})
	require.NoError(t, err)

	f := &fixture{importer: &fakeImporter{}, ledger: &fakeLedger{}}
	f.router = gastosHttp.New(
		zerolog.Nop(),
		gastosHttp.Options{JWTSecret: jwtSecret, AllowedOrigins: []string{"http://localhost:5173"}},
		importstatement.NewHandler(f.importer, 1),
		txHandler.NewHandler(f.ledger),
		rulesHandler.NewHandler(engine),
		exportHandler.NewHandler(export.NewService(f.ledger)),
	)

	return f
}

func (f *fixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func uploadRequest(t *testing.T, fields map[string]string, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if content != "" {
		fw, err := mw.CreateFormFile("file", "export.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func signedToken(t *testing.T, key string, exp time.Time) string {
	t.Helper()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "tester",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte(key))
	require.NoError(t, err)

	return tok
}

func TestImport(t *testing.T) {
	type testCase struct {
		name       string
		fields     map[string]string
		content    string
		result     reconcile.Result
		err        error
		wantStatus int
		wantDryRun bool
	}

	tests := []testCase{
		{
			name:       "inserted rows return created",
			fields:     map[string]string{"bank": "revolut"},
			content:    "csv",
			result:     reconcile.Result{TotalRead: 2, Inserted: 2},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "only duplicates return ok",
			fields:     map[string]string{"bank": "bbva"},
			content:    "csv",
			result:     reconcile.Result{TotalRead: 2, Duplicates: 2},
			wantStatus: http.StatusOK,
		},
		{
			name:       "dry run never returns created",
			fields:     map[string]string{"bank": "laboral_kutxa", "dry_run": "true"},
			content:    "csv",
			result:     reconcile.Result{TotalRead: 1, Inserted: 1},
			wantStatus: http.StatusOK,
			wantDryRun: true,
		},
		{
			name:       "unknown bank",
			fields:     map[string]string{"bank": "santander"},
			content:    "csv",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing file",
			fields:     map[string]string{"bank": "bbva"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "import failure",
			fields:     map[string]string{"bank": "bbva"},
			content:    "csv",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "")
			f.importer.result = tc.result
			f.importer.err = tc.err

			rec := f.do(t, uploadRequest(t, tc.fields, tc.content))
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())

			if tc.wantStatus >= http.StatusBadRequest {
				return
			}

			assert.Equal(t, tc.content, f.importer.body)
			assert.Equal(t, tc.wantDryRun, f.importer.dryRun)

			var got map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.fields["bank"], got["bank"])
			assert.Equal(t, tc.wantDryRun, got["dry_run"])
			assert.EqualValues(t, tc.result.TotalRead, got["total_read"])
			assert.EqualValues(t, tc.result.Inserted, got["inserted"])
			assert.Equal(t, []any{}, got["errors"])
		})
	}
}

func TestBanks(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/import/banks", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		ID      string `json:"id"`
		Account string `json:"account"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Contains(t, got, struct {
		ID      string `json:"id"`
		Account string `json:"account"`
	}{ID: "revolut", Account: "Revolut"})
}

func TestLedgerTransactions(t *testing.T) {
	f := newFixture(t, "")
	f.ledger.txs = []transaction.Transaction{
		transaction.New(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "MERCADONA", -2350, transaction.AccountBBVA).
			Classified(transaction.Classification{Category: "Casa", Subcategory: "Supermercado"}),
	}

	rec := f.do(t, httptest.NewRequest(http.MethodGet,
		"/api/v1/ledger/transactions/?start_date=2024-03-01&end_date=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), f.ledger.start)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), f.ledger.end)

	var got struct {
		StartDate    string           `json:"start_date"`
		EndDate      string           `json:"end_date"`
		Transactions []map[string]any `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2024-03-01", got.StartDate)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "2024-03-05", got.Transactions[0]["date"])
	assert.EqualValues(t, -2350, got.Transactions[0]["amount"])
	assert.Equal(t, "Casa", got.Transactions[0]["category"])
}

func TestLedgerTransactions_BadRange(t *testing.T) {
	type testCase struct {
		name  string
		query string
	}

	tests := []testCase{
		{name: "malformed start", query: "?start_date=01/03/2024"},
		{name: "malformed end", query: "?end_date=tomorrow"},
		{name: "inverted", query: "?start_date=2024-03-31&end_date=2024-03-01"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "")

			rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/transactions/"+tc.query, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLedgerTransactions_QueryFailure(t *testing.T) {
	f := newFixture(t, "")
	f.ledger.err = errors.New("notion unavailable")

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/ledger/transactions/", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestClassify(t *testing.T) {
	type testCase struct {
		name        string
		description string
		wantMatched bool
		wantRule    string
		wantCat     string
	}

	tests := []testCase{
		{name: "contains rule", description: "COMPRA MERCADONA 123", wantMatched: true, wantRule: "market", wantCat: "Casa"},
		{name: "blank rule matches without classifying", description: "TRASPASO", wantRule: "ignored"},
		{name: "no rule", description: "CAFE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, "")

			req := httptest.NewRequest(http.MethodGet, "/api/v1/rules/classify", nil)
			q := req.URL.Query()
			q.Set("description", tc.description)
			req.URL.RawQuery = q.Encode()

			rec := f.do(t, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var got struct {
				Matched  bool   `json:"matched"`
				Category string `json:"category"`
				Rule     *struct {
					Name string `json:"name"`
				} `json:"rule"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.wantMatched, got.Matched)
			assert.Equal(t, tc.wantCat, got.Category)

			if tc.wantRule == "" {
				assert.Nil(t, got.Rule)
				return
			}

			require.NotNil(t, got.Rule)
			assert.Equal(t, tc.wantRule, got.Rule.Name)
		})
	}
}

func TestClassify_MissingDescription(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/rules/classify", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuth(t *testing.T) {
	type testCase struct {
		name       string
		header     string
		wantStatus int
	}

	tests := []testCase{
		{name: "no header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer " + signedToken(t, "other", time.Now().Add(time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + signedToken(t, secret, time.Now().Add(-time.Hour)), wantStatus: http.StatusUnauthorized},
		{name: "valid", header: "Bearer " + signedToken(t, secret, time.Now().Add(time.Hour)), wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, secret)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/import/banks", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			assert.Equal(t, tc.wantStatus, f.do(t, req).Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/import/banks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := f.do(t, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestExportSummary(t *testing.T) {
	f := newFixture(t, "")
	f.ledger.txs = []transaction.Transaction{
		transaction.New(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "MERCADONA", -2350, transaction.AccountBBVA).
			Classified(transaction.Classification{Category: "Casa"}),
	}

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/export/?start_date=2024-03-01&end_date=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Transactions int `json:"transactions"`
		Categories   []struct {
			Category string `json:"category"`
			Expenses int64  `json:"expenses"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Transactions)
	require.Len(t, got.Categories, 1)
	assert.Equal(t, "Casa", got.Categories[0].Category)
	assert.EqualValues(t, -2350, got.Categories[0].Expenses)
}

func TestExportDownload(t *testing.T) {
	f := newFixture(t, "")

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/export/download?start_date=2024-03-01&end_date=2024-03-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Disposition"), "gastos_20240301_20240331.xlsx")
	assert.NotZero(t, rec.Body.Len())
}

func TestExportDownload_QueryFailure(t *testing.T) {
	f := newFixture(t, "")
	f.ledger.err = errors.New("notion unavailable")

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/export/download", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
