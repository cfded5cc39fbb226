package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/Jeomhps/reservation-planner/internal/db"
)

// NewDB opens a private in-memory sqlite store with foreign keys on and a
// freshly initialized schema. It is closed when the test ends.
func NewDB(t *testing.T) *db.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	// one connection keeps every query on the same in-memory database
	d, err := db.Open(context.Background(), db.SQLite, dsn, db.Pool{MaxOpenConns: 1})
	require.NoError(t, err, "open test database")
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, d.InitializeSchema(context.Background()), "initialize schema")
	return d
}

// Logger returns a logger that writes through t.Log.
func Logger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// CreateCustomer inserts a customer or fails the test.
func CreateCustomer(t *testing.T, d *db.DB, name string) db.Customer {
	t.Helper()
	c, err := d.CreateCustomer(context.Background(), name)
	require.NoError(t, err, "create customer %q", name)
	return c
}

// CreateRestaurant inserts a restaurant or fails the test.
func CreateRestaurant(t *testing.T, d *db.DB, name string) db.Restaurant {
	t.Helper()
	r, err := d.CreateRestaurant(context.Background(), name)
	require.NoError(t, err, "create restaurant %q", name)
	return r
}

// CreateReservation books customer c at restaurant r on date (YYYY-MM-DD) or fails the test.
func CreateReservation(t *testing.T, d *db.DB, c db.Customer, r db.Restaurant, date string, party int) db.Reservation {
	t.Helper()
	day, err := db.ParseDate(date)
	require.NoError(t, err)
	res, err := d.CreateReservation(context.Background(), db.NewReservation{
		Date:         day,
		PartyCount:   party,
		RestaurantID: r.ID,
		CustomerID:   c.ID,
	})
	require.NoError(t, err, "create reservation")
	return res
}

// MakeRequest creates an HTTP test request with an optional JSON body.
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		var raw []byte
		if s, ok := body.(string); ok {
			raw = []byte(s)
		} else {
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// Serve runs req through h and returns the recorded response.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// DecodeJSON decodes the response body into v or fails the test.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), "decode body: %s", w.Body.String())
}
