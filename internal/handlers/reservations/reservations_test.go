package reservations_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeomhps/reservation-planner/internal/db"
	"github.com/Jeomhps/reservation-planner/internal/handlers/reservations"
	"github.com/Jeomhps/reservation-planner/internal/testutil"
)

func newEngine(t *testing.T, s reservations.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := reservations.New(s, testutil.Logger(t))
	r := gin.New()
	r.GET("/api/reservations", h.List)
	r.POST("/api/customers/:id/reservations", h.Create)
	r.DELETE("/api/customers/:id/reservations/:reservation_id", h.Delete)
	return r
}

func TestList_EmptyIsArray(t *testing.T) {
	r := newEngine(t, testutil.NewDB(t))

	w := testutil.Serve(r, testutil.MakeRequest(http.MethodGet, "/api/reservations", nil, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCreate(t *testing.T) {
	d := testutil.NewDB(t)
	r := newEngine(t, d)
	john := testutil.CreateCustomer(t, d, "John")
	pasta := testutil.CreateRestaurant(t, d, "Pasta Palace")

	path := "/api/customers/" + john.ID.String() + "/reservations"
	w := testutil.Serve(r, testutil.MakeRequest(http.MethodPost, path, gin.H{
		"date": "2024-04-01", "party_count": 4, "restaurant_id": pasta.ID,
	}, nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got db.Reservation
	testutil.DecodeJSON(t, w, &got)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, "2024-04-01", got.Date.String())
	assert.Equal(t, 4, got.PartyCount)
	assert.Equal(t, john.ID, got.CustomerID)
	assert.Equal(t, pasta.ID, got.RestaurantID)

	all, err := d.FetchReservations(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreate_Errors(t *testing.T) {
	d := testutil.NewDB(t)
	r := newEngine(t, d)
	john := testutil.CreateCustomer(t, d, "John")
	jane := testutil.CreateCustomer(t, d, "Jane")
	pasta := testutil.CreateRestaurant(t, d, "Pasta Palace")
	testutil.CreateReservation(t, d, john, pasta, "2024-04-01", 4)

	johnPath := "/api/customers/" + john.ID.String() + "/reservations"
	janePath := "/api/customers/" + jane.ID.String() + "/reservations"

	tests := []struct {
		name string
		path string
		body any
		want int
		code string
	}{
		{"bad customer id", "/api/customers/nope/reservations", gin.H{"date": "2024-04-01", "party_count": 2, "restaurant_id": pasta.ID}, http.StatusBadRequest, "invalid_request"},
		{"malformed json", janePath, `{"date":`, http.StatusBadRequest, "invalid_request"},
		{"missing date", janePath, gin.H{"party_count": 2, "restaurant_id": pasta.ID}, http.StatusBadRequest, "invalid_request"},
		{"bad date", janePath, gin.H{"date": "01/04/2024", "party_count": 2, "restaurant_id": pasta.ID}, http.StatusBadRequest, "invalid_request"},
		{"zero party", janePath, gin.H{"date": "2024-04-01", "party_count": 0, "restaurant_id": pasta.ID}, http.StatusBadRequest, "invalid_request"},
		{"negative party", janePath, gin.H{"date": "2024-04-01", "party_count": -3, "restaurant_id": pasta.ID}, http.StatusBadRequest, "invalid_request"},
		{"party above int32", janePath, gin.H{"date": "2024-04-01", "party_count": int64(math.MaxInt32) + 1, "restaurant_id": pasta.ID}, http.StatusBadRequest, "invalid_request"},
		{"missing restaurant", janePath, gin.H{"date": "2024-04-01", "party_count": 2}, http.StatusBadRequest, "invalid_request"},
		{"bad restaurant id", janePath, gin.H{"date": "2024-04-01", "party_count": 2, "restaurant_id": "xyz"}, http.StatusBadRequest, "invalid_request"},
		{"body customer mismatch", janePath, gin.H{"date": "2024-04-01", "party_count": 2, "restaurant_id": pasta.ID, "customer_id": john.ID}, http.StatusBadRequest, "invalid_request"},
		{"duplicate pair", johnPath, gin.H{"date": "2024-09-09", "party_count": 2, "restaurant_id": pasta.ID}, http.StatusConflict, "conflict"},
		{"unknown restaurant", janePath, gin.H{"date": "2024-04-01", "party_count": 2, "restaurant_id": uuid.New()}, http.StatusUnprocessableEntity, "unknown_reference"},
		{"unknown customer", "/api/customers/" + uuid.NewString() + "/reservations", gin.H{"date": "2024-04-01", "party_count": 2, "restaurant_id": pasta.ID}, http.StatusUnprocessableEntity, "unknown_reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.Serve(r, testutil.MakeRequest(http.MethodPost, tt.path, tt.body, nil))
			require.Equal(t, tt.want, w.Code, w.Body.String())
			var body map[string]any
			testutil.DecodeJSON(t, w, &body)
			assert.Equal(t, tt.code, body["error"])
		})
	}

	all, err := d.FetchReservations(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1, "failed creates must not persist anything")
}

func TestDelete(t *testing.T) {
	d := testutil.NewDB(t)
	r := newEngine(t, d)
	john := testutil.CreateCustomer(t, d, "John")
	jane := testutil.CreateCustomer(t, d, "Jane")
	pasta := testutil.CreateRestaurant(t, d, "Pasta Palace")
	res := testutil.CreateReservation(t, d, john, pasta, "2024-04-01", 4)

	del := func(customer, id string) int {
		return testutil.Serve(r, testutil.MakeRequest(http.MethodDelete,
			"/api/customers/"+customer+"/reservations/"+id, nil, nil)).Code
	}

	// another customer's id leaves the row alone
	assert.Equal(t, http.StatusNoContent, del(jane.ID.String(), res.ID.String()))
	all, err := d.FetchReservations(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.Equal(t, http.StatusNoContent, del(john.ID.String(), res.ID.String()))
	all, err = d.FetchReservations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	// repeat and unknown ids are no-ops
	assert.Equal(t, http.StatusNoContent, del(john.ID.String(), res.ID.String()))
	assert.Equal(t, http.StatusNoContent, del(uuid.NewString(), uuid.NewString()))

	assert.Equal(t, http.StatusBadRequest, del("nope", res.ID.String()))
	assert.Equal(t, http.StatusBadRequest, del(john.ID.String(), "nope"))
}

type failingStore struct{ err error }

func (f failingStore) CreateReservation(context.Context, db.NewReservation) (db.Reservation, error) {
	return db.Reservation{}, f.err
}
func (f failingStore) FetchReservations(context.Context) ([]db.Reservation, error) {
	return nil, f.err
}
func (f failingStore) DeleteCustomerReservation(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return false, f.err
}

func TestStoreFailureIs500(t *testing.T) {
	r := newEngine(t, failingStore{err: &db.StorageError{Op: "query", Err: errors.New("connection refused")}})

	reqs := []*http.Request{
		testutil.MakeRequest(http.MethodGet, "/api/reservations", nil, nil),
		testutil.MakeRequest(http.MethodPost, "/api/customers/"+uuid.NewString()+"/reservations",
			gin.H{"date": "2024-04-01", "party_count": 2, "restaurant_id": uuid.New()}, nil),
		testutil.MakeRequest(http.MethodDelete, "/api/customers/"+uuid.NewString()+"/reservations/"+uuid.NewString(), nil, nil),
	}
	for _, req := range reqs {
		w := testutil.Serve(r, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code, req.Method)
		assert.NotContains(t, w.Body.String(), "connection refused")
	}
}
