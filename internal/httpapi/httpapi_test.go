package httpapi_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/httpapi"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	reg := reservation.NewRegistry(fixedClock{})
	require.NoError(t, reg.AddResource(context.Background(), 101, reservation.KindSingle, 100))
	require.NoError(t, reg.AddRequester(context.Background(), 1, "Ada"))

	ts := httptest.NewServer(httpapi.NewRouter(wire.NewService(reg), slog.New(slog.DiscardHandler)))
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, body string) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func Test_Router_StatusCodes(t *testing.T) {
	ts := newServer(t)

	// os passos dependem da ordem: a primeira reserva ocupa o quarto 101
	steps := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
		code   string
	}{
		{"health", "GET", "/healthz", "", http.StatusOK, ""},
		{"book", "POST", "/reservations", `{"resource_id":101,"requester_id":1,"start":"2025-03-01","end":"2025-03-05"}`, http.StatusCreated, ""},
		{"overlap", "POST", "/reservations", `{"resource_id":101,"requester_id":1,"start":"2025-03-05","end":"2025-03-08"}`, http.StatusConflict, reservation.CodeConflict},
		{"unknown resource", "POST", "/reservations", `{"resource_id":7,"requester_id":1,"start":"2025-03-01","end":"2025-03-02"}`, http.StatusNotFound, reservation.CodeNotFound},
		{"inverted", "POST", "/reservations", `{"resource_id":101,"requester_id":1,"start":"2025-03-09","end":"2025-03-08"}`, http.StatusBadRequest, reservation.CodeInvalidArgument},
		{"malformed", "POST", "/reservations", `{`, http.StatusBadRequest, reservation.CodeInvalidArgument},
		{"add resource", "POST", "/resources", `{"id":102,"kind":"double","price":150}`, http.StatusCreated, ""},
		{"duplicate resource", "POST", "/resources", `{"id":102,"kind":"double","price":150}`, http.StatusConflict, reservation.CodeDuplicateID},
		{"bad kind", "POST", "/resources", `{"id":103,"kind":"penthouse","price":1}`, http.StatusBadRequest, reservation.CodeInvalidArgument},
		{"add requester", "POST", "/requesters", `{"id":2,"name":"Grace"}`, http.StatusCreated, ""},
		{"availability", "GET", "/availability?start=2025-03-02&end=2025-03-03", "", http.StatusOK, ""},
		{"availability without dates", "GET", "/availability", "", http.StatusBadRequest, reservation.CodeInvalidArgument},
		{"cancel empty resource", "DELETE", "/resources/102/reservation", "", http.StatusPreconditionFailed, reservation.CodeNotBooked},
		{"cancel bad resource id", "DELETE", "/resources/abc/reservation", "", http.StatusBadRequest, reservation.CodeInvalidArgument},
		{"cancel booked resource", "DELETE", "/resources/101/reservation", "", http.StatusOK, ""},
		{"cancel unknown reservation", "DELETE", "/reservations/6f1c7f40-6a8e-4c1e-9a55-5b0c8a3b6a10", "", http.StatusNotFound, reservation.CodeNotFound},
		{"cancel bad reservation id", "DELETE", "/reservations/nope", "", http.StatusBadRequest, reservation.CodeInvalidArgument},
	}

	for _, s := range steps {
		status, body := do(t, ts, s.method, s.path, s.body)
		assert.Equal(t, s.want, status, "%s: %s", s.name, body)

		if s.code != "" {
			var got struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			require.NoError(t, wire.JSON.Unmarshal(body, &got), s.name)
			assert.Equal(t, s.code, got.Code, s.name)
			assert.NotEmpty(t, got.Error, s.name)
		}
	}
}

func Test_Router_BookAndCancelByID(t *testing.T) {
	// arrange
	ts := newServer(t)

	// act
	status, body := do(t, ts, "POST", "/reservations", `{"resource_id":101,"requester_id":1,"start":"2025-03-01","end":"2025-03-05"}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	var booked wire.Reservation
	require.NoError(t, wire.JSON.Unmarshal(body, &booked))

	_, body = do(t, ts, "GET", "/resources", "")
	var during wire.ResourceList
	require.NoError(t, wire.JSON.Unmarshal(body, &during))

	status, _ = do(t, ts, "DELETE", "/reservations/"+booked.ID, "")

	_, body = do(t, ts, "GET", "/reservations", "")
	var after wire.ReservationList
	require.NoError(t, wire.JSON.Unmarshal(body, &after))

	// assert
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, during.Resources, 1)
	assert.False(t, during.Resources[0].Available)
	assert.Empty(t, after.Reservations)
}

func Test_Router_ListsKeepInsertionOrder(t *testing.T) {
	ts := newServer(t)

	do(t, ts, "POST", "/requesters", `{"id":3,"name":"Linus"}`)
	do(t, ts, "POST", "/requesters", `{"id":2,"name":"Grace"}`)

	status, body := do(t, ts, "GET", "/requesters", "")
	require.Equal(t, http.StatusOK, status)

	var list wire.RequesterList
	require.NoError(t, wire.JSON.Unmarshal(body, &list))
	assert.Equal(t, []wire.Requester{{ID: 1, Name: "Ada"}, {ID: 3, Name: "Linus"}, {ID: 2, Name: "Grace"}}, list.Requesters)
}

func Test_Router_CancelledRequestIsNotAnInternalError(t *testing.T) {
	// arrange
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelError}))
	router := httpapi.NewRouter(wire.NewService(reservation.NewRegistry(fixedClock{})), logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/resources", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	// act
	router.ServeHTTP(rec, req)

	// assert
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var got struct {
		Code string `json:"code"`
	}
	require.NoError(t, wire.JSON.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, reservation.CodeCanceled, got.Code)
	assert.Empty(t, logs.String())
}
