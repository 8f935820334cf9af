package hotels

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurein/hotel-outreach/pkg/logging"
)

func newTestServer(t *testing.T) (*httptest.Server, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	handler := NewHandler(NewRepositoryWithDB(mock), logging.Default())
	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv, mock
}

func TestListRejectsInvalidStatusParam(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/?status=BOGUS")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "invalid status")
}

func TestListResponseShape(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM hotels WHERE 1=1`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE 1=1 ORDER BY last_updated_at DESC`).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows(hotelColumnNames).AddRow(sampleRow("h1")...))

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data       []Hotel `json:"data"`
		TotalCount int     `json:"totalCount"`
		Page       int     `json:"page"`
		PageSize   int     `json:"pageSize"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.TotalCount)
	assert.Equal(t, 1, body.Page)
	assert.Equal(t, 10, body.PageSize)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "h1", body.Data[0].ID)
}

func TestGetNotFoundReturns404(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery(`SELECT .+ FROM hotels WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(hotelColumnNames))

	resp, err := http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateReturns201(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO hotels`).
		WithArgs(pgxmock.AnyArg(), "Grand Hotel", "Yangon", (*string)(nil), (*string)(nil),
			(*string)(nil), (*string)(nil), StatusNew, (*string)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows(hotelColumnNames).AddRow(sampleRow("h1")...))
	mock.ExpectExec(`INSERT INTO activity_logs`).
		WithArgs(pgxmock.AnyArg(), "h1", (*string)(nil), "Sarah Caller", ActionCreated, (*Status)(nil), (*Status)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	resp, err := http.Post(srv.URL+"/", "application/json",
		strings.NewReader(`{"hotelName":"Grand Hotel","region":"Yangon","userName":"Sarah Caller"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var hotel Hotel
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&hotel))
	assert.Equal(t, StatusNew, hotel.Status)
}

func TestPatchRejectsEmptyBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/h1", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBulkRejectsEmptyIDs(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/bulk", "application/json",
		strings.NewReader(`{"hotelIds":[],"updates":{"status":"SIGNED"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBulkUpdateReturnsCount(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectExec(`UPDATE hotels SET status = \$1, last_updated_at = now\(\) WHERE id = ANY\(\$2\)`).
		WithArgs(StatusSigned, []string{"h1", "h2"}).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	resp, err := http.Post(srv.URL+"/bulk", "application/json",
		strings.NewReader(`{"hotelIds":["h1","h2"],"updates":{"status":"SIGNED"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]int
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body["updated"])
}

func TestImportEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery(`SELECT id FROM hotels WHERE hotel_name = \$1 AND region = \$2`).
		WithArgs("Grand Hotel", "Yangon").
		WillReturnRows(pgxmock.NewRows([]string{"id"}))
	mock.ExpectExec(`INSERT INTO hotels`).
		WithArgs(pgxmock.AnyArg(), "Grand Hotel", "Yangon", nil, nil, nil, nil, StatusNew).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp, err := http.Post(srv.URL+"/import", "application/json",
		strings.NewReader(`{"hotels":[{"hotelName":"Grand Hotel","region":"Yangon"}]}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result ImportResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, ImportResult{Created: 1}, result)
}

func TestCreateNoteRejectsMissingContent(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/h1/notes", "application/json",
		strings.NewReader(`{"authorName":"Sarah Caller"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActivityEndpoint(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery(`SELECT id, hotel_id, user_id, user_name, action, old_status, new_status, created_at`).
		WithArgs("h1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "hotel_id", "user_id", "user_name", "action", "old_status", "new_status", "created_at"}).
			AddRow("a1", "h1", nil, "System", ActionCreated, (*Status)(nil), (*Status)(nil), time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)))

	resp, err := http.Get(srv.URL + "/h1/activity")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []ActivityLog
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, ActionCreated, entries[0].Action)
}
