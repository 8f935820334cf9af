package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"

	"github.com/thurein/hotel-outreach/internal/hotels"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

func TestSummaryEndpointServesFromCacheOnSecondHit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	handler := NewHandler(NewServiceWithDB(mock), NewSummaryCache(client, time.Minute), logging.Default())
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	// Only one database scan expected; the second request is a cache hit.
	mock.ExpectQuery(`SELECT status, region FROM hotels`).
		WillReturnRows(pgxmock.NewRows([]string{"status", "region"}).
			AddRow(hotels.StatusSigned, "Yangon"))

	for i := 0; i < 2; i++ {
		resp, err := http.Get(srv.URL + "/summary")
		if err != nil {
			t.Fatalf("GET summary: %v", err)
		}
		var summary Summary
		if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close()
		if summary.SignedHotels != 1 {
			t.Errorf("request %d: SignedHotels = %d, want 1", i, summary.SignedHotels)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("summary recomputed despite warm cache: %v", err)
	}
}

func TestSummaryEndpointWorksWithoutCache(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	handler := NewHandler(NewServiceWithDB(mock), nil, logging.Default())
	srv := httptest.NewServer(handler.Routes())
	defer srv.Close()

	mock.ExpectQuery(`SELECT status, region FROM hotels`).
		WillReturnRows(pgxmock.NewRows([]string{"status", "region"}))

	resp, err := http.Get(srv.URL + "/summary")
	if err != nil {
		t.Fatalf("GET summary: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
