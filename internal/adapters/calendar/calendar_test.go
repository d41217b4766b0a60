package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/api/option"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
)

func TestUpcoming(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendars/primary/events" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("Authorization = %q", got)
		}
		q := r.URL.Query()
		if q.Get("timeMin") != now.Format(time.RFC3339) || q.Get("maxResults") != "10" ||
			q.Get("singleEvents") != "true" || q.Get("orderBy") != "startTime" {
			t.Errorf("unexpected query %v", q)
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[
			{"id":"e1","summary":"Standup","start":{"dateTime":"2024-05-01T09:00:00Z"},"end":{"dateTime":"2024-05-01T09:15:00Z"}},
			{"id":"e2","summary":"Offsite","location":"HQ","start":{"date":"2024-05-03"},"end":{"date":"2024-05-04"}}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(
		config.CalendarConfig{ClientID: "client", CalendarID: "primary", MaxResults: 10},
		option.WithEndpoint(srv.URL+"/"),
	)
	c.base = srv.Client().Transport
	c.now = func() time.Time { return now }

	events, err := c.Upcoming(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("Upcoming() error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	if events[0].Summary != "Standup" || events[0].AllDay || !events[0].Start.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("timed event = %+v", events[0])
	}
	if !events[1].AllDay || events[1].Location != "HQ" || !events[1].Start.Equal(time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("all-day event = %+v", events[1])
	}
}

func TestUpcomingNotConfigured(t *testing.T) {
	c := NewClient(config.CalendarConfig{CalendarID: "primary", MaxResults: 10})
	if _, err := c.Upcoming(context.Background(), "tok"); !errors.Is(err, config.ErrNotConfigured) {
		t.Errorf("error = %v, want ErrNotConfigured", err)
	}
}

func TestUpcomingRequiresToken(t *testing.T) {
	c := NewClient(config.CalendarConfig{ClientID: "client", MaxResults: 10})
	if _, err := c.Upcoming(context.Background(), " "); !errors.Is(err, entities.ErrUnauthenticated) {
		t.Errorf("error = %v, want ErrUnauthenticated", err)
	}
}

func TestUpcomingSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"code":401,"message":"Invalid Credentials"}}`)
	}))
	defer srv.Close()

	c := NewClient(config.CalendarConfig{ClientID: "client", MaxResults: 10}, option.WithEndpoint(srv.URL+"/"))
	c.base = srv.Client().Transport

	if _, err := c.Upcoming(context.Background(), "expired"); err == nil {
		t.Error("expected an error for a rejected token")
	}
}
