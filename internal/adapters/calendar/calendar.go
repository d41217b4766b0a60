// Package calendar reads upcoming events from Google Calendar with a user
// supplied OAuth access token. Nothing it returns is stored.
package calendar

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/jobtasks/dashboard/internal/domain/entities"
	"github.com/jobtasks/dashboard/internal/infrastructure/config"
	"github.com/jobtasks/dashboard/internal/ports"
)

// Client implements ports.CalendarSource.
type Client struct {
	cfg     config.CalendarConfig
	base    http.RoundTripper
	options []option.ClientOption
	now     func() time.Time
}

var _ ports.CalendarSource = (*Client)(nil)

// NewClient builds a calendar source. opts are passed to the Calendar API
// service, after the authenticated HTTP client.
func NewClient(cfg config.CalendarConfig, opts ...option.ClientOption) *Client {
	return &Client{cfg: cfg, options: opts, now: time.Now}
}

// Upcoming lists the next events of the configured calendar, starting now,
// expanded to single instances and ordered by start time.
func (c *Client) Upcoming(ctx context.Context, accessToken string) ([]entities.CalendarEvent, error) {
	if err := c.cfg.Configured(); err != nil {
		return nil, err
	}
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil, fmt.Errorf("calendar access token: %w", entities.ErrUnauthenticated)
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
			Base:   c.base,
		},
	}

	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, c.options...)
	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	calendarID := c.cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	events, err := srv.Events.List(calendarID).
		TimeMin(c.now().Format(time.RFC3339)).
		MaxResults(c.cfg.MaxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from calendar: %w", err)
	}

	out := make([]entities.CalendarEvent, 0, len(events.Items))
	for _, item := range events.Items {
		out = append(out, toEvent(item))
	}
	return out, nil
}

func toEvent(item *gcal.Event) entities.CalendarEvent {
	ev := entities.CalendarEvent{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		Location:    item.Location,
	}
	ev.Start, ev.AllDay = eventTime(item.Start)
	ev.End, _ = eventTime(item.End)
	return ev
}

// eventTime reads either a timed or an all-day boundary. All-day dates are
// taken as UTC midnight.
func eventTime(t *gcal.EventDateTime) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed, false
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse(entities.DateLayout, t.Date); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
