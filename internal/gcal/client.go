// Package gcal imports busy time from a Google Calendar into a freetime.Ledger.
package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenSource builds an OAuth token source from a client secrets file and a
// previously stored token.
func TokenSource(ctx context.Context, credentialsPath, tokenPath string) (oauth2.TokenSource, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("gcal: read client secret file %s: %w", credentialsPath, err)
	}
	cfg, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("gcal: parse client secret file: %w", err)
	}

	f, err := os.Open(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("gcal: open token file: %w", err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("gcal: decode token file %s: %w", tokenPath, err)
	}
	return cfg.TokenSource(ctx, tok), nil
}

// Client reads events from one calendar.
type Client struct {
	srv        *calendar.Service
	calendarID string
}

// NewClient creates a calendar client authenticated by ts.
func NewClient(ctx context.Context, ts oauth2.TokenSource, calendarID string) (*Client, error) {
	srv, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("gcal: unable to create calendar service: %w", err)
	}
	return NewClientWithService(srv, calendarID), nil
}

// NewClientWithService wraps an existing calendar service.
func NewClientWithService(srv *calendar.Service, calendarID string) *Client {
	return &Client{srv: srv, calendarID: calendarID}
}

// Events fetches the single (recurrence-expanded) events overlapping [from, to).
func (c *Client) Events(ctx context.Context, from, to time.Time) ([]*calendar.Event, error) {
	var events []*calendar.Event
	err := c.srv.Events.List(c.calendarID).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		Pages(ctx, func(page *calendar.Events) error {
			events = append(events, page.Items...)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("gcal: unable to retrieve events from calendar: %w", err)
	}
	return events, nil
}
