package msgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/oauth2"
)

const (
	graphBaseURL = "https://graph.microsoft.com/v1.0"
	// eventsPerPage is the $top value for calendarView requests.
	eventsPerPage = 100
)

// Client reads a user's Outlook calendar through Microsoft Graph.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a client authorised by tok. Tokens refreshed during an
// import are written back to store so the next run skips the device flow.
func NewClient(ctx context.Context, store *TokenStore, tok *oauth2.Token, cfg *oauth2.Config) *Client {
	ts := cfg.TokenSource(ctx, tok)
	return &Client{
		httpClient: oauth2.NewClient(ctx, &savingTokenSource{ts: ts, store: store}),
		baseURL:    graphBaseURL,
	}
}

// savingTokenSource persists every token it hands out.
type savingTokenSource struct {
	ts    oauth2.TokenSource
	store *TokenStore
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.ts.Token()
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(tok); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save refreshed token: %v\n", err)
	}
	return tok, nil
}

// CalendarEvent is the subset of a Graph event a journal import needs: the
// subject becomes the task text, start and end bound the entry, and the flags
// decide whether the event counts as work at all.
type CalendarEvent struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	IsAllDay    bool   `json:"isAllDay"`
	IsCancelled bool   `json:"isCancelled"`
	Sensitivity string `json:"sensitivity"` // "normal", "personal", "private", "confidential"
	ShowAs      string `json:"showAs"`      // "free", "tentative", "busy", "oof", "workingElsewhere", "unknown"
	Start       struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"start"`
	End struct {
		DateTime string `json:"dateTime"`
		TimeZone string `json:"timeZone"`
	} `json:"end"`
}

// calendarViewResponse is one page of a calendarView listing.
type calendarViewResponse struct {
	Value    []CalendarEvent `json:"value"`
	NextLink string          `json:"@odata.nextLink"`
}

// GetCalendarView returns every event overlapping [from, to), following
// @odata.nextLink until the listing is exhausted. Event times come back in
// timezone (an IANA name such as "Europe/Berlin"), or UTC when it is empty.
func (c *Client) GetCalendarView(ctx context.Context, from, to time.Time, timezone string) ([]CalendarEvent, error) {
	startISO := from.UTC().Format(time.RFC3339)
	endISO := to.UTC().Format(time.RFC3339)

	endpoint := fmt.Sprintf("%s/me/calendarView?startDateTime=%s&endDateTime=%s&$orderby=start/dateTime&$top=%d",
		c.baseURL,
		url.QueryEscape(startISO),
		url.QueryEscape(endISO),
		eventsPerPage,
	)

	var events []CalendarEvent
	for endpoint != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if timezone != "" {
			req.Header.Set("Prefer", fmt.Sprintf(`outlook.timezone="%s"`, timezone))
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching calendar events: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("graph API error %d: %s", resp.StatusCode, string(body))
		}

		var page calendarViewResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding graph response: %w", err)
		}

		events = append(events, page.Value...)
		endpoint = page.NextLink
	}
	return events, nil
}
