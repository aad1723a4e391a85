package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ListEvents returns the events on a user's calendar whose start falls inside
// the given window. Only the fields the validator needs are selected.
func (c *Client) ListEvents(ctx context.Context, email string, from, to time.Time) ([]CalendarEvent, error) {
	params := url.Values{}
	params.Set("startDateTime", from.Format("2006-01-02T15:04:05"))
	params.Set("endDateTime", to.Format("2006-01-02T15:04:05"))
	params.Set("$select", "id,start,end,subject,location")

	u := fmt.Sprintf("%s/users/%s/calendar/events?%s", c.cfg.BaseURL, url.PathEscape(email), params.Encode())
	resp, err := c.do(ctx, "list events", http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, err
	}
	body := readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, requestError("list events", resp.StatusCode, body)
	}
	var list eventList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("graph: decode event list: %w", err)
	}
	return list.Value, nil
}
