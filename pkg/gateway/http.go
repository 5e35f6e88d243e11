package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/schedule"
)

// HTTP is a Gateway backed by the sobok server API.
type HTTP struct {
	base   string
	self   string
	name   string
	client *http.Client
}

var _ Gateway = (*HTTP)(nil)

// NewHTTP creates a gateway for the server at base acting as member self.
// A zero timeout leaves deadlines to the caller's context.
func NewHTTP(base, self, name string, timeout time.Duration) *HTTP {
	return &HTTP{
		base: strings.TrimRight(base, "/"),
		self: self,
		name: name,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (g *HTTP) FetchSchedules(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.Schedule, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	var out []schedule.Schedule
	path := "/members/" + url.PathEscape(scope.Resolve(g.self)) + "/schedules"
	q := url.Values{"date": {day.String()}}
	if err := g.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *HTTP) FetchPillEntries(ctx context.Context, day schedule.Day, scope schedule.Scope) ([]schedule.PillEntry, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}
	var out []schedule.PillEntry
	path := "/members/" + url.PathEscape(scope.Resolve(g.self)) + "/pills"
	q := url.Values{"date": {day.String()}, "viewer": {g.self}}
	if err := g.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *HTTP) FetchStickers(ctx context.Context, scheduleID int) ([]schedule.StickerReaction, error) {
	var out []schedule.StickerReaction
	path := "/schedules/" + strconv.Itoa(scheduleID) + "/stickers"
	if err := g.do(ctx, http.MethodGet, path, url.Values{"viewer": {g.self}}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *HTTP) SetPillChecked(ctx context.Context, scheduleID int, checked bool) error {
	body := map[string]bool{"checked": checked}
	return g.do(ctx, http.MethodPut, "/schedules/"+strconv.Itoa(scheduleID)+"/check", nil, body, nil)
}

func (g *HTTP) SendStickerReaction(ctx context.Context, scheduleID, stickerID int) error {
	body := map[string]any{
		"stickerId":  stickerID,
		"sender":     g.self,
		"senderName": g.name,
	}
	return g.do(ctx, http.MethodPost, "/schedules/"+strconv.Itoa(scheduleID)+"/stickers", nil, body, nil)
}

func (g *HTTP) ChangeStickerReaction(ctx context.Context, likeScheduleID, stickerID int) error {
	body := map[string]int{"stickerId": stickerID}
	return g.do(ctx, http.MethodPut, "/likes/"+strconv.Itoa(likeScheduleID), nil, body, nil)
}

func (g *HTTP) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := g.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s: %w", path, err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug("gateway request", "method", method, "path", path)
	resp, err := g.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("gateway: %s %s: %w", method, path, schedule.ErrTimeout)
		}
		return fmt.Errorf("gateway: %s %s: %w: %v", method, path, schedule.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		return fmt.Errorf("gateway: %s %s: %w", method, path, &schedule.RemoteError{
			Status:  resp.StatusCode,
			Message: apiErr.Error,
		})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("gateway: %s %s: %w", method, path, schedule.ErrTimeout)
		}
		return fmt.Errorf("gateway: %s %s: %w", method, path, &schedule.RemoteError{
			Status:  resp.StatusCode,
			Message: "malformed payload: " + err.Error(),
		})
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
