package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Persistence, int) {
	t.Helper()
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	slot := &store.ScheduleRecord{MemberID: "me", Date: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), TimeSlot: "08:00"}
	if err := p.PutSchedule(slot); err != nil {
		t.Fatalf("put schedule: %v", err)
	}
	if err := p.PutPill(&store.PillRecord{ScheduleID: slot.ID, MemberID: "me", Name: "Vitamin D", TimeSlot: "08:00"}); err != nil {
		t.Fatalf("put pill: %v", err)
	}
	srv := httptest.NewServer(New(p, "test").Handler())
	t.Cleanup(srv.Close)
	return srv, p, slot.ID
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestListSchedules(t *testing.T) {
	srv, _, id := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/members/me/schedules?date=2024-03-15", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got []schedule.Schedule
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != id || got[0].Completion != schedule.Pending {
		t.Fatalf("unexpected schedules %+v", got)
	}
}

func TestListSchedulesRejectsBadDate(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/members/me/schedules?date=march", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSetChecked(t *testing.T) {
	srv, p, id := newTestServer(t)
	resp := do(t, http.MethodPut, srv.URL+"/schedules/"+strconv.Itoa(id)+"/check", `{"checked": true}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	got := p.Schedules(context.Background(), "me", schedule.Day{Year: 2024, Month: time.March, Day: 1})
	if got[0].Completion != schedule.Done {
		t.Fatalf("expected done, got %q", got[0].Completion)
	}

	resp = do(t, http.MethodPut, srv.URL+"/schedules/999/check", `{"checked": true}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	resp = do(t, http.MethodPut, srv.URL+"/schedules/"+strconv.Itoa(id)+"/check", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing checked, got %d", resp.StatusCode)
	}
}

func TestStickers(t *testing.T) {
	srv, p, id := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/schedules/"+strconv.Itoa(id)+"/stickers", `{"stickerId": 2, "sender": "187"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on a slot nobody took yet, got %d", resp.StatusCode)
	}
	if err := p.SetChecked(context.Background(), id, true); err != nil {
		t.Fatalf("set checked: %v", err)
	}

	resp = do(t, http.MethodPost, srv.URL+"/schedules/"+strconv.Itoa(id)+"/stickers", `{"stickerId": 2, "sender": "187", "senderName": "Friend"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created schedule.StickerReaction
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	resp = do(t, http.MethodPost, srv.URL+"/schedules/"+strconv.Itoa(id)+"/stickers", `{"stickerId": 3, "sender": "187"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for a second reaction, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodPut, srv.URL+"/likes/"+strconv.Itoa(created.LikeScheduleID), `{"stickerId": 4}`)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, srv.URL+"/schedules/"+strconv.Itoa(id)+"/stickers?viewer=187", "")
	var list []schedule.StickerReaction
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].StickerID != 4 || !list[0].SenderIsLiked || list[0].SenderName != "Friend" {
		t.Fatalf("unexpected stickers %+v", list)
	}
}

func TestInvalidID(t *testing.T) {
	srv, _, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/schedules/abc/stickers", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
