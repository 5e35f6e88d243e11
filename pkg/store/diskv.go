package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/sobok/pkg/log"
	"tableflip.dev/sobok/pkg/schedule"
)

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("store: record not found")
	// ErrConflict is returned when a write would duplicate an existing record.
	ErrConflict = errors.New("store: record conflict")
)

// Persistence defines the persistence contract for schedules, pills and likes.
type Persistence interface {
	Schedules(ctx context.Context, member string, month schedule.Day) []schedule.Schedule
	Pills(ctx context.Context, member string, day schedule.Day, viewer string) []schedule.PillEntry
	Likes(ctx context.Context, scheduleID int, viewer string) []schedule.StickerReaction
	PutSchedule(r *ScheduleRecord) error
	PutPill(r *PillRecord) error
	SetChecked(ctx context.Context, scheduleID int, checked bool) error
	AddLike(ctx context.Context, scheduleID int, sender, senderName string, stickerID int) (*LikeRecord, error)
	ChangeLike(ctx context.Context, likeID, stickerID int) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	// mu serialises read-modify-write sequences; diskv guards single ops.
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Schedules(ctx context.Context, member string, month schedule.Day) []schedule.Schedule {
	pills := p.pillsBySchedule(ctx)
	all := make([]schedule.Schedule, 0)
	for _, r := range p.scheduleRecords(ctx) {
		if r.MemberID != member || !schedule.DayOf(r.Date).SameMonth(month) {
			continue
		}
		all = append(all, schedule.Schedule{
			ID:         r.ID,
			MemberID:   r.MemberID,
			Date:       r.Date,
			TimeSlot:   r.TimeSlot,
			Completion: completionOf(pills[r.ID]),
		})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Date.Equal(all[j].Date) {
			return all[i].ID < all[j].ID
		}
		return all[i].Date.Before(all[j].Date)
	})
	return all
}

func (p *persistence) Pills(ctx context.Context, member string, day schedule.Day, viewer string) []schedule.PillEntry {
	slots := make(map[int]*ScheduleRecord)
	for _, r := range p.scheduleRecords(ctx) {
		if r.MemberID == member && schedule.DayOf(r.Date) == day {
			slots[r.ID] = r
		}
	}
	likes := p.likesBySchedule(ctx)

	all := make([]schedule.PillEntry, 0)
	for _, r := range p.pillRecords(ctx) {
		if _, ok := slots[r.ScheduleID]; !ok {
			continue
		}
		entry := schedule.PillEntry{
			ID:           r.ID,
			ScheduleID:   r.ScheduleID,
			Name:         r.Name,
			TimeSlot:     r.TimeSlot,
			MemberID:     r.MemberID,
			Checked:      r.Checked,
			StickerCount: len(likes[r.ScheduleID]),
		}
		for _, like := range likes[r.ScheduleID] {
			if viewer != "" && like.SenderID == viewer {
				entry.IsLiked = true
				entry.LikeScheduleID = like.ID
			}
		}
		all = append(all, entry)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].TimeSlot == all[j].TimeSlot {
			return all[i].ID < all[j].ID
		}
		return all[i].TimeSlot < all[j].TimeSlot
	})
	return all
}

func (p *persistence) Likes(ctx context.Context, scheduleID int, viewer string) []schedule.StickerReaction {
	records := p.likesBySchedule(ctx)[scheduleID]
	all := make([]schedule.StickerReaction, 0, len(records))
	for _, r := range records {
		all = append(all, schedule.StickerReaction{
			ScheduleID:     r.ScheduleID,
			LikeScheduleID: r.ID,
			StickerID:      r.StickerID,
			SenderIsLiked:  viewer != "" && r.SenderID == viewer,
			SenderName:     r.SenderName,
			Created:        r.Created,
		})
	}
	return all
}

func (p *persistence) PutSchedule(r *ScheduleRecord) error {
	if r == nil {
		return errors.New("store: nil schedule")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if r.ID == 0 {
		r.ID = p.nextID(KindSchedule)
	}
	return p.write(KindSchedule, r.ID, r)
}

func (p *persistence) PutPill(r *PillRecord) error {
	if r == nil {
		return errors.New("store: nil pill")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.d.Has(toKey(KindSchedule, r.ScheduleID)) {
		return fmt.Errorf("store: pill for schedule %d: %w", r.ScheduleID, ErrNotFound)
	}
	if r.ID == 0 {
		r.ID = p.nextID(KindPill)
	}
	return p.write(KindPill, r.ID, r)
}

func (p *persistence) SetChecked(ctx context.Context, scheduleID int, checked bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.d.Has(toKey(KindSchedule, scheduleID)) {
		return fmt.Errorf("store: schedule %d: %w", scheduleID, ErrNotFound)
	}
	for _, r := range p.pillRecords(ctx) {
		if r.ScheduleID != scheduleID || r.Checked == checked {
			continue
		}
		r.Checked = checked
		if err := p.write(KindPill, r.ID, r); err != nil {
			return err
		}
	}
	if checked {
		return nil
	}
	// Stickers belong to a taken slot and go with it.
	for _, like := range p.likesBySchedule(ctx)[scheduleID] {
		if err := p.d.Erase(toKey(KindLike, like.ID)); err != nil {
			return fmt.Errorf("store: drop like %d: %w", like.ID, err)
		}
	}
	return nil
}

func (p *persistence) AddLike(ctx context.Context, scheduleID int, sender, senderName string, stickerID int) (*LikeRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.d.Has(toKey(KindSchedule, scheduleID)) {
		return nil, fmt.Errorf("store: schedule %d: %w", scheduleID, ErrNotFound)
	}
	if c := completionOf(p.pillsBySchedule(ctx)[scheduleID]); c == schedule.Pending {
		return nil, fmt.Errorf("store: schedule %d is %s, nothing to react to: %w", scheduleID, c, ErrConflict)
	}
	for _, existing := range p.likesBySchedule(ctx)[scheduleID] {
		if existing.SenderID == sender {
			return nil, fmt.Errorf("store: %s already reacted to schedule %d: %w", sender, scheduleID, ErrConflict)
		}
	}
	r := &LikeRecord{
		ID:         p.nextID(KindLike),
		ScheduleID: scheduleID,
		SenderID:   sender,
		SenderName: senderName,
		StickerID:  stickerID,
		Created:    time.Now().UTC(),
	}
	if err := p.write(KindLike, r.ID, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *persistence) ChangeLike(_ context.Context, likeID, stickerID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := &LikeRecord{}
	if err := p.read(toKey(KindLike, likeID), r); err != nil {
		return fmt.Errorf("store: like %d: %w", likeID, ErrNotFound)
	}
	r.StickerID = stickerID
	return p.write(KindLike, r.ID, r)
}

func (p *persistence) write(kind string, id int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(kind, id), data)
}

func (p *persistence) read(key string, v any) error {
	val, err := p.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(val, v)
}

func (p *persistence) keys(ctx context.Context, kind string) []string {
	var keys []string
	for key := range p.d.KeysPrefix(kind+"-", ctx.Done()) {
		keys = append(keys, key)
	}
	return keys
}

func (p *persistence) scheduleRecords(ctx context.Context) []*ScheduleRecord {
	var all []*ScheduleRecord
	for _, key := range p.keys(ctx, KindSchedule) {
		r := &ScheduleRecord{}
		if err := p.read(key, r); err != nil {
			log.Error("store: read schedule", err, "key", key)
			continue
		}
		all = append(all, r)
	}
	return all
}

func (p *persistence) pillRecords(ctx context.Context) []*PillRecord {
	var all []*PillRecord
	for _, key := range p.keys(ctx, KindPill) {
		r := &PillRecord{}
		if err := p.read(key, r); err != nil {
			log.Error("store: read pill", err, "key", key)
			continue
		}
		all = append(all, r)
	}
	return all
}

func (p *persistence) pillsBySchedule(ctx context.Context) map[int][]*PillRecord {
	out := make(map[int][]*PillRecord)
	for _, r := range p.pillRecords(ctx) {
		out[r.ScheduleID] = append(out[r.ScheduleID], r)
	}
	return out
}

func (p *persistence) likesBySchedule(ctx context.Context) map[int][]*LikeRecord {
	out := make(map[int][]*LikeRecord)
	for _, key := range p.keys(ctx, KindLike) {
		r := &LikeRecord{}
		if err := p.read(key, r); err != nil {
			log.Error("store: read like", err, "key", key)
			continue
		}
		out[r.ScheduleID] = append(out[r.ScheduleID], r)
	}
	for id := range out {
		list := out[id]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ID < list[j].ID
		})
	}
	return out
}

// nextID returns one more than the largest id of kind. Callers hold p.mu.
func (p *persistence) nextID(kind string) int {
	highest := 0
	for key := range p.d.KeysPrefix(kind+"-", nil) {
		pk := keyToPathTransform(key)
		if id, err := strconv.Atoi(pk.FileName); err == nil && id > highest {
			highest = id
		}
	}
	return highest + 1
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `kind-id`
func toKey(kind string, id int) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

// kindForPath maps a file under basePath back to its record kind.
func kindForPath(base, path string) string {
	rel := strings.TrimPrefix(strings.TrimPrefix(path, base), string(os.PathSeparator))
	if rel == "" {
		return ""
	}
	kind := strings.SplitN(rel, string(os.PathSeparator), 2)[0]
	switch kind {
	case KindSchedule, KindPill, KindLike:
		return kind
	default:
		return ""
	}
}
