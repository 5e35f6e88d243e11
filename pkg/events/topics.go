package events

import (
	"fmt"

	"tableflip.dev/sobok/pkg/log"
)

const (
	// TopicShowAllStickers asks the active schedule view to reveal every
	// sticker left on a schedule entry.
	TopicShowAllStickers Topic = "showAllStickers"
	// TopicStickerSent announces that the user picked a sticker for a
	// schedule entry of a share contact.
	TopicStickerSent Topic = "stickerSent"
)

// ShowAllStickers is the payload of TopicShowAllStickers.
type ShowAllStickers struct {
	ScheduleID int
}

// Describe renders the payload for logs.
func (m ShowAllStickers) Describe() string {
	return fmt.Sprintf(`schedule:%d`, m.ScheduleID)
}

// StickerSent is the payload of TopicStickerSent. SenderIsLiked is true when
// the sender already reacted to the entry, in which case LikeScheduleID names
// the reaction to change.
type StickerSent struct {
	ScheduleID     int
	LikeScheduleID int
	StickerID      int
	SenderIsLiked  bool
}

// Describe renders the payload for logs.
func (m StickerSent) Describe() string {
	return fmt.Sprintf(`schedule:%d like:%d sticker:%d liked:%t`, m.ScheduleID, m.LikeScheduleID, m.StickerID, m.SenderIsLiked)
}

// SubscribeShowAllStickers registers a typed handler. Payloads of another
// shape are logged and dropped.
func (g *Group) SubscribeShowAllStickers(fn func(ShowAllStickers)) *Subscription {
	return g.Subscribe(TopicShowAllStickers, func(topic Topic, payload any) {
		switch msg := payload.(type) {
		case ShowAllStickers:
			fn(msg)
		case *ShowAllStickers:
			if msg != nil {
				fn(*msg)
			}
		default:
			log.Debug("events: unexpected payload", "topic", topic, "type", fmt.Sprintf("%T", payload))
		}
	})
}

// SubscribeStickerSent registers a typed handler. Payloads of another shape
// are logged and dropped.
func (g *Group) SubscribeStickerSent(fn func(StickerSent)) *Subscription {
	return g.Subscribe(TopicStickerSent, func(topic Topic, payload any) {
		switch msg := payload.(type) {
		case StickerSent:
			fn(msg)
		case *StickerSent:
			if msg != nil {
				fn(*msg)
			}
		default:
			log.Debug("events: unexpected payload", "topic", topic, "type", fmt.Sprintf("%T", payload))
		}
	})
}
