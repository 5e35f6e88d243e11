package options

import (
	"github.com/spf13/cobra"
)

// StickerOptions
type StickerOptions struct {
	StickerID int
	LikeID    int
}

func AddStickerArgs(cmd *cobra.Command, o *StickerOptions) {
	cmd.Flags().IntVarP(&o.StickerID, "sticker", "s", 1,
		"Sticker to leave.")
	cmd.Flags().IntVar(&o.LikeID, "like", 0,
		"Change this existing reaction instead of looking it up.")
}
