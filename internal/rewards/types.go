// Package rewards credits mission rewards: cash into the ledger, experience
// toward the next level and the mission icon onto the user's profile.
package rewards

import "context"

// Grant is one mission reward for one user.
type Grant struct {
	UserID      string `json:"user_id"`
	Cash        int    `json:"cash"`
	XP          int    `json:"xp"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description"`
}

// Granter delivers a reward. Callers treat it as fire-and-forget: a failed
// grant is reported but never undoes the mission completion.
type Granter interface {
	Grant(ctx context.Context, g Grant) error
}

// GemType is the decorative gem shown for a completed mission.
type GemType string

const (
	GemRuby     GemType = "ruby"
	GemEmerald  GemType = "emerald"
	GemDiamond  GemType = "diamond"
	GemSapphire GemType = "sapphire"
	GemAmethyst GemType = "amethyst"
	GemTopaz    GemType = "topaz"
)

// AllGemTypes returns all gem types in display order.
func AllGemTypes() []GemType {
	return []GemType{GemRuby, GemEmerald, GemDiamond, GemSapphire, GemAmethyst, GemTopaz}
}

// Icon returns the display icon for the gem type.
func (t GemType) Icon() string {
	switch t {
	case GemRuby:
		return "🔴"
	case GemEmerald:
		return "🟢"
	case GemDiamond:
		return "💎"
	case GemSapphire:
		return "🔵"
	case GemAmethyst:
		return "🟣"
	case GemTopaz:
		return "🟡"
	default:
		return "✦"
	}
}

// GemSize scales the gem shown for a completed mission.
type GemSize string

const (
	GemSmall  GemSize = "small"
	GemMedium GemSize = "medium"
	GemLarge  GemSize = "large"
)
