package mission

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/familyhub/internal/store"
)

// Definition describes a mission before it is stored.
type Definition struct {
	Title             string         `json:"title" mapstructure:"title" validate:"required,max=200"`
	Description       string         `json:"description" mapstructure:"description"`
	Type              string         `json:"mission_type" mapstructure:"mission_type" validate:"required"`
	Config            map[string]any `json:"config" mapstructure:"config"`
	RewardCash        int            `json:"reward_cash" mapstructure:"reward_cash" validate:"gte=0"`
	RewardIcon        string         `json:"reward_icon" mapstructure:"reward_icon" validate:"max=50"`
	RewardXP          int            `json:"reward_xp" mapstructure:"reward_xp" validate:"gte=0"`
	RewardDescription string         `json:"reward_description" mapstructure:"reward_description"`
	GemType           string         `json:"gem_type" mapstructure:"gem_type" validate:"omitempty,oneof=ruby emerald diamond sapphire amethyst topaz"`
	GemSize           string         `json:"gem_size" mapstructure:"gem_size" validate:"omitempty,oneof=small medium large"`
}

// DefaultRewardXP is the experience a completed mission is worth unless the
// definition says otherwise.
const DefaultRewardXP = 500

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. The mission type is checked against a
// registry separately.
func (d Definition) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, len(ve))
	for i, fe := range ve {
		msgs[i] = fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
	return fmt.Errorf("invalid mission: %s", strings.Join(msgs, ", "))
}

func (d Definition) toMission() *store.Mission {
	return &store.Mission{
		Title:             d.Title,
		Description:       d.Description,
		Type:              d.Type,
		Config:            d.Config,
		RewardCash:        d.RewardCash,
		RewardIcon:        d.RewardIcon,
		RewardXP:          d.RewardXP,
		RewardDescription: d.RewardDescription,
		GemType:           d.GemType,
		GemSize:           d.GemSize,
	}
}

// Seeds are the missions a fresh install starts with.
func Seeds() []Definition {
	return []Definition{
		{
			Title: "Multiplication Master",
			Description: "Master your multiplication tables from 1x1 to 12x12! " +
				"Train with adaptive practice sessions, then pass three test levels " +
				"to prove your skills and earn the Lightning Brain icon.",
			Type: TypeMultiplication,
			Config: map[string]any{
				"range_min":                      1,
				"range_max":                      12,
				"test_questions":                 45,
				"training_questions_per_session": 20,
			},
			RewardCash: 50,
			RewardIcon: "lightning_brain",
			RewardXP:   DefaultRewardXP,
			GemType:    "diamond",
			GemSize:    "large",
		},
		{
			Title: "Piano Performance",
			Description: "Learn and perform a piano piece! Practice on your own, " +
				"then tell us when you're ready. An admin will listen to your " +
				"performance and approve your mission completion.",
			Type: TypePiano,
			Config: map[string]any{
				"piece_name":   "Fur Elise",
				"description":  "Play Fur Elise all the way through without mistakes",
				"verification": "admin_approval",
			},
			RewardCash: 50,
			RewardIcon: "golden_music_note",
			RewardXP:   DefaultRewardXP,
			GemType:    "sapphire",
			GemSize:    "medium",
		},
	}
}
