package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// ErrSkinLocked is returned when the active ruleset picks skins itself.
var ErrSkinLocked = errors.New("snake: skin is chosen by the ruleset")

// ErrUnknownSkin is returned for a color or icon outside the palettes.
var ErrUnknownSkin = errors.New("snake: unknown skin")

// Skin is the look of the snake: body color and the icon drawn on the head.
type Skin struct {
	BodyColor string `json:"bodyColor" yaml:"color"`
	HeadIcon  string `json:"headIcon,omitempty" yaml:"icon"`
}

// ClassicColors is the palette a random body color is drawn from.
var ClassicColors = []string{
	"#10e7e7ff", "#ff00ffff", "#ebeb0ddc", "#ff4400ff",
	"#32CD32", "#3b3b3b36", "#ffffffff", "#dfbf0dff",
}

// CustomColors are the body colors a player can pick.
var CustomColors = []string{"#00FF00", "#FF0000", "#0000FF", "#FFFF00", "#FF00FF"}

// HeadIcons are the head icons a player can pick.
var HeadIcons = []string{"⚪", "⚫", "👁️", "👀", "🟢"}

// headRunes maps each head icon to a single-width rune for terminals.
var headRunes = map[string]rune{
	"⚪":  '○',
	"⚫":  '●',
	"👁️": '◉',
	"👀":  '◎',
	"🟢":  '◍',
}

// DefaultSkin is the first color and icon of the player palettes.
func DefaultSkin() Skin {
	return Skin{BodyColor: CustomColors[0], HeadIcon: HeadIcons[0]}
}

// RandomSkin draws a body color from ClassicColors. Random skins carry no head icon.
func RandomSkin(rng *rand.Rand) Skin {
	return Skin{BodyColor: ClassicColors[rng.Intn(len(ClassicColors))]}
}

// Validate checks that the skin uses the player palettes.
func (s Skin) Validate() error {
	if !slices.Contains(CustomColors, s.BodyColor) {
		return fmt.Errorf("%w: color %q", ErrUnknownSkin, s.BodyColor)
	}
	if !slices.Contains(HeadIcons, s.HeadIcon) {
		return fmt.Errorf("%w: icon %q", ErrUnknownSkin, s.HeadIcon)
	}
	return nil
}

// NextColor returns the skin with the following player color, wrapping around.
func (s Skin) NextColor() Skin {
	s.BodyColor = cycle(CustomColors, s.BodyColor)
	return s
}

// NextIcon returns the skin with the following head icon, wrapping around.
func (s Skin) NextIcon() Skin {
	s.HeadIcon = cycle(HeadIcons, s.HeadIcon)
	return s
}

func cycle(list []string, current string) string {
	i := slices.Index(list, current)
	return list[(i+1)%len(list)]
}

// TermColor is the nearest terminal color to the body color.
func (s Skin) TermColor() core.Color {
	return core.NearestColor(s.BodyColor)
}

// HeadRune is the terminal rune for the head icon, or 0 when there is none.
func (s Skin) HeadRune() rune {
	return headRunes[s.HeadIcon]
}
