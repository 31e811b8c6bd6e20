package core

// SkinMode selects how the snake's look is chosen at the start of a game.
type SkinMode int

const (
	// SkinRandom picks a random body color from the classic palette on every start.
	SkinRandom SkinMode = iota
	// SkinChosen keeps the body color and head icon picked by the player.
	SkinChosen
)

// Rules is the ruleset a session plays by.
// The shipped variants differ only in these values.
type Rules struct {
	Start             Cell      // Head cell at game start
	StartLength       int       // Number of cells at game start, laid out behind the head
	StartDir          Direction // Initial movement direction
	SelfCollisionFrom int       // First body index checked against the head after a move
	SkinMode          SkinMode  // How the body color is picked
}

// DefaultRules returns the classic ruleset.
func DefaultRules() Rules {
	return Rules{
		Start:             Cell{X: 10, Y: 10},
		StartLength:       3,
		StartDir:          DirRight,
		SelfCollisionFrom: 4,
		SkinMode:          SkinRandom,
	}
}
