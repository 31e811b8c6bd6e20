package audio

// Silent is a player that plays nothing. Used with --mute, when no audio
// device is available, and by the servers, which only send sound names.
type Silent struct{}

func (Silent) PlayEat()      {}
func (Silent) PlayGameOver() {}
