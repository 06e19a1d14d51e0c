// Package lifecycle holds the phase machine shared by both games.
package lifecycle

import (
	"errors"
	"fmt"
)

// Phase is where a game session stands.
type Phase int

const (
	NotStarted Phase = iota
	Playing
	Ended
)

// ErrTransition is returned for a transition the current phase forbids.
var ErrTransition = errors.New("invalid phase transition")

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not started"
	case Playing:
		return "playing"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Start moves to Playing. Starting while Playing is a restart and is
// allowed.
func (p *Phase) Start() {
	*p = Playing
}

// End moves Playing to Ended.
func (p *Phase) End() error {
	if *p != Playing {
		return fmt.Errorf("%w: end from %s", ErrTransition, *p)
	}
	*p = Ended
	return nil
}

// Active reports whether the game is being played.
func (p Phase) Active() bool {
	return p == Playing
}
