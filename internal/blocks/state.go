// Package blocks implements the falling-block game: a grid, a falling
// piece, collision, rotation and locking. State is driven by its
// methods only; it never reads input or draws.
package blocks

import (
	"math/rand/v2"
	"time"

	"github.com/plus3/stackgames/internal/config"
	"github.com/plus3/stackgames/internal/lifecycle"
)

// MoveResult tells the caller what a move did.
type MoveResult int

const (
	// Blocked means the move was rejected and nothing changed.
	Blocked MoveResult = iota
	Moved
	// Locked means a downward move was rejected, the piece locked and a
	// new one spawned.
	Locked
)

func (r MoveResult) String() string {
	switch r {
	case Moved:
		return "moved"
	case Locked:
		return "locked"
	default:
		return "blocked"
	}
}

// State is one session of the falling-block game.
type State struct {
	Board  *Board
	Active Piece
	Phase  lifecycle.Phase

	// Spawned and LockedPieces count pieces this session; Lines counts
	// rows removed when line clearing is on.
	Spawned      int
	LockedPieces int
	Lines        int
	// LastLock holds the cells written by the most recent lock.
	LastLock []Cell

	cfg  config.Blocks
	rng  *rand.Rand
	bag  []Kind
	drop time.Duration
}

// New builds an idle game. Call Start to spawn the first piece.
func New(cfg config.Blocks) *State {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &State{
		Board: NewBoard(cfg.Rows, cfg.Cols),
		cfg:   cfg,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Start clears the board and spawns a piece. It also restarts a running
// or ended game.
func (s *State) Start() {
	s.Board.reset()
	s.Spawned = 0
	s.LockedPieces = 0
	s.Lines = 0
	s.LastLock = nil
	s.drop = 0
	s.bag = s.bag[:0]
	s.Phase.Start()
	s.Spawn()
}

// SpawnPoint is the pivot every new piece starts at: top row, centre.
func (s *State) SpawnPoint() Cell {
	return Cell{X: s.Board.Cols()/2 - 1, Y: 0}
}

func (s *State) nextKind() Kind {
	if len(s.bag) == 0 {
		s.bag = append(s.bag, Kinds[:]...)
		s.rng.Shuffle(len(s.bag), func(i, j int) {
			s.bag[i], s.bag[j] = s.bag[j], s.bag[i]
		})
	}
	k := s.bag[0]
	s.bag = s.bag[1:]
	return k
}

// Spawn replaces the active piece with the next one from the bag. When
// the new piece does not fit the session ends and Spawn returns false.
func (s *State) Spawn() bool {
	return s.spawnKind(s.nextKind())
}

func (s *State) spawnKind(k Kind) bool {
	s.Spawned++
	s.Active = Piece{
		Kind:   k,
		Matrix: k.Matrix(),
		Pos:    s.SpawnPoint(),
		Serial: s.Spawned,
	}
	if !IsValidPlacement(s.Board, s.Active.Matrix, s.Active.Pos) {
		_ = s.Phase.End()
		return false
	}
	return true
}

// Move shifts the active piece by (dx, dy); positive dy is towards the
// floor. A rejected sideways move changes nothing; a rejected downward
// move locks the piece.
func (s *State) Move(dx, dy int) MoveResult {
	if !s.Phase.Active() {
		return Blocked
	}

	target := s.Active.Pos.Add(Cell{X: dx, Y: dy})
	valid := IsValidPlacement(s.Board, s.Active.Matrix, target)
	if valid {
		s.Active.Pos = target
		return Moved
	}
	if s.LockIfGrounded(dy, valid) {
		return Locked
	}
	return Blocked
}

// LockIfGrounded locks the active piece when a downward move (dy > 0) was
// found invalid, and reports whether it did.
func (s *State) LockIfGrounded(dy int, valid bool) bool {
	if valid || dy <= 0 || !s.Phase.Active() {
		return false
	}
	s.Lock()
	return true
}

// Lock writes the active piece into the board, clears full rows when
// configured to, and spawns the next piece. It returns the cells written.
func (s *State) Lock() []Cell {
	cells := s.Active.Cells()
	for _, c := range cells {
		s.Board.fill(c, s.Active.Kind)
	}
	s.LockedPieces++
	s.LastLock = cells

	if s.cfg.ClearLines {
		if full := s.Board.FullRows(); len(full) > 0 {
			s.Board.clearRows(full)
			s.Lines += len(full)
		}
	}

	s.drop = 0
	s.Spawn()
	return cells
}

// Rotate turns the active piece clockwise around its pivot if the result
// fits, and reports whether it did.
func (s *State) Rotate() bool {
	return s.rotate(s.Active.Matrix.Rotate())
}

// RotateCounter is Rotate in the other direction.
func (s *State) RotateCounter() bool {
	return s.rotate(s.Active.Matrix.RotateCounter())
}

func (s *State) rotate(rotated Matrix) bool {
	if !s.Phase.Active() || !IsValidPlacement(s.Board, rotated, s.Active.Pos) {
		return false
	}
	s.Active.Matrix = rotated
	return true
}

// Ghost is the pivot the active piece would land on if dropped straight
// down.
func (s *State) Ghost() Cell {
	pos := s.Active.Pos
	for IsValidPlacement(s.Board, s.Active.Matrix, pos.Add(Cell{Y: 1})) {
		pos.Y++
	}
	return pos
}

// HardDrop drops the active piece to its ghost row and locks it. It
// returns the number of rows fallen.
func (s *State) HardDrop() int {
	if !s.Phase.Active() {
		return 0
	}
	ghost := s.Ghost()
	fallen := ghost.Y - s.Active.Pos.Y
	s.Active.Pos = ghost
	s.Lock()
	return fallen
}

// Tick advances gravity by dt, moving the piece down one row each time a
// drop interval has elapsed.
func (s *State) Tick(dt time.Duration) MoveResult {
	if !s.Phase.Active() {
		return Blocked
	}
	s.drop += dt
	if s.drop < s.cfg.DropInterval {
		return Blocked
	}
	s.drop = 0
	return s.Move(0, 1)
}
