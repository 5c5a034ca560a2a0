package game

// ExplosionSheet describes a sprite-sheet explosion animation
type ExplosionSheet struct {
	Texture       TextureID
	FramesPerLine int
	NumLines      int
}

// explosionA is the stock 5x5 explosion sheet played on unit destruction
var explosionA = ExplosionSheet{
	Texture:       TextureExplosionA,
	FramesPerLine: 5,
	NumLines:      5,
}

// Frames to hold each cell of the sheet before advancing
const explosionFrameHold = 3

// ExplosionState is a one-shot playback of an explosion sheet. It advances
// on every Advance call and deactivates itself after the last cell; an
// inactive state never reactivates.
type ExplosionState struct {
	Sheet   ExplosionSheet
	Frame   int
	Line    int
	Active  bool
	counter int
}

// NewExplosionState starts a playback of the stock explosion sheet
func NewExplosionState() *ExplosionState {
	return &ExplosionState{Sheet: explosionA, Active: true}
}

// Advance steps the animation one game frame
func (s *ExplosionState) Advance() {
	if s == nil || !s.Active {
		return
	}
	s.counter++
	if s.counter < explosionFrameHold {
		return
	}
	s.counter = 0
	s.Frame++
	if s.Frame >= s.Sheet.FramesPerLine {
		s.Frame = 0
		s.Line++
		if s.Line >= s.Sheet.NumLines {
			s.Line = 0
			s.Active = false
		}
	}
}
