package game

// Score deltas applied by the stat mutators
const (
	statHitCost   = 1
	statMissCost  = 1
	statShootCost = 2
)

// GameStat tracks hits, misses, taken shots, and the running score.
// Score has no floor and may go negative.
type GameStat struct {
	Hits   int
	Misses int
	Taken  int
	Score  int
}

// NewGameStat returns a zeroed stat block
func NewGameStat() *GameStat {
	return &GameStat{}
}

// AddHit records a player bullet connecting with a unit
func (s *GameStat) AddHit() {
	if s == nil {
		return
	}
	s.Hits++
	s.Score += statHitCost
}

// AddMiss records a player bullet leaving the play frame unspent
func (s *GameStat) AddMiss() {
	if s == nil {
		return
	}
	s.Misses++
	s.Score -= statMissCost
}

// AddShootCost charges the score for firing a shot
func (s *GameStat) AddShootCost() {
	if s == nil {
		return
	}
	s.Score -= statShootCost
}

// AddTaken records an enemy bullet connecting with the player
func (s *GameStat) AddTaken() {
	if s == nil {
		return
	}
	s.Taken++
}
