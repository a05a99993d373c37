package game

import "fmt"

type Phase int

const (
	PhaseMenu    Phase = iota // welcome / instructions
	PhasePlaying              // gameplay, every per-tick system runs
	PhasePaused               // pointer released
	PhaseOver                 // terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeTimeExpired
	OutcomeManual
	OutcomeOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeTimeExpired:
		return "time expired"
	case OutcomeManual:
		return "ended manually"
	}
	return "other"
}

// Title is the end screen heading.
func (o Outcome) Title() string {
	switch o {
	case OutcomeVictory:
		return "Victory!"
	case OutcomeTimeExpired:
		return "Time's Up!"
	case OutcomeManual:
		return "Game Ended"
	}
	return "Game Over"
}

// Message is the end screen body for player after destroying total targets.
func (o Outcome) Message(player string, total int) string {
	switch o {
	case OutcomeVictory:
		return fmt.Sprintf("You destroyed all %d targets, %s!", total, player)
	case OutcomeTimeExpired:
		return fmt.Sprintf("You ran out of time, %s. Better luck next round!", player)
	case OutcomeManual:
		return fmt.Sprintf("You ended the game early, %s.", player)
	}
	return "Game session finished."
}

// Session is the explicit session state. Per-tick systems read it; only the
// Game controller mutates it.
type Session struct {
	Phase      Phase
	Outcome    Outcome
	PlayerName string

	Ammo      int
	Destroyed int
	Total     int
	TimeLeft  int // whole seconds
}

// Start begins play from the menu. It reports false in any other phase.
func (s *Session) Start(ammo, timeLimit, total int) bool {
	if s.Phase != PhaseMenu {
		return false
	}
	s.Phase = PhasePlaying
	s.Outcome = OutcomeNone
	s.Ammo = ammo
	s.Destroyed = 0
	s.Total = total
	s.TimeLeft = timeLimit
	return true
}

func (s *Session) Pause() bool {
	if s.Phase != PhasePlaying {
		return false
	}
	s.Phase = PhasePaused
	return true
}

func (s *Session) Resume() bool {
	if s.Phase != PhasePaused {
		return false
	}
	s.Phase = PhasePlaying
	return true
}

// End moves to the terminal phase. Only the first call has any effect.
func (s *Session) End(o Outcome) bool {
	if s.Phase == PhaseOver {
		return false
	}
	s.Phase = PhaseOver
	s.Outcome = o
	return true
}

// Active reports whether gameplay mutations are allowed.
func (s *Session) Active() bool { return s.Phase == PhasePlaying }

func (s *Session) Over() bool { return s.Phase == PhaseOver }

// Reset returns to the menu for a new round, keeping the player name.
func (s *Session) Reset() {
	*s = Session{PlayerName: s.PlayerName}
}
