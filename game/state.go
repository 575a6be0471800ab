package game

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/exp/rand"
)

// GameState represents one node in the bidding tree: both players' hands,
// fixed at the deal, plus the dynamic bidding state. Each recursion branch
// works on its own clone, so nothing here needs locking.
type GameState struct {
	Dice          [2]int   // Dice per player, fixed at game start
	Hands         [2][]int // Face values per player, sorted ascending
	CurrentBid    *Bid     // nil until the first bid
	History       []Action // Bids made so far, in order
	CurrentPlayer int      // The player to act, 0 or 1
}

// NewGameState deals a fresh game: every die drawn uniformly from the six
// faces, each hand sorted ascending. Sorting only canonicalizes the
// information-set string; order within a hand carries no information.
func NewGameState(diceA, diceB int, rng *rand.Rand) *GameState {
	gs := &GameState{Dice: [2]int{diceA, diceB}}
	for p, n := range gs.Dice {
		hand := make([]int, n)
		for i := range hand {
			hand[i] = 1 + rng.Intn(DiceFaces)
		}
		sort.Ints(hand)
		gs.Hands[p] = hand
	}
	return gs
}

// TotalDice returns the number of dice in play across both hands.
func (gs *GameState) TotalDice() int {
	return gs.Dice[0] + gs.Dice[1]
}

// LegalActions enumerates every action available to the player to act, in a
// fixed order the solver relies on for indexing: opening bids quantity-major
// over all faces; with a bid outstanding, Challenge first, then higher faces
// at the same quantity, then every face at each higher quantity.
func (gs *GameState) LegalActions() []Action {
	total := gs.TotalDice()

	if gs.CurrentBid == nil {
		actions := make([]Action, 0, total*DiceFaces)
		for q := 1; q <= total; q++ {
			for f := 1; f <= DiceFaces; f++ {
				actions = append(actions, BidAction(q, f))
			}
		}
		return actions
	}

	actions := []Action{Challenge}
	for f := gs.CurrentBid.Face + 1; f <= DiceFaces; f++ {
		actions = append(actions, BidAction(gs.CurrentBid.Quantity, f))
	}
	for q := gs.CurrentBid.Quantity + 1; q <= total; q++ {
		for f := 1; f <= DiceFaces; f++ {
			actions = append(actions, BidAction(q, f))
		}
	}
	return actions
}

// Clone copies the state so sibling branches can explore independent futures
// from the same ancestor.
func (gs *GameState) Clone() *GameState {
	c := *gs
	for p, hand := range gs.Hands {
		c.Hands[p] = append([]int(nil), hand...)
	}
	if gs.CurrentBid != nil {
		bid := *gs.CurrentBid
		c.CurrentBid = &bid
	}
	c.History = append([]Action(nil), gs.History...)
	return &c
}

// Apply advances the state by one action and reports whether the game ended.
// A Challenge terminates immediately without mutating anything, leaving the
// challenger as the terminal state's current player, which Payoff relies on.
// A bid replaces the outstanding bid, extends the history, and passes the
// turn.
func (gs *GameState) Apply(a Action) bool {
	if a.IsChallenge {
		return true
	}

	bid := a.Bid
	gs.CurrentBid = &bid
	gs.History = append(gs.History, a)
	gs.CurrentPlayer = 1 - gs.CurrentPlayer
	return false
}

// Payoff scores a challenged bid from the challenger's perspective: -1 when
// at least the bid quantity of dice show the bid face, +1 when the bidder
// overclaimed. A state without a bid cannot have been challenged; it scores
// a neutral 0.
func (gs *GameState) Payoff() float64 {
	if gs.CurrentBid == nil {
		return 0
	}

	count := 0
	for _, hand := range gs.Hands {
		for _, d := range hand {
			if d == gs.CurrentBid.Face {
				count++
			}
		}
	}

	if count >= gs.CurrentBid.Quantity {
		return -1
	}
	return 1
}

// InfoSet renders everything the player to act can observe: their own hand
// as a digit string, the outstanding bid (or NoBid), and how many bids came
// before. Collapsing the bid history to its length merges sequences a
// perfect-recall key would keep apart; that abstraction keeps the table
// tractable and must stay as is for trained tables to line up.
func (gs *GameState) InfoSet() string {
	var sb strings.Builder
	for _, d := range gs.Hands[gs.CurrentPlayer] {
		sb.WriteByte(byte('0' + d))
	}
	sb.WriteByte('|')
	if gs.CurrentBid == nil {
		sb.WriteString(NoBid)
	} else {
		sb.WriteString(gs.CurrentBid.String())
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(len(gs.History)))
	return sb.String()
}
