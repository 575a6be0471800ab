package game

import "fmt"

// DiceFaces is the number of faces on each die.
const DiceFaces = 6

// NoBid is the sentinel used in information-set keys before any bid is made.
const NoBid = "none"

// Bid is a claim that at least Quantity dice across both hands show Face.
type Bid struct {
	Quantity int
	Face     int // In [1, DiceFaces]
}

func (b Bid) String() string {
	return fmt.Sprintf("%d-%d", b.Quantity, b.Face)
}

// Action is a single move by the player to act: raising the outstanding bid
// or challenging it. Actions are plain values, comparable with ==.
type Action struct {
	Bid         Bid
	IsChallenge bool
}

// BidAction returns the action claiming quantity dice showing face.
func BidAction(quantity, face int) Action {
	return Action{Bid: Bid{Quantity: quantity, Face: face}}
}

// Challenge disputes the outstanding bid and ends the game.
var Challenge = Action{IsChallenge: true}

func (a Action) String() string {
	if a.IsChallenge {
		return "Challenge"
	}
	return a.Bid.String()
}
