package game

import "github.com/lox/blackjack/internal/deck"

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeShoeReshuffled EventType = "shoe_reshuffled"
	EventTypeRoundStart     EventType = "round_start"
	EventTypeInitialDeal    EventType = "initial_deal"
	EventTypeNatural        EventType = "natural"
	EventTypeSplit          EventType = "split"
	EventTypeSplitDenied    EventType = "split_denied"
	EventTypeHandTurn       EventType = "hand_turn"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeHandBust       EventType = "hand_bust"
	EventTypeDealerReveal   EventType = "dealer_reveal"
	EventTypeDealerDraw     EventType = "dealer_draw"
	EventTypeDealerFinal    EventType = "dealer_final"
	EventTypeHandSettled    EventType = "hand_settled"
	EventTypeRoundEnd       EventType = "round_end"
	EventTypeSessionEnd     EventType = "session_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything the engine reports while playing a round
type GameEvent interface {
	EventType() EventType
}

// ShoeReshuffledEvent is published when the shoe is replaced before a deal
type ShoeReshuffledEvent struct {
	Decks int
	Cards int
}

// RoundStartEvent is published once the bet has been reserved
type RoundStartEvent struct {
	RoundID string
	Bet     int
	Balance int // After the bet was reserved
}

// InitialDealEvent carries the player's opening hand and the dealer's up card
type InitialDealEvent struct {
	RoundID     string
	PlayerCards []deck.Card
	PlayerScore int
	DealerUp    deck.Card
}

// NaturalEvent is published when the opening hand is a blackjack
type NaturalEvent struct {
	RoundID         string
	PlayerCards     []deck.Card
	DealerCards     []deck.Card
	DealerBlackjack bool
}

// SplitEvent is published after a pair is split into two hands
type SplitEvent struct {
	HandIndex int
	First     []deck.Card
	Second    []deck.Card
	Stake     int
	Balance   int
	HandCount int
}

// SplitDeniedEvent is published when a pair could be split but the balance
// does not cover another stake
type SplitDeniedEvent struct {
	HandIndex int
	Cards     []deck.Card
	Stake     int
	Balance   int
}

// HandTurnEvent is published when a hand starts its action loop.
// AutoStand is set for a two-card 21, which takes no actions.
type HandTurnEvent struct {
	HandIndex int
	HandCount int
	Cards     []deck.Card
	Score     int
	Stake     int
	AutoStand bool
}

// PlayerActionEvent is published after an action has been applied. Card is
// the card drawn by a hit or double and is the zero Card for a stand.
type PlayerActionEvent struct {
	HandIndex int
	Action    Action
	Card      deck.Card
	Cards     []deck.Card
	Score     int
	Stake     int
	Balance   int
}

// HandBustEvent is published when a hand goes over 21
type HandBustEvent struct {
	HandIndex int
	Cards     []deck.Card
	Score     int
}

// DealerRevealEvent is published when the hole card is turned over
type DealerRevealEvent struct {
	Cards []deck.Card
	Score int
}

// DealerDrawEvent is published for every card the dealer draws
type DealerDrawEvent struct {
	Card  deck.Card
	Cards []deck.Card
	Score int
}

// DealerFinalEvent reports the dealer's final hand. Played is false when
// every player hand had bust and the dealer did not draw.
type DealerFinalEvent struct {
	Cards  []deck.Card
	Score  int
	Played bool
}

// HandSettledEvent is published for each player hand at settlement
type HandSettledEvent struct {
	HandIndex int
	Result    HandResult
}

// RoundEndEvent is published after settlement with the updated state
type RoundEndEvent struct {
	Result *RoundResult
	State  State
}

// SessionEndEvent is published when a session stops
type SessionEndEvent struct {
	Reason string
	State  State
}

func (ShoeReshuffledEvent) EventType() EventType { return EventTypeShoeReshuffled }
func (RoundStartEvent) EventType() EventType     { return EventTypeRoundStart }
func (InitialDealEvent) EventType() EventType    { return EventTypeInitialDeal }
func (NaturalEvent) EventType() EventType        { return EventTypeNatural }
func (SplitEvent) EventType() EventType          { return EventTypeSplit }
func (SplitDeniedEvent) EventType() EventType    { return EventTypeSplitDenied }
func (HandTurnEvent) EventType() EventType       { return EventTypeHandTurn }
func (PlayerActionEvent) EventType() EventType   { return EventTypePlayerAction }
func (HandBustEvent) EventType() EventType       { return EventTypeHandBust }
func (DealerRevealEvent) EventType() EventType   { return EventTypeDealerReveal }
func (DealerDrawEvent) EventType() EventType     { return EventTypeDealerDraw }
func (DealerFinalEvent) EventType() EventType    { return EventTypeDealerFinal }
func (HandSettledEvent) EventType() EventType    { return EventTypeHandSettled }
func (RoundEndEvent) EventType() EventType       { return EventTypeRoundEnd }
func (SessionEndEvent) EventType() EventType     { return EventTypeSessionEnd }

// EventSubscriber receives published events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus fans events out to subscribers
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new synchronous event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
