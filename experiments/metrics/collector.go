package metrics

import (
	"time"

	"monopoly/game"
)

type TurnMetric struct {
	Turn     int
	Player   int // Player ID
	Position int
	Cash     int
	NetWorth float64
	Jailed   bool
}

type EpisodeMetric struct {
	Players      int
	Winner       int // Player ID, game.NoOwner when the turn limit ended the game
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalTurns   int
	Bankruptcies int
	Offers       game.OfferStats
}

type Collector interface {
	Start(players int)
	AddTurn(m TurnMetric)
	AddBankruptcy()
	Complete(winner, turns int, offers game.OfferStats) EpisodeMetric
	Turns() []TurnMetric
}

// collector is confined to the goroutine running its game.
type collector struct {
	players      int
	startTime    time.Time
	turns        []TurnMetric
	bankruptcies int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(players int) {
	m.startTime = time.Now()
	m.players = players
	m.turns = []TurnMetric{}
	m.bankruptcies = 0
}

func (m *collector) AddTurn(tm TurnMetric) {
	m.turns = append(m.turns, tm)
}

func (m *collector) AddBankruptcy() {
	m.bankruptcies++
}

func (m *collector) Complete(winner, turns int, offers game.OfferStats) EpisodeMetric {
	end := time.Now()
	return EpisodeMetric{
		Players:      m.players,
		Winner:       winner,
		StartTime:    m.startTime,
		EndTime:      end,
		Duration:     end.Sub(m.startTime),
		TotalTurns:   turns,
		Bankruptcies: m.bankruptcies,
		Offers:       offers,
	}
}

func (m *collector) Turns() []TurnMetric {
	return m.turns
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(players int)     {}
func (m *dummyCollector) AddTurn(tm TurnMetric) {}
func (m *dummyCollector) AddBankruptcy()        {}
func (m *dummyCollector) Turns() []TurnMetric   { return nil }
func (m *dummyCollector) Complete(winner, turns int, offers game.OfferStats) EpisodeMetric {
	return EpisodeMetric{Winner: winner, TotalTurns: turns, Offers: offers}
}
