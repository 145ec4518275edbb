package filler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TxSubmitter is the interface for handing matched trades and trigger
// activations off to whatever external system turns them into on-chain
// transactions.
type TxSubmitter interface {
	SubmitTrades(ctx context.Context, trades []*Trade) error
	SubmitTriggers(ctx context.Context, triggers []TriggerActivation) error
	GetStatus() SubmitterStatus
}

// TriggerActivation is a trigger order the scanner found ready to fire,
// handed to the submitter the same way a Trade is.
type TriggerActivation struct {
	MarketIndex uint16
	UserAccount string
	OrderID     uint32
}

// SubmitterStatus reports a submitter's health.
type SubmitterStatus struct {
	Connected         bool
	LastSubmitTime    time.Time
	LastError         string
	TotalSubmissions  int64
	FailedSubmissions int64
}

// MockSubmitter is an in-memory TxSubmitter for tests and local runs.
// Trade ids are generated with google/uuid rather than a counter, since
// the filler has no single-writer sequence to count against across
// restarts.
type MockSubmitter struct {
	mu              sync.Mutex
	trades          []*Trade
	triggers        []TriggerActivation
	status          SubmitterStatus
	simulateFailure bool
}

func NewMockSubmitter() *MockSubmitter {
	return &MockSubmitter{status: SubmitterStatus{Connected: true}}
}

func (s *MockSubmitter) SubmitTrades(_ context.Context, trades []*Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.simulateFailure {
		s.status.FailedSubmissions++
		s.status.LastError = "simulated failure"
		return fmt.Errorf("simulated failure")
	}
	for _, trade := range trades {
		if trade.TradeID == "" {
			trade.TradeID = uuid.NewString()
		}
	}
	s.trades = append(s.trades, trades...)
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()
	return nil
}

func (s *MockSubmitter) SubmitTriggers(_ context.Context, triggers []TriggerActivation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.simulateFailure {
		s.status.FailedSubmissions++
		s.status.LastError = "simulated failure"
		return fmt.Errorf("simulated failure")
	}
	s.triggers = append(s.triggers, triggers...)
	s.status.TotalSubmissions++
	s.status.LastSubmitTime = time.Now()
	return nil
}

func (s *MockSubmitter) GetStatus() SubmitterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// SubmittedTrades returns a copy of every trade submitted so far (for tests).
func (s *MockSubmitter) SubmittedTrades() []*Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// SetSimulateFailure toggles forced failure for tests.
func (s *MockSubmitter) SetSimulateFailure(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulateFailure = fail
}
