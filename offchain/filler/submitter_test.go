package filler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockSubmitterAssignsTradeIdsAndTracksStatus(t *testing.T) {
	s := NewMockSubmitter()
	trades := []*Trade{{}, {}}

	require.NoError(t, s.SubmitTrades(context.Background(), trades))

	submitted := s.SubmittedTrades()
	require.Len(t, submitted, 2)
	for _, trade := range submitted {
		require.NotEmpty(t, trade.TradeID)
	}
	require.NotEqual(t, submitted[0].TradeID, submitted[1].TradeID)

	status := s.GetStatus()
	require.True(t, status.Connected)
	require.Equal(t, int64(1), status.TotalSubmissions)
}

func TestMockSubmitterSimulatedFailure(t *testing.T) {
	s := NewMockSubmitter()
	s.SetSimulateFailure(true)

	err := s.SubmitTrades(context.Background(), []*Trade{{}})
	require.Error(t, err)
	require.Equal(t, int64(1), s.GetStatus().FailedSubmissions)
}

func TestMockSubmitterTriggers(t *testing.T) {
	s := NewMockSubmitter()
	err := s.SubmitTriggers(context.Background(), []TriggerActivation{{MarketIndex: 0, UserAccount: "alice", OrderID: 1}})
	require.NoError(t, err)
	require.Equal(t, int64(1), s.GetStatus().TotalSubmissions)
}
