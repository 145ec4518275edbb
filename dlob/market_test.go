package dlob

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarketNodeListsResolve(t *testing.T) {
	m := newMarketNodeLists()

	require.Same(t, m.LimitBid, m.resolve(classLimit, Long, TriggerConditionUnspecified))
	require.Same(t, m.LimitAsk, m.resolve(classLimit, Short, TriggerConditionUnspecified))
	require.Same(t, m.FloatingLimitBid, m.resolve(classFloatingLimit, Long, TriggerConditionUnspecified))
	require.Same(t, m.FloatingLimitAsk, m.resolve(classFloatingLimit, Short, TriggerConditionUnspecified))
	require.Same(t, m.MarketBid, m.resolve(classMarket, Long, TriggerConditionUnspecified))
	require.Same(t, m.MarketAsk, m.resolve(classMarket, Short, TriggerConditionUnspecified))
	require.Same(t, m.TriggerAbove, m.resolve(classTrigger, Long, TriggerAbove))
	require.Same(t, m.TriggerBelow, m.resolve(classTrigger, Short, TriggerBelow))
}
