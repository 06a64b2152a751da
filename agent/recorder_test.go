package agent

import (
	"testing"

	"monopoly/action"

	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Run("buffer drops the oldest transition", func(t *testing.T) {
		r := NewRecorder(WithBufferSize(3))
		for i := 0; i < 5; i++ {
			r.Add(Transition{Group: action.Mortgage, Index: i})
		}
		got := r.Transitions()
		require.Len(t, got, 3)
		require.Equal(t, 2, got[0].Index)
		require.Equal(t, 4, got[2].Index)
	})

	t.Run("steps wait for a full batch", func(t *testing.T) {
		r := NewRecorder()
		for i := 0; i < BatchSize-1; i++ {
			r.Add(Transition{})
		}
		require.False(t, r.Step())
		r.Add(Transition{})
		require.True(t, r.Step())
		require.Equal(t, 1, r.Steps())
	})

	t.Run("epsilon decays to the floor", func(t *testing.T) {
		r := NewRecorder()
		require.InDelta(t, 0.9, r.Epsilon(), 1e-9)

		for i := 0; i < BatchSize; i++ {
			r.Add(Transition{})
		}
		for i := 0; i < 1000; i++ {
			r.Step()
		}
		require.InDelta(t, 0.45, r.Epsilon(), 1e-9)

		for i := 0; i < 2000; i++ {
			r.Step()
		}
		require.InDelta(t, EpsilonFloor, r.Epsilon(), 1e-9)
	})

	t.Run("evaluation never explores", func(t *testing.T) {
		require.Zero(t, NewRecorder(WithEvaluation()).Epsilon())
	})

	t.Run("rejects an empty buffer", func(t *testing.T) {
		require.Panics(t, func() { NewRecorder(WithBufferSize(0)) })
	})
}
