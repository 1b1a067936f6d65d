package breaker_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/aolivares/school-library-service/pkg/breaker"
)

func TestBreaker_Call(t *testing.T) {
	t.Parallel()

	ok := func() error { return nil }
	fail := func() error { return errors.New("downstream error") }

	t.Run("stays closed on success", func(t *testing.T) {
		t.Parallel()
		b := breaker.New(10, time.Second, 0.3, 2)
		for i := 0; i < 50; i++ {
			require.NoError(t, b.Call(ok))
		}
	})

	t.Run("opens past the failure threshold", func(t *testing.T) {
		t.Parallel()
		b := breaker.New(10, time.Minute, 0.3, 2)
		for i := 0; i < 3; i++ {
			require.Error(t, b.Call(fail))
		}
		require.ErrorIs(t, b.Call(ok), breaker.ErrOpen)
	})

	t.Run("recovers through half-open", func(t *testing.T) {
		t.Parallel()
		b := breaker.New(4, 10*time.Millisecond, 0.5, 1)
		require.Error(t, b.Call(fail))
		require.Error(t, b.Call(fail))
		require.ErrorIs(t, b.Call(ok), breaker.ErrOpen)

		time.Sleep(20 * time.Millisecond)

		// half-open probes pass and close the breaker again
		require.NoError(t, b.Call(ok))
		require.NoError(t, b.Call(ok))
		require.NoError(t, b.Call(ok))
	})

	t.Run("reset closes an open breaker", func(t *testing.T) {
		t.Parallel()
		b := breaker.New(4, time.Minute, 0.5, 1)
		require.Error(t, b.Call(fail))
		require.Error(t, b.Call(fail))
		require.ErrorIs(t, b.Call(ok), breaker.ErrOpen)

		b.Reset()
		require.NoError(t, b.Call(ok))
	})
}
