package breaker

import (
	"errors"
	"sync"
	"time"
)

type state uint8

const (
	closed state = iota + 1
	open
	halfOpen
)

var ErrOpen = errors.New("circuit breaker is open")

// Breaker guards a flaky downstream call. It opens once the failure share
// over the tracked window crosses the threshold, rejects calls while open,
// and probes again after the cooldown.
type Breaker interface {
	Call(fn func() error) error
	Reset()
}

type breaker struct {
	mu sync.Mutex

	state           state
	lastAttemptedAt time.Time

	// window is a ring of recent outcomes, true marks a failure
	window []bool
	pos    int

	threshold float64
	cooldown  time.Duration

	// consecutive successes required in half-open before closing
	recovery     int
	successCount int
}

func New(windowSize int, cooldown time.Duration, threshold float64, recovery int) Breaker {
	return &breaker{
		state:     closed,
		window:    make([]bool, windowSize),
		cooldown:  cooldown,
		threshold: threshold,
		recovery:  recovery,
	}
}

func (b *breaker) Call(fn func() error) error {
	b.mu.Lock()
	if b.state == open {
		if time.Since(b.lastAttemptedAt) <= b.cooldown {
			b.mu.Unlock()
			return ErrOpen
		}
		b.state = halfOpen
		b.successCount = 0
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.window[b.pos] = err != nil
	b.pos = (b.pos + 1) % len(b.window)

	if b.state == halfOpen {
		if err != nil {
			b.trip()
		} else {
			b.successCount++
			if b.successCount > b.recovery {
				b.reset()
			}
		}
		return err
	}

	fails := 0
	for _, failed := range b.window {
		if failed {
			fails++
		}
	}
	if float64(fails)/float64(len(b.window)) >= b.threshold {
		b.trip()
	}
	return err
}

func (b *breaker) trip() {
	b.state = open
	b.successCount = 0
	b.lastAttemptedAt = time.Now()
}

func (b *breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *breaker) reset() {
	for i := range b.window {
		b.window[i] = false
	}
	b.successCount = 0
	b.pos = 0
	b.state = closed
}
