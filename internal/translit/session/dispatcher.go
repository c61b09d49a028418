package session

import (
	"context"
	"time"

	"github.com/longkey1/translitc/internal/logger"
	"github.com/longkey1/translitc/internal/translit"
)

// DefaultMinLatency is the minimum perceived latency of a successful dispatch
const DefaultMinLatency = 800 * time.Millisecond

// Dispatcher turns one submission into one outbound transliteration call
type Dispatcher struct {
	client     translit.Client
	minLatency time.Duration
	logger     logger.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

// NewDispatcher creates a dispatcher. A zero minLatency disables padding.
func NewDispatcher(client translit.Client, minLatency time.Duration, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		client:     client,
		minLatency: minLatency,
		logger:     log,
		now:        time.Now,
		sleep:      sleepContext,
	}
}

// Dispatch issues exactly one transliteration call and maps its outcome to
// the content of a Bot message. Failures of any kind become FailureMessage
// with isError set; they are never retried.
func (d *Dispatcher) Dispatch(ctx context.Context, text string, lang translit.Language) (content string, isError bool) {
	start := d.now()

	result, err := d.client.Transliterate(ctx, text, lang)
	if err != nil {
		d.logger.Warn(moduleName, "transliteration failed", map[string]interface{}{
			"language": lang.String(),
			"elapsed":  d.now().Sub(start).String(),
			"error":    err,
		})
		return translit.FailureMessage, true
	}

	d.padToMinimum(ctx, start)
	return result, false
}

// padToMinimum delays until minLatency has passed since start.
// It never shortens a call that already took longer.
func (d *Dispatcher) padToMinimum(ctx context.Context, start time.Time) {
	remaining := d.minLatency - d.now().Sub(start)
	if remaining <= 0 {
		return
	}
	d.sleep(ctx, remaining)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
