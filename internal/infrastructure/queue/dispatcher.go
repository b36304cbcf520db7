// Package queue delivers outbound mail asynchronously through a fixed pool of
// sharded workers.
package queue

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskpulse/daily-tracker/internal/api/metrics"
	"github.com/taskpulse/daily-tracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	maxAttempts    = 3
)

// Dispatcher routes mail messages to a fixed set of workers using consistent
// hashing on the first recipient, so all mail for one user flows through the
// same worker in order. Each send is retried with exponential backoff;
// exhausted messages are logged and dropped (at-most-once, no dead letter).
type Dispatcher struct {
	workers []chan ports.MailMessage
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.MailMessage, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.MailMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a message to the worker responsible for its first recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(msg ports.MailMessage) {
	d.workers[d.shardIndex(msg)] <- msg
}

func (d *Dispatcher) shardIndex(msg ports.MailMessage) int {
	key := ""
	if len(msg.To) > 0 {
		key = msg.To[0]
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.MailMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			d.deliver(ctx, id, msg)
		}
	}
}

// deliver attempts the send up to maxAttempts times, backing off between
// attempts. Failure after the final attempt drops the message.
func (d *Dispatcher) deliver(ctx context.Context, workerID int, msg ports.MailMessage) {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff(attempt - 1)):
			}
		}
		if err = d.mailer.Send(ctx, msg); err == nil {
			metrics.RemindersSentTotal.Inc()
			d.log.Info().
				Strs("to", msg.To).
				Str("subject", msg.Subject).
				Int("worker_id", workerID).
				Msg("mail sent")
			return
		}
		d.log.Warn().Err(err).
			Strs("to", msg.To).
			Int("attempt", attempt+1).
			Msg("mail send failed")
	}

	metrics.RemindersFailedTotal.Inc()
	d.log.Error().Err(err).Strs("to", msg.To).Msg("mail dropped after retries")
}

// backoff returns the delay before retry number attempt+1, with a little
// jitter to avoid hammering a recovering provider.
//
//	attempt=0 → ~2s, attempt=1 → ~4s, attempt=2 → ~8s, capped at 1 minute.
func backoff(attempt int) time.Duration {
	base := 2 * time.Second
	capDelay := time.Minute

	delay := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if delay > capDelay {
		delay = capDelay
	}
	return delay + time.Duration(rand.Intn(250))*time.Millisecond
}
