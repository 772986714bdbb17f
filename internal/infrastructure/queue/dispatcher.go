package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/mediashelf/media-tracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// MailJob is one rendered message waiting for delivery.
type MailJob struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Dispatcher delivers mail asynchronously through a fixed set of
// workers, sharded by recipient so mails to the same address keep
// their order.
type Dispatcher struct {
	workers []chan MailJob
	sender  ports.MailSender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.MailSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan MailJob, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan MailJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is
// cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its recipient.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(job MailJob) {
	d.workers[d.shardIndex(job.To)] <- job
}

func (d *Dispatcher) shardIndex(recipient string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipient))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan MailJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.Send(ctx, job.To, job.Subject, job.Text, job.HTML); err != nil {
				d.log.Error().Err(err).
					Str("to", job.To).
					Str("subject", job.Subject).
					Int("worker_id", id).
					Msg("mail delivery failed")
			}
		}
	}
}
