package client

import (
	"context"
	"fmt"
	"time"
)

// Sample is one polled status, or the error that replaced it.
type Sample struct {
	Status    *Status
	Timestamp time.Time
	Err       error
}

// Poller polls the controller status at a fixed rate and fans samples
// out on a channel, dropping stale ones when the consumer lags.
type Poller struct {
	client *Client
	hz     int

	sampleCh chan Sample
	logCh    chan string
}

// NewPoller creates a poller against c. hz defaults to 10 when zero or
// negative.
func NewPoller(c *Client, hz int) *Poller {
	if hz <= 0 {
		hz = 10
	}
	return &Poller{
		client:   c,
		hz:       hz,
		sampleCh: make(chan Sample, 1),
		logCh:    make(chan string, 10),
	}
}

// Samples returns the channel of polled statuses.
func (p *Poller) Samples() <-chan Sample {
	return p.sampleCh
}

// Logs returns the channel of log messages.
func (p *Poller) Logs() <-chan string {
	return p.logCh
}

// Hz returns the polling frequency.
func (p *Poller) Hz() int {
	return p.hz
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.log("Polling status at %d Hz", p.hz)

	ticker := time.NewTicker(time.Second / time.Duration(p.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			st, err := p.client.Status(ctx)
			if err != nil {
				p.log("Status error: %v", err)
			}
			p.send(Sample{Status: st, Err: err, Timestamp: time.Now()})
		}
	}
}

func (p *Poller) send(s Sample) {
	select {
	case p.sampleCh <- s:
	default:
		// Drop the stale sample, replace with the new one.
		select {
		case <-p.sampleCh:
		default:
		}
		p.sampleCh <- s
	}
}

func (p *Poller) log(format string, args ...any) {
	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	select {
	case p.logCh <- msg:
	default:
		// Drop if channel full
	}
}
