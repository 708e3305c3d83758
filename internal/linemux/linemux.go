// Package linemux owns the serial side of the decoder console: it reads
// the byte stream from a port, splits it into newline-delimited lines
// with terminators stripped, and delivers each line in order to every
// subscriber. One mux owns one port for the life of a session.
package linemux

import (
	"bufio"
	"context"
	crand "crypto/rand"
	"encoding/hex"
	"sync"
)

// Mux is the line-source interface the rest of the program consumes.
type Mux interface {
	// Subscribe creates a channel that receives every line read from
	// the port. The returned ID identifies the channel when
	// unsubscribing.
	Subscribe() (string, chan string)
	// Unsubscribe removes and closes a subscriber channel.
	Unsubscribe(string)
	// Monitor reads lines from the port and delivers them to
	// subscribers until the context is cancelled or the port fails.
	Monitor(context.Context) error
	// Close closes all subscriber channels and the underlying port.
	Close() error
}

// LineMux is the generic Mux implementation over any LinePorter.
//
// Delivery is in-order and lossless: Monitor blocks on each subscriber
// until the line is taken or the context is cancelled. That is the
// backpressure the protocol wants, one line fully applied before the
// next is surfaced, but it means Unsubscribe must only be called after
// the subscriber has stopped receiving AND the monitor context is
// cancelled, otherwise a blocked delivery holds the subscriber lock.
type LineMux[T LinePorter] struct {
	port         T
	subscribers  map[string]chan string
	subscriberMu sync.Mutex
	closing      bool
	closingMu    sync.Mutex
}

// NewLineMux creates a LineMux over the given port.
func NewLineMux[T LinePorter](port T) *LineMux[T] {
	return &LineMux[T]{
		port:        port,
		subscribers: make(map[string]chan string),
	}
}

// randomID generates a random channel ID (8 byte random hex encoded
// value).
func randomID() string {
	b := make([]byte, 8)
	crand.Read(b)
	return hex.EncodeToString(b)
}

func (s *LineMux[T]) Subscribe() (string, chan string) {
	id := randomID()
	ch := make(chan string)
	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	s.subscribers[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber from the mux.
func (s *LineMux[T]) Unsubscribe(id string) {
	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	if ch, ok := s.subscribers[id]; ok {
		close(ch)
		delete(s.subscribers, id)
	}
}

// Monitor reads lines from the port and fans them out to subscribers.
// The blocking scanner runs in its own goroutine so the outer loop can
// keep awaiting context cancellation; a cancelled context is the only
// way to interrupt a port read that never returns.
func (s *LineMux[T]) Monitor(ctx context.Context) error {
	scan := bufio.NewScanner(s.port)

	lineChan := make(chan string)
	scanErrChan := make(chan error, 1)

	go func() {
		defer close(lineChan)
		for scan.Scan() {
			select {
			case lineChan <- scan.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scan.Err(); err != nil {
			select {
			case scanErrChan <- err:
			case <-ctx.Done():
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-scanErrChan:
			return err

		case line, ok := <-lineChan:
			// a closed channel means the port hit EOF: the transport
			// is gone and there is nothing left to deliver
			if !ok {
				return nil
			}

			s.closingMu.Lock()
			if s.closing {
				s.closingMu.Unlock()
				return nil
			}
			s.closingMu.Unlock()

			if err := s.deliver(ctx, line); err != nil {
				return err
			}
		}
	}
}

// deliver hands one line to every subscriber, blocking per channel so
// no frame is ever dropped.
func (s *LineMux[T]) deliver(ctx context.Context, line string) error {
	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- line:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *LineMux[T]) Close() error {
	s.closingMu.Lock()
	s.closing = true
	s.closingMu.Unlock()

	s.subscriberMu.Lock()
	defer s.subscriberMu.Unlock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
	return s.port.Close()
}
