// Package session runs one PRT-7 decoding session: it consumes raw
// lines from the serial transport, recognises the session-level control
// signals, pushes everything else through the frame parser and
// processor, and renders the decoded message when the transmission
// ends.
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/banshee-data/prt7/internal/frame"
	"github.com/banshee-data/prt7/internal/rotor"
)

// ErrLineSourceClosed is returned by Run when the line source channel
// closes before an end-of-transmission marker arrives, meaning the
// transport went away mid-session.
var ErrLineSourceClosed = errors.New("session: line source closed")

// TraceSink receives one Trace per consumed line. Fire-and-forget: the
// controller never inspects a result.
type TraceSink func(Trace)

// EndSink receives the rendered message once, after the session
// terminates. complete is false when the session was cut short by
// cancellation or transport loss rather than a FIN marker.
type EndSink func(message string, complete bool)

// Controller is the frame-protocol state machine. It owns the rotor and
// payload exclusively for the life of one session; no locking is needed
// because exactly one line is consumed and fully applied at a time.
type Controller struct {
	// ID identifies the session in logs and the frame audit log.
	ID string

	proc  *Processor
	trace TraceSink
	end   EndSink
	log   zerolog.Logger

	linesSeen int
	framesOK  int
	framesBad int
}

// NewController returns a controller with a freshly seated rotor (head
// at 'A') and an empty payload. Either sink may be nil.
func NewController(log zerolog.Logger, trace TraceSink, end EndSink) *Controller {
	return &Controller{
		ID: uuid.New().String(),
		proc: &Processor{
			Rotor:   rotor.New(),
			Payload: &rotor.Payload{},
		},
		trace: trace,
		end:   end,
		log:   log,
	}
}

// Run consumes lines until an end-of-transmission marker arrives or ctx
// is cancelled. The lines channel is the blocking line source: the
// controller never polls, it simply awaits the next delivery. A closed
// channel ends the session with ErrLineSourceClosed. Whatever the exit
// path, the payload accumulated so far is rendered and handed to the
// end sink.
func (c *Controller) Run(ctx context.Context, lines <-chan string) error {
	c.log.Info().Str("session_id", c.ID).Msg("session started")
	for {
		select {
		case <-ctx.Done():
			c.finish(false)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				c.finish(false)
				return ErrLineSourceClosed
			}
			if done := c.consume(line); done {
				c.finish(true)
				return nil
			}
		}
	}
}

// consume handles one raw line and reports whether it terminated the
// session.
func (c *Controller) consume(line string) bool {
	// Empty lines are noise between frames; skip without counting.
	if line == "" {
		return false
	}
	c.linesSeen++

	// Control signals are session-level markers, not frames, and are
	// matched before the parser sees the line.
	if strings.HasPrefix(line, "FIN") {
		c.emit(Trace{Kind: TraceControl, RawLine: line, Note: "end of transmission"})
		return true
	}
	if line[0] == 'I' {
		c.emit(Trace{Kind: TraceControl, RawLine: line, Note: "start of transmission"})
		return false
	}

	f, err := frame.Parse(line)
	if err != nil {
		c.framesBad++
		c.log.Warn().Str("session_id", c.ID).Str("line", line).Err(err).Msg("rejected frame")
		c.emit(Trace{Kind: TraceRejected, RawLine: line, Note: err.Error()})
		return false
	}
	c.framesOK++
	c.emit(c.proc.Apply(f, line))
	return false
}

func (c *Controller) emit(t Trace) {
	if c.trace != nil {
		c.trace(t)
	}
}

func (c *Controller) finish(complete bool) {
	message := c.proc.Payload.Render()
	c.log.Info().
		Str("session_id", c.ID).
		Int("lines", c.linesSeen).
		Int("frames_ok", c.framesOK).
		Int("frames_rejected", c.framesBad).
		Bool("complete", complete).
		Msg("session finished")
	if c.end != nil {
		c.end(message, complete)
	}
}

// Stats reports the non-empty lines consumed, frames applied, and
// frames rejected so far.
func (c *Controller) Stats() (linesSeen, framesOK, framesRejected int) {
	return c.linesSeen, c.framesOK, c.framesBad
}
