package linemux

import (
	"io"
	"sync"
	"time"
)

// ReplayPort implements LinePorter over a canned transmission, standing
// in for the serial-attached sender in dev mode and tests. Once the
// data is exhausted, Read blocks until Close, matching a quiet serial
// line that simply has nothing more to say.
type ReplayPort struct {
	mu    sync.Mutex
	data  []byte
	pos   int
	delay time.Duration

	closed    chan struct{}
	closeOnce sync.Once
}

// NewReplayPort returns a port that replays data, pausing delay before
// each read to pace the stream like a slow link.
func NewReplayPort(data []byte, delay time.Duration) *ReplayPort {
	return &ReplayPort{
		data:   data,
		delay:  delay,
		closed: make(chan struct{}),
	}
}

func (p *ReplayPort) Read(buf []byte) (int, error) {
	select {
	case <-p.closed:
		return 0, io.EOF
	default:
	}

	if p.delay > 0 {
		time.Sleep(p.delay)
	}

	p.mu.Lock()
	if p.pos >= len(p.data) {
		p.mu.Unlock()
		// quiet line: block until the port is closed
		<-p.closed
		return 0, io.EOF
	}
	n := copy(buf, p.data[p.pos:])
	p.pos += n
	p.mu.Unlock()
	return n, nil
}

func (p *ReplayPort) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}

// NewReplayLineMux creates a LineMux backed by a ReplayPort feeding the
// given transmission bytes.
func NewReplayLineMux(data []byte, delay time.Duration) *LineMux[*ReplayPort] {
	return NewLineMux[*ReplayPort](NewReplayPort(data, delay))
}
