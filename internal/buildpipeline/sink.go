package buildpipeline

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// LineSink prints one line per finished or failed file; used when stderr
// is not a terminal.
type LineSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *LineSink) OnEvent(evt Event) {
	if evt.File == "" {
		return
	}
	var line string
	switch evt.Status {
	case StatusDone:
		line = fmt.Sprintf("compiled %s (%s)\n", evt.File, evt.Elapsed.Round(time.Microsecond))
	case StatusError:
		line = fmt.Sprintf("failed   %s: %v\n", evt.File, evt.Err)
	default:
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.W, line)
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(evt Event) { f(evt) }
