package logger

// OutputChannel is an append-only text surface owned by the host, such as
// an editor's output panel. Appends may be rendered later than they return.
type OutputChannel interface {
	Append(text string) error
}

// OutputChannelSink appends lines to an OutputChannel. It does not implement
// io.Closer: detaching the sink leaves the channel to its owner.
type OutputChannelSink struct {
	ch   OutputChannel
	name string
}

// NewOutputChannelSink returns a sink appending to ch.
func NewOutputChannelSink(ch OutputChannel) *OutputChannelSink {
	name := "channel"
	if n, ok := ch.(interface{ Name() string }); ok {
		name += ":" + n.Name()
	}
	return &OutputChannelSink{ch: ch, name: name}
}

// Name implements the optional naming used in diagnostics.
func (s *OutputChannelSink) Name() string {
	return s.name
}

// Write appends line and a newline to the channel.
func (s *OutputChannelSink) Write(line string) error {
	return s.ch.Append(line + "\n")
}
