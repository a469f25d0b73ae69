// Package stream consumes the producer's fragment stream for one video and
// turns it into a knowledge component registry.
package stream

// Kind distinguishes the two producer messages.
type Kind uint8

const (
	// Fragment carries recognized text from one sampled frame.
	Fragment Kind = iota + 1
	// End marks the end of the video.
	End
)

func (k Kind) String() string {
	switch k {
	case Fragment:
		return "fragment"
	case End:
		return "end"
	}
	return "unknown"
}

// Message is one producer message. Text is empty for End.
type Message struct {
	Kind Kind
	Text string
}

// Envelope pairs a message with its playback offset in whole seconds.
type Envelope struct {
	Message Message
	Offset  int
}

// FragmentAt builds a Fragment envelope.
func FragmentAt(text string, offset int) Envelope {
	return Envelope{Message: Message{Kind: Fragment, Text: text}, Offset: offset}
}

// EndAt builds the End envelope.
func EndAt(offset int) Envelope {
	return Envelope{Message: Message{Kind: End}, Offset: offset}
}
