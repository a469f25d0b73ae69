package stream

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/cognicore/kcx/pkg/kcx/internalerr"
	"github.com/cognicore/kcx/pkg/kcx/lang"
	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/parser"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

const (
	// DefaultThreshold is the number of buffered characters that triggers
	// the model classification.
	DefaultThreshold = 8
	// DefaultPause is the fixed delay after each processed message.
	DefaultPause = 500 * time.Millisecond
)

// LanguageClassifier resolves the language of a stream. *lang.Classifier
// satisfies it.
type LanguageClassifier interface {
	ClassifyByHint(hint string) (lang.Language, bool)
	ClassifyByModel(ctx context.Context, snippet string) (lang.Language, bool)
}

// Options configures a Coordinator
type Options struct {
	Classifier LanguageClassifier
	Streams    parser.StreamNames
	// Threshold <= 0 uses DefaultThreshold.
	Threshold int
	// Pause follows every processed message; 0 disables it.
	Pause  time.Duration
	Logger *slog.Logger
}

// Coordinator runs the per-video state machine: resolve the language from
// the video hint or, failing that, from the model once enough text has
// arrived, then feed fragments to the bound parser.
type Coordinator struct {
	classifier LanguageClassifier
	streams    parser.StreamNames
	threshold  int
	pause      time.Duration
	logger     *slog.Logger
}

// NewCoordinator creates a coordinator. A nil classifier resolves only by hint.
func NewCoordinator(opts Options) *Coordinator {
	c := &Coordinator{
		classifier: opts.Classifier,
		streams:    opts.Streams,
		threshold:  opts.Threshold,
		pause:      opts.Pause,
		logger:     opts.Logger,
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.classifier == nil {
		c.classifier = lang.NewClassifier(nil, 0, c.logger)
	}
	if c.threshold <= 0 {
		c.threshold = DefaultThreshold
	}
	if c.streams.Output == nil && c.streams.Input == nil {
		c.streams = parser.DefaultStreamNames()
	}
	return c
}

// Result is the outcome of one analysis.
type Result struct {
	Video    metadata.Video
	Language lang.Language
	Resolved bool
	Registry *taxonomy.Registry
	// Fragments counts received fragments; Dropped counts those that
	// arrived while no parser was bound.
	Fragments int
	Dropped   int
}

type state uint8

const (
	accumulating state = iota
	bound
)

func (s state) String() string {
	if s == bound {
		return "bound"
	}
	return "accumulating"
}

// run is the mutable state of one analysis, owned by the consuming goroutine.
type run struct {
	c          *Coordinator
	video      metadata.Video
	logger     *slog.Logger
	dispatcher *parser.Dispatcher
	state      state
	armed      bool
	buffered   int
	fragments  int
	dropped    int
}

// Run consumes in until End and returns the recorded components. The
// receive blocks; ctx only bounds the model call. If in is closed before
// End, the partial result is returned with ErrStreamClosed.
func (c *Coordinator) Run(ctx context.Context, video metadata.Video, in <-chan Envelope) (Result, error) {
	r := &run{
		c:          c,
		video:      video,
		logger:     c.logger.With(slog.String("url", video.URL)),
		dispatcher: parser.NewDispatcher(c.streams),
	}
	r.start()

	for {
		env, ok := <-in
		if !ok {
			r.logger.Warn("stream closed without end",
				slog.Int("fragments", r.fragments))
			return r.result(), fmt.Errorf("run %s: %w", video.URL, internalerr.ErrStreamClosed)
		}

		switch env.Message.Kind {
		case End:
			r.logger.Info("stream ended",
				slog.Int("offset", env.Offset),
				slog.String("state", r.state.String()),
				slog.Int("fragments", r.fragments),
				slog.Int("dropped", r.dropped))
			return r.result(), nil
		case Fragment:
			r.fragment(ctx, env.Message.Text, env.Offset)
		default:
			r.logger.Warn("ignoring unknown message", slog.Int("kind", int(env.Message.Kind)))
		}

		if c.pause > 0 {
			time.Sleep(c.pause)
		}
	}
}

func (r *run) start() {
	for _, hint := range []string{r.video.Title, r.video.URL} {
		if hint == "" {
			continue
		}
		if language, ok := r.c.classifier.ClassifyByHint(hint); ok {
			r.bind(language, "hint")
			return
		}
	}
	r.state = accumulating
	r.armed = true
	r.logger.Info("language unresolved by hint, accumulating",
		slog.Int("threshold", r.c.threshold))
}

func (r *run) fragment(ctx context.Context, text string, offset int) {
	r.fragments++

	if r.state == accumulating && r.armed {
		r.buffered += utf8.RuneCountInString(text)
		if r.buffered >= r.c.threshold {
			r.armed = false
			// Only the triggering fragment is classified, not the buffer.
			language, ok := r.c.classifier.ClassifyByModel(ctx, text)
			if ok {
				r.bind(language, "model")
			} else {
				r.logger.Warn("model could not resolve language; fragments will be dropped",
					slog.Int("offset", offset))
			}
		}
	}

	if _, ok := r.dispatcher.Parse(text, offset); !ok {
		r.dropped++
		r.logger.Debug("fragment dropped while unbound", slog.Int("offset", offset))
	}
}

func (r *run) bind(language lang.Language, via string) {
	if err := r.dispatcher.Bind(r.video.URL, language); err != nil {
		r.logger.Error("bind parser", slog.String("error", err.Error()))
		return
	}
	r.state = bound
	r.logger.Info("language resolved",
		slog.String("language", language.String()),
		slog.String("via", via))
}

func (r *run) result() Result {
	return Result{
		Video:     r.video,
		Language:  r.dispatcher.Language(),
		Resolved:  r.dispatcher.Bound(),
		Registry:  r.dispatcher.Snapshot(),
		Fragments: r.fragments,
		Dropped:   r.dropped,
	}
}
