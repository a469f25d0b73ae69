// Package source replays recorded producer output. Each line of a fragment
// file is one JSON record:
//
//	{"offset": 12, "text": "for (int i = 0; i < 10; i++)"}
//	{"offset": 95, "end": true}
//
// A missing end record is synthesized at the last offset seen.
package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cognicore/kcx/pkg/kcx/stream"
)

// Record is one line of a fragment file
type Record struct {
	Offset int    `json:"offset"`
	Text   string `json:"text,omitempty"`
	End    bool   `json:"end,omitempty"`
}

// Envelope converts the record into a stream message.
func (r Record) Envelope() stream.Envelope {
	if r.End {
		return stream.EndAt(r.Offset)
	}
	return stream.FragmentAt(r.Text, r.Offset)
}

const maxLine = 1 << 20

// Produce reads records from r and sends them to out in order, ending with
// an End message. out is closed when Produce returns; on a read error it is
// closed without End. Malformed lines are logged and skipped.
func Produce(ctx context.Context, r io.Reader, out chan<- stream.Envelope, logger *slog.Logger) error {
	defer close(out)
	if logger == nil {
		logger = slog.Default()
	}

	send := func(env stream.Envelope) error {
		select {
		case out <- env:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	last := 0
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			logger.Warn("skipping malformed fragment",
				slog.Int("line", lineNo),
				slog.String("error", err.Error()))
			continue
		}
		if rec.Offset < last {
			logger.Warn("offset went backwards",
				slog.Int("line", lineNo),
				slog.Int("offset", rec.Offset),
				slog.Int("previous", last))
		}
		last = rec.Offset

		if err := send(rec.Envelope()); err != nil {
			return err
		}
		if rec.End {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read fragments: %w", err)
	}
	return send(stream.EndAt(last))
}

// ProduceFile is Produce over the file at path.
func ProduceFile(ctx context.Context, path string, out chan<- stream.Envelope, logger *slog.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		close(out)
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Produce(ctx, f, out, logger)
}

// Texts wraps plain text lines as fragments at consecutive offsets starting
// at 0. It is how the CLI feeds stdin without recorded offsets. The
// encoding goroutine stops once ctx is done or the returned reader is
// closed.
func Texts(ctx context.Context, r io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()
	stop := context.AfterFunc(ctx, func() { pr.CloseWithError(ctx.Err()) })
	go func() {
		defer stop()
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
		enc := json.NewEncoder(pw)
		offset := 0
		for scanner.Scan() {
			if strings.TrimSpace(scanner.Text()) == "" {
				continue
			}
			if err := enc.Encode(Record{Offset: offset, Text: scanner.Text()}); err != nil {
				pw.CloseWithError(err)
				return
			}
			offset++
		}
		pw.CloseWithError(scanner.Err())
	}()
	return pr
}
