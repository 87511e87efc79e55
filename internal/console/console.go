package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes caps a single input line, longer lines are dropped and reported
const maxLineBytes = 1 << 20

var errLineTooLong = fmt.Errorf("input line is longer than %d bytes and was ignored", maxLineBytes)

const titleInputError = "Input Error"

// Notifier prints user messages as titled blocks
type Notifier struct {
	out io.Writer
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{out: out}
}

func (n *Notifier) Info(title, message string) {
	fmt.Fprintf(n.out, "\n[%s]\n%s\n\n", title, message)
}

func (n *Notifier) Error(title, message string) {
	fmt.Fprintf(n.out, "\n[%s] !\n%s\n\n", title, message)
}

type lineResult struct {
	line string
	err  error
}

// lineReader reads input in background so a blocked read never outlives context
type lineReader struct {
	in      *bufio.Reader
	lines   chan lineResult
	stop    chan struct{}
	started bool
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{
		in:    bufio.NewReader(in),
		lines: make(chan lineResult),
		stop:  make(chan struct{}),
	}
}

func (r *lineReader) start() {
	if r.started {
		return
	}
	r.started = true

	go func() {
		defer close(r.lines)
		for {
			line, err := r.in.ReadString('\n')
			if line != "" || err == nil {
				res := lineResult{line: strings.TrimRight(line, "\r\n")}
				if len(res.line) > maxLineBytes {
					res = lineResult{err: errLineTooLong}
				}
				if !r.send(res) {
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					r.send(lineResult{err: err})
				}
				return
			}
		}
	}()
}

func (r *lineReader) send(res lineResult) bool {
	select {
	case r.lines <- res:
		return true
	case <-r.stop:
		return false
	}
}

// readLine returns io.EOF once input is exhausted and ctx error once ctx is done
func (r *lineReader) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.start()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// close releases background reader, it may stay blocked on input until the process ends
func (r *lineReader) close() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// isFinished reports errors which end an input loop without failure
func isFinished(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
