package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/zoobzio/vista"
)

// update is one line of run output.
type update struct {
	Slot  string `json:"slot"`
	State any    `json:"state"`
}

type printer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func (p *printer) print(slot string, state any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.Encode(update{Slot: slot, State: state}); err != nil {
		logger.Warn().Err(err).Str("slot", slot).Msg("write failed")
	}
}

// session owns the running orchestrator and swaps it when params change.
type session struct {
	opts *runOptions
	out  *printer

	mu     sync.Mutex
	orch   *vista.Orchestrator
	cancel context.CancelFunc
	closed bool
	wg     sync.WaitGroup
}

var errSessionClosed = errors.New("session closed")

func newSession(opts *runOptions, w io.Writer) *session {
	return &session{
		opts: opts,
		out:  &printer{enc: json.NewEncoder(w)},
	}
}

func (s *session) start(ctx context.Context, params vista.Params) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSessionClosed
	}

	source := vista.NewSimulatedSource().
		Delay(s.opts.delay).
		Count(s.opts.items)
	if s.opts.fail {
		source.Fail()
	}

	orch := vista.New(source, params).
		Logger(logger).
		Metrics(newLogMetrics(logger)).
		SearchDebounce(s.opts.searchDebounce).
		PasswordDebounce(s.opts.passwordDebounce).
		ErrorHistorySize(10)

	runCtx, cancel := context.WithCancel(ctx)

	// Subscribe before Start so the seed is the only value skipped.
	forward(runCtx, &s.wg, s.out, orch.ListState())
	forward(runCtx, &s.wg, s.out, orch.SearchState())
	forward(runCtx, &s.wg, s.out, orch.PasswordState())

	if err := orch.Start(runCtx); err != nil {
		cancel()
		orch.Stop()
		return err
	}

	s.orch = orch
	s.cancel = cancel
	return nil
}

func (s *session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
}

func (s *session) stopLocked() {
	if s.orch != nil {
		s.orch.Stop()
		s.orch = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

func (s *session) restart(ctx context.Context, params vista.Params) error {
	s.mu.Lock()
	s.stopLocked()
	s.mu.Unlock()

	logger.Info().
		Int("position", params.Position).
		Str("category", params.Category).
		Msg("params changed, restarting")
	return s.start(ctx, params)
}

func (s *session) current() *vista.Orchestrator {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orch
}

// forward prints every snapshot published after the seed.
func forward[T any](ctx context.Context, wg *sync.WaitGroup, out *printer, slot *vista.Slot[T]) {
	ch := slot.Subscribe(ctx)
	<-ch
	wg.Add(1)
	go func() {
		defer wg.Done()
		for v := range ch {
			out.print(slot.Name(), v)
		}
	}()
}

type command struct {
	verb string
	arg  string
}

// parseCommand splits a line into its verb and the raw text after the first
// space. The text is kept verbatim so blank queries reach the pipeline.
func parseCommand(line string) command {
	line = strings.TrimRight(line, "\r\n")
	verb, arg, _ := strings.Cut(strings.TrimLeft(line, " \t"), " ")
	return command{verb: strings.ToLower(verb), arg: arg}
}

// readCommands dispatches stdin lines until EOF, quit or ctx is done.
func (s *session) readCommands(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			if quit := s.dispatch(parseCommand(line)); quit {
				return nil
			}
		}
	}
}

func (s *session) dispatch(c command) bool {
	if c.verb == "quit" || c.verb == "exit" {
		return true
	}
	o := s.current()
	if o == nil {
		logger.Warn().Str("command", c.verb).Msg("pipelines not running")
		return false
	}

	switch c.verb {
	case "":
	case "search":
		o.SubmitSearchQuery(c.arg)
	case "password":
		o.SubmitPassword(c.arg)
	case "state":
		s.out.print(vista.PipelineList, o.ListState().Current())
		s.out.print(vista.PipelineSearch, o.SearchState().Current())
		s.out.print(vista.PipelinePassword, o.PasswordState().Current())
	case "errors":
		for _, err := range o.ErrorHistory() {
			s.out.print("errors", err.Error())
		}
	default:
		logger.Warn().Str("command", c.verb).Msg("unknown command, expected search|password|state|errors|quit")
	}
	return false
}
