package commands

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoobzio/vista"
	"github.com/zoobzio/vista/pkg/file"
)

type runOptions struct {
	position         int
	category         string
	set              map[string]string
	paramsPath       string
	watch            bool
	fail             bool
	delay            time.Duration
	items            int
	searchDebounce   time.Duration
	passwordDebounce time.Duration
}

// run: start the pipelines and feed them from stdin.
func runCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipelines against a simulated data source",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.watch && opts.paramsPath == "" {
				return errors.New("--watch requires --params")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return opts.run(ctx, cmd)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.position, "position", 0, "position passed to the data source")
	f.StringVar(&opts.category, "category", "", "category passed to the data source")
	f.StringToStringVar(&opts.set, "set", nil, "startup parameter KEY=VALUE (POSITION, CATEGORY)")
	f.StringVar(&opts.paramsPath, "params", "", "params file (.json, .yaml, .yml or .toml)")
	f.BoolVar(&opts.watch, "watch", false, "restart the pipelines when the params file changes")
	f.BoolVar(&opts.fail, "fail", false, "make every simulated fetch fail")
	f.DurationVar(&opts.delay, "delay", vista.DefaultSimulatedDelay, "simulated delay per generated item")
	f.IntVar(&opts.items, "items", vista.DefaultSimulatedItems, "number of generated items")
	f.DurationVar(&opts.searchDebounce, "search-debounce", vista.DefaultSearchDebounce, "search quiet interval")
	f.DurationVar(&opts.passwordDebounce, "password-debounce", vista.DefaultPasswordDebounce, "password quiet interval")
	return cmd
}

func (o *runOptions) run(ctx context.Context, cmd *cobra.Command) error {
	layers := o.overrides(cmd)

	var (
		base    vista.Params
		updates <-chan vista.Params
	)
	if o.paramsPath != "" {
		w := file.New(o.paramsPath).Logger(logger)
		if o.watch {
			ch, err := w.Watch(ctx)
			if err != nil {
				return err
			}
			first, err := awaitParams(ctx, ch)
			if err != nil {
				return err
			}
			base = first
			updates = ch
		} else {
			p, err := w.Load()
			if err != nil {
				return err
			}
			base = p
		}
	}

	params, err := vista.LayerParams(base, layers...)
	if err != nil {
		return err
	}

	s := newSession(o, cmd.OutOrStdout())
	defer s.stop()
	if err := s.start(ctx, params); err != nil {
		return err
	}

	if updates != nil {
		go func() {
			// Watch closes updates once ctx is done; a restart racing with
			// shutdown is refused by the closed session.
			for p := range updates {
				next, err := vista.LayerParams(p, layers...)
				if err != nil {
					logger.Error().Err(err).Msg("ignoring params update")
					continue
				}
				if err := s.restart(ctx, next); err != nil {
					if errors.Is(err, errSessionClosed) {
						return
					}
					logger.Error().Err(err).Msg("restart failed")
				}
			}
		}()
	}

	return s.readCommands(ctx, cmd.InOrStdin())
}

// awaitParams returns the first value Watch emits. Watch closes the channel
// without a value when ctx ends first.
func awaitParams(ctx context.Context, ch <-chan vista.Params) (vista.Params, error) {
	p, ok := <-ch
	if !ok {
		if err := ctx.Err(); err != nil {
			return vista.Params{}, err
		}
		return vista.Params{}, errors.New("params watch closed")
	}
	return p, nil
}

// overrides returns the layers applied on top of the params file: --set
// first, then the explicit flags.
func (o *runOptions) overrides(cmd *cobra.Command) []map[string]any {
	set := make(map[string]any, len(o.set))
	for k, v := range o.set {
		set[k] = v
	}
	flags := make(map[string]any, 2)
	if cmd.Flags().Changed("position") {
		flags[vista.ParamPosition] = o.position
	}
	if cmd.Flags().Changed("category") {
		flags[vista.ParamCategory] = o.category
	}
	return []map[string]any{set, flags}
}
