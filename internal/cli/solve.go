package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitrdm/ctcnet/internal/problem"
	"github.com/gitrdm/ctcnet/pkg/ctcnet"
)

// SolveOptions holds the flags of the solve command. Unset flags keep the
// value from --config or the engine default.
type SolveOptions struct {
	Ratio   float64
	During  time.Duration
	MaxIter int
	LIFO    bool
	Ordered bool
	Stats   bool
}

// SolveResult is the outcome of a solve run.
type SolveResult struct {
	Problem    string             `json:"problem"`
	NetworkID  string             `json:"network_id"`
	State      string             `json:"state"`
	Iterations int                `json:"iterations"`
	Pending    int                `json:"pending"`
	Empty      bool               `json:"empty"`
	Elapsed    string             `json:"elapsed"`
	Variables  []problem.VarValue `json:"variables"`
	Stats      *ctcnet.Stats      `json:"stats,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{}

	cmd := &cobra.Command{
		Use:   "solve <problem.yaml>",
		Short: "Contract a problem and print the narrowed variables",
		Long: `Build the contractor network of a problem file and propagate it.

By default propagation runs to a fixpoint. --during stops after the given
wall-clock time and --max-iter after the given number of contractor calls;
the reported state is then budget_exhausted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().Float64Var(&opts.Ratio, "ratio", ctcnet.DefaultFixedPointRatio, "fixpoint ratio in [0, 1]")
	cmd.Flags().DurationVar(&opts.During, "during", 0, "time budget, e.g. 10ms (0 = none)")
	cmd.Flags().IntVar(&opts.MaxIter, "max-iter", 0, "maximum contractor calls (0 = none)")
	cmd.Flags().BoolVar(&opts.LIFO, "lifo", false, "revisit recently activated contractors first")
	cmd.Flags().BoolVar(&opts.Ordered, "ordered", false, "call contractors forward then backward in file order instead of using the worklist")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "include propagation statistics")

	return cmd
}

// engineConfig merges --config with the flags set on cmd.
func engineConfig(cmd *cobra.Command, rootOpts *RootOptions, opts *SolveOptions) (*ctcnet.Config, error) {
	cfg := ctcnet.DefaultConfig()
	if rootOpts.Config != "" {
		loaded, err := ctcnet.LoadConfig(rootOpts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if opts == nil {
		return cfg, nil
	}
	flags := cmd.Flags()
	if flags.Changed("ratio") {
		cfg.FixedPointRatio = opts.Ratio
	}
	if flags.Changed("during") {
		cfg.MaxDuration = opts.During
	}
	if flags.Changed("max-iter") {
		cfg.MaxIterations = opts.MaxIter
	}
	if flags.Changed("lifo") && opts.LIFO {
		cfg.Queue = ctcnet.QueueLIFO
	}
	return cfg, cfg.Validate()
}

// buildInstance loads a problem and wires it into a new network.
func buildInstance(cfg *ctcnet.Config, rootOpts *RootOptions, path string) (*problem.Problem, *problem.Instance, error) {
	p, err := problem.Load(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid problem", err)
	}
	n, err := ctcnet.NewWithConfig(cfg)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	n.SetLogger(rootOpts.logger)
	in, err := p.Build(n)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "cannot build network", err)
	}
	rootOpts.logger.Debug().
		Str("problem", p.Name).
		Int("domains", n.DomainCount()).
		Int("contractors", n.ContractorCount()).
		Msg("network built")
	return p, in, nil
}

func runSolve(cmd *cobra.Command, rootOpts *RootOptions, opts *SolveOptions, path string) error {
	cfg, err := engineConfig(cmd, rootOpts, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}
	p, in, err := buildInstance(cfg, rootOpts, path)
	if err != nil {
		return err
	}

	var monitor *ctcnet.Monitor
	if opts.Stats {
		monitor = ctcnet.NewMonitor()
		in.Network.SetMonitor(monitor)
	}

	var res ctcnet.Result
	if opts.Ordered {
		res = in.Network.ContractOrdered()
	} else {
		res, err = in.Network.ContractContext(cmd.Context())
		if err != nil {
			rootOpts.logger.Warn().Err(err).Msg("propagation interrupted")
		}
	}

	out := SolveResult{
		Problem:    p.Name,
		NetworkID:  in.Network.ID(),
		State:      res.State.String(),
		Iterations: res.Calls,
		Pending:    res.Pending,
		Empty:      res.Empty,
		Elapsed:    res.Elapsed.String(),
		Variables:  in.Values(),
	}
	if monitor != nil {
		stats := monitor.GetStats()
		out.Stats = &stats
	}

	if rootOpts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	return writeSolveText(cmd.OutOrStdout(), out)
}

func writeSolveText(w io.Writer, out SolveResult) error {
	fmt.Fprintf(w, "problem: %s\n", out.Problem)
	fmt.Fprintf(w, "state: %s (%d iterations, %d pending)\n", out.State, out.Iterations, out.Pending)
	if out.Empty {
		fmt.Fprintln(w, "result: empty, the constraints have no solution in the initial domains")
	}
	width := 0
	for _, v := range out.Variables {
		if len(v.Name) > width {
			width = len(v.Name)
		}
	}
	for _, v := range out.Variables {
		fmt.Fprintf(w, "  %-*s = %s\n", width, v.Name, v.Value)
	}
	if s := out.Stats; s != nil {
		fmt.Fprintf(w, "calls: %d (%d changed), activations: %d, emptiness spread: %d, peak queue: %d\n",
			s.ContractorCalls, s.ReportedChanges, s.Activations, s.EmptinessSpread, s.PeakQueueSize)
	}
	return nil
}
