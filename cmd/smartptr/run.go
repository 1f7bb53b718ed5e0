package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/ownership/config"
	"github.com/wippyai/ownership/demo"
	"github.com/wippyai/ownership/lifecycle"
)

func (a *app) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scenarios and print the lifecycle trace",
		Example: `  smartptr run
  smartptr run --scenario baton --scenario shared --order 2
  smartptr run --hazard --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := a.runDemo(a.cfg.Demo.Scenarios...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return renderReport(out, a.cfg.Output.Format, report, reportStyle{
				color:  useColor(a.cfg.Output.Color, out),
				events: a.cfg.Output.Events,
			})
		},
	}

	f := cmd.Flags()
	f.StringSlice("scenario", nil, "scenario to run, repeatable (default all; see 'smartptr list')")
	f.String("order", "", "shared release order: "+strings.Join(demo.ValidOrders(), ", ")+", "+demo.ExprPrefix+"<expression> over n and unix, or a branch number")
	f.Uint64("seed", 0, "seed for --order random")
	f.Int("many", 0, "number of owners built by the vector factory")
	f.Bool("hazard", false, "alias two exclusive pointers and let both release")
	f.String("format", "", "output format: "+strings.Join(config.ValidFormats(), ", "))
	f.String("color", "", "color output: "+strings.Join(config.ValidColorModes(), ", "))
	f.Bool("events", true, "include the event trace in text output")

	for key, flag := range map[string]string{
		"demo.scenarios": "scenario",
		"demo.order":     "order",
		"demo.seed":      "seed",
		"demo.many":      "many",
		"demo.hazard":    "hazard",
		"output.format":  "format",
		"output.color":   "color",
		"output.events":  "events",
	} {
		_ = a.v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

// runDemo executes the named scenarios with the loaded configuration.
func (a *app) runDemo(names ...string) (*demo.Report, error) {
	opts, err := a.cfg.Demo.Options()
	if err != nil {
		return nil, err
	}
	opts.Sink = lifecycle.NewZapSink(a.logger.Named("lifecycle"))

	report, err := demo.NewRunner(opts, a.logger.Named("demo")).Run(names...)
	if err != nil {
		return nil, fmt.Errorf("run scenarios: %w", err)
	}
	return report, nil
}
