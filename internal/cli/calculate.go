package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/cable"
	"github.com/kubev2v/patchcord-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/patchcord-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type CalculateOptions struct {
	GlobalOptions
	RackPlanOptions

	Rack1   string
	Unit1   int
	Rack2   string
	Unit2   int
	SlackCm float64
	Output  string
	Remote  bool

	slackSet bool
}

func DefaultCalculateOptions() *CalculateOptions {
	return &CalculateOptions{
		GlobalOptions:   DefaultGlobalOptions(),
		RackPlanOptions: DefaultRackPlanOptions(),
		SlackCm:         cable.DefaultSafetyMarginMeters * 100,
	}
}

func NewCmdCalculate() *cobra.Command {
	o := DefaultCalculateOptions()
	cmd := &cobra.Command{
		Use:   "calculate --rack1 RACK --unit1 UNIT --rack2 RACK --unit2 UNIT",
		Short: "Compute the patch cord needed between two servers.",
		Example: `  # same rack
  planner calculate --rack1 1 --unit1 10 --rack2 1 --unit2 30

  # neighbouring racks addressed by code
  planner calculate --rack1 02b03 --unit1 10 --rack2 02b04 --unit2 40

  # custom slack, asking the API server
  planner calculate --rack1 02b03 --unit1 5 --rack2 02b07 --unit2 45 --slack-cm 60 --remote`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	for _, f := range []string{"rack1", "unit1", "rack2", "unit2"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (o *CalculateOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.RackPlanOptions.Bind(fs)
	fs.StringVar(&o.Rack1, "rack1", o.Rack1, "Rack of the first server: an index (1, 2, ...) or a rack code")
	fs.IntVar(&o.Unit1, "unit1", o.Unit1, "Unit of the first server (1-50)")
	fs.StringVar(&o.Rack2, "rack2", o.Rack2, "Rack of the second server: an index (1, 2, ...) or a rack code")
	fs.IntVar(&o.Unit2, "unit2", o.Unit2, "Unit of the second server (1-50)")
	fs.Float64Var(&o.SlackCm, "slack-cm", o.SlackCm, "Safety slack added to cross-rack links, in centimetres")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Ask the API server instead of computing locally")
}

func (o *CalculateOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	o.Rack1 = strings.TrimSpace(o.Rack1)
	o.Rack2 = strings.TrimSpace(o.Rack2)
	o.slackSet = cmd.Flags().Changed("slack-cm")
	return nil
}

func (o *CalculateOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := o.RackPlanOptions.Validate(); err != nil {
		return err
	}
	if o.Rack1 == "" || o.Rack2 == "" {
		return errors.New("both --rack1 and --rack2 are required")
	}
	if o.SlackCm < 0 {
		return fmt.Errorf("--slack-cm must not be negative, got %g", o.SlackCm)
	}
	if isIndex(o.Rack1) != isIndex(o.Rack2) {
		return fmt.Errorf("--rack1 %q and --rack2 %q mix a rack index and a rack code: give two indices or two codes", o.Rack1, o.Rack2)
	}
	if o.Remote && (isIndex(o.Rack1) || isIndex(o.Rack2)) {
		return errors.New("--remote needs rack codes, not indices")
	}
	return validateOutput(o.Output)
}

func (o *CalculateOptions) Run(ctx context.Context, args []string) error {
	resp, err := o.calculate(ctx)
	if err != nil {
		return err
	}

	if done, err := printStructured(o.out, o.Output, resp); done {
		return err
	}
	_, err = fmt.Fprintln(o.out, renderCalculation(*resp))
	return err
}

func (o *CalculateOptions) calculate(ctx context.Context) (*api.CalculationResponse, error) {
	if o.Remote {
		c, err := o.Client()
		if err != nil {
			return nil, fmt.Errorf("creating client: %w", err)
		}
		slack := o.SlackCm
		return c.Calculate(ctx, &api.CalculationRequest{
			ServerA: api.ServerEndpoint{RackCode: o.Rack1, Unit: o.Unit1},
			ServerB: api.ServerEndpoint{RackCode: o.Rack2, Unit: o.Unit2},
			Config:  &api.CalculationConfig{SafetySlackCm: &slack},
		})
	}

	// two indices need no rack plan
	if isIndex(o.Rack1) && isIndex(o.Rack2) {
		return o.calculateByIndex()
	}

	form := service.CalculationForm{
		ServerA: service.Endpoint{RackCode: o.Rack1, Unit: o.Unit1},
		ServerB: service.Endpoint{RackCode: o.Rack2, Unit: o.Unit2},
	}
	if o.slackSet {
		slack := o.SlackCm
		form.SafetySlackCm = &slack
	}
	result, err := service.NewCableService(o.Directory()).Calculate(ctx, form)
	if err != nil {
		return nil, err
	}
	resp := mappers.CalculationToApi(*result)
	return &resp, nil
}

func (o *CalculateOptions) calculateByIndex() (*api.CalculationResponse, error) {
	rackA, _ := strconv.Atoi(o.Rack1)
	rackB, _ := strconv.Atoi(o.Rack2)
	cfg := cable.CableConfig{SafetyMarginMeters: o.SlackCm / 100}

	breakdown, err := cable.ComputeBreakdown(
		cable.ServerLocation{Rack: rackA, Unit: o.Unit1},
		cable.ServerLocation{Rack: rackB, Unit: o.Unit2},
		&cfg,
	)
	if err != nil {
		return nil, err
	}

	resp := mappers.CalculationToApi(service.CalculationResult{
		ServerA:   service.ResolvedEndpoint{Endpoint: service.Endpoint{RackCode: o.Rack1, Unit: o.Unit1}, RackIndex: rackA},
		ServerB:   service.ResolvedEndpoint{Endpoint: service.Endpoint{RackCode: o.Rack2, Unit: o.Unit2}, RackIndex: rackB},
		Breakdown: breakdown,
	})
	return &resp, nil
}

func isIndex(rack string) bool {
	_, err := strconv.Atoi(rack)
	return err == nil
}

func renderCalculation(r api.CalculationResponse) string {
	lines := []string{
		titleStyle.Render("Patch cord calculation"),
		row("Server A", fmt.Sprintf("rack %s (#%d), unit %d", r.ServerA.RackCode, r.ServerA.RackIndex, r.ServerA.Unit)),
		row("Server B", fmt.Sprintf("rack %s (#%d), unit %d", r.ServerB.RackCode, r.ServerB.RackIndex, r.ServerB.Unit)),
	}
	if r.SameRack {
		lines = append(lines, row("Routing", "same rack"))
	} else {
		lines = append(lines,
			row("Routing", "cross rack"),
			row("Vertical A", meters(r.VerticalAM)),
			row("Horizontal", meters(r.HorizontalM)),
			row("Vertical B", meters(r.VerticalBM)),
			row("Slack", meters(r.SlackAddedM)),
		)
	}
	lines = append(lines,
		row("Raw length", meters(r.RawTotalM)),
		row("Recommended cord", resultStyle.Render(meters(r.RecommendedPatchCordM))),
	)
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
