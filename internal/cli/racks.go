package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/patchcord-planner/internal/rackplan"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RackPlanOptions selects the rack plan used by local calculations.
type RackPlanOptions struct {
	RackPlan   string
	RangeStart string
	RangeEnd   string
}

func DefaultRackPlanOptions() RackPlanOptions {
	return RackPlanOptions{
		RangeStart: rackplan.DefaultRangeStart,
		RangeEnd:   rackplan.DefaultRangeEnd,
	}
}

func (o *RackPlanOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.RackPlan, "rack-plan", o.RackPlan, "Path to the rack plan spreadsheet (.xlsx). Without it the whole rack range is used.")
	fs.StringVar(&o.RangeStart, "range-start", o.RangeStart, "First rack code of the row.")
	fs.StringVar(&o.RangeEnd, "range-end", o.RangeEnd, "Last rack code of the row.")
}

func (o *RackPlanOptions) Validate() error {
	return o.rackRange().Validate()
}

func (o *RackPlanOptions) rackRange() rackplan.Range {
	return rackplan.Range{Start: o.RangeStart, End: o.RangeEnd}
}

// Directory loads the spreadsheet, falling back to the generated plan.
func (o *RackPlanOptions) Directory() *rackplan.Plan {
	if o.RackPlan == "" {
		return rackplan.DefaultPlan(o.rackRange())
	}
	return rackplan.LoadOrDefault(o.RackPlan, o.rackRange())
}

type RacksOptions struct {
	GlobalOptions
	RackPlanOptions

	Output string
	Remote bool
}

func DefaultRacksOptions() *RacksOptions {
	return &RacksOptions{
		GlobalOptions:   DefaultGlobalOptions(),
		RackPlanOptions: DefaultRackPlanOptions(),
	}
}

func NewCmdRacks() *cobra.Command {
	o := DefaultRacksOptions()
	cmd := &cobra.Command{
		Use:   "racks",
		Short: "List the racks of the row and their indices.",
		Args:  cobra.NoArgs,
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
	return cmd
}

func (o *RacksOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.RackPlanOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Remote, "remote", o.Remote, "List the racks known to the remote service")
}

func (o *RacksOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := o.RackPlanOptions.Validate(); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

func (o *RacksOptions) Run(ctx context.Context, args []string) error {
	var list api.RackList

	if o.Remote {
		c, err := o.Client()
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
		resp, err := c.ListRacks(ctx)
		if err != nil {
			return fmt.Errorf("listing remote racks: %w", err)
		}
		list = *resp
	} else {
		racks, err := o.Directory().List(ctx)
		if err != nil {
			return err
		}
		list = mappers.RackListToApi(racks)
	}

	if done, err := printStructured(o.out, o.Output, list); done {
		return err
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("%d racks", len(list.Racks)))}
	for _, r := range list.Racks {
		lines = append(lines, row(r.Code, strconv.Itoa(r.Index)))
	}
	_, err := fmt.Fprintln(o.out, panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
	return err
}
