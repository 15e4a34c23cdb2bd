package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	api "github.com/kubev2v/patchcord-planner/api/v1alpha1"
	"github.com/kubev2v/patchcord-planner/internal/handlers/v1alpha1/mappers"
	"github.com/kubev2v/patchcord-planner/internal/handlers/validator"
	"github.com/kubev2v/patchcord-planner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"sigs.k8s.io/yaml"
)

type PlanOptions struct {
	GlobalOptions
	RackPlanOptions

	File   string
	Output string
	Remote bool
}

func DefaultPlanOptions() *PlanOptions {
	return &PlanOptions{
		GlobalOptions:   DefaultGlobalOptions(),
		RackPlanOptions: DefaultRackPlanOptions(),
	}
}

func NewCmdPlan() *cobra.Command {
	o := DefaultPlanOptions()
	cmd := &cobra.Command{
		Use:   "plan -f FILE",
		Short: "Compute every link of a cabling job and its bill of materials.",
		Long: `Compute every link listed in a YAML or JSON file:

  links:
    - server_a: {rack_code: 02b03, unit: 10, hostname: db-01}
      server_b: {rack_code: 02b05, unit: 20}
    - server_a: {rack_code: 02b04, unit: 1}
      server_b: {rack_code: 02b04, unit: 2}
      config: {safety_slack_cm: 60}`,
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
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func (o *PlanOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	o.RackPlanOptions.Bind(fs)
	fs.StringVarP(&o.File, "file", "f", o.File, "Links file (YAML or JSON)")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Ask the API server instead of computing locally")
}

func (o *PlanOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if err := o.RackPlanOptions.Validate(); err != nil {
		return err
	}
	if o.File == "" {
		return errors.New("a links file is required")
	}
	return validateOutput(o.Output)
}

func (o *PlanOptions) Run(ctx context.Context, args []string) error {
	req, err := readLinks(o.File)
	if err != nil {
		return err
	}

	var resp *api.BatchCalculationResponse
	if o.Remote {
		c, err := o.Client()
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
		if resp, err = c.CalculateBatch(ctx, req); err != nil {
			return err
		}
	} else {
		result, err := service.NewCableService(o.Directory()).CalculateBatch(ctx, mappers.CalculationFormsApi(*req))
		if err != nil {
			return err
		}
		batch := mappers.BatchToApi(*result)
		resp = &batch
	}

	if done, err := printStructured(o.out, o.Output, resp); done {
		return err
	}
	_, err = fmt.Fprintln(o.out, renderBatch(*resp))
	return err
}

func readLinks(path string) (*api.BatchCalculationRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading links file: %w", err)
	}

	var req api.BatchCalculationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("decoding links file %s: %w", path, err)
	}

	v := validator.NewValidator()
	v.Register(validator.NewCalculationValidationRules()...)
	if err := v.Struct(req); err != nil {
		return nil, fmt.Errorf("links file %s: %w", path, err)
	}
	return &req, nil
}

func renderBatch(r api.BatchCalculationResponse) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%d links", len(r.Results)))}
	for _, res := range r.Results {
		label := fmt.Sprintf("%s/%d -> %s/%d", res.ServerA.RackCode, res.ServerA.Unit, res.ServerB.RackCode, res.ServerB.Unit)
		lines = append(lines, row(label, meters(res.RecommendedPatchCordM)))
	}

	bom := r.BillOfMaterials
	lines = append(lines, "", titleStyle.Render("Bill of materials"))
	for _, l := range bom.Lines {
		lines = append(lines, row(meters(l.LengthM), fmt.Sprintf("x %d", l.Count)))
	}
	lines = append(lines,
		row("Cords", fmt.Sprintf("%d (%d same rack, %d cross rack)", bom.TotalCords, bom.SameRackLinks, bom.CrossRackLinks)),
		row("Total length", resultStyle.Render(meters(bom.TotalM))),
	)
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
