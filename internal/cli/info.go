package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kubev2v/patchcord-planner/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type InfoOptions struct {
	GlobalOptions
	Output string
	Remote bool
}

func DefaultInfoOptions() *InfoOptions {
	return &InfoOptions{
		GlobalOptions: DefaultGlobalOptions(),
		Output:        "",
		Remote:        false,
	}
}

func NewCmdInfo() *cobra.Command {
	o := DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print planner information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *InfoOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
	fs.BoolVar(&o.Remote, "remote", o.Remote, "Get information from the remote service")
}

func (o *InfoOptions) Validate() error {
	if err := o.GlobalOptions.Validate([]string{}); err != nil {
		return err
	}
	return validateOutput(o.Output)
}

type InfoResponse struct {
	GitCommit   string `json:"gitCommit"`
	VersionName string `json:"versionName"`
}

func (o *InfoOptions) Run(ctx context.Context, args []string) error {
	var info InfoResponse

	if o.Remote {
		c, err := o.Client()
		if err != nil {
			return fmt.Errorf("creating client: %w", err)
		}
		remote, err := c.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get remote info: %w", err)
		}
		info = InfoResponse{GitCommit: remote.GitCommit, VersionName: remote.VersionName}
	} else {
		versionInfo := version.Get()
		info = InfoResponse{
			GitCommit:   versionInfo.GitCommit,
			VersionName: versionInfo.GitVersion,
		}
	}

	if done, err := printStructured(o.out, o.Output, info); done {
		return err
	}

	source := "Local CLI"
	if o.Remote {
		source = "Remote Service"
	}
	_, err := fmt.Fprintln(o.out, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("Patch-cord Planner %s Information", source)),
		row("Version Name", info.VersionName),
		row("Git Commit", info.GitCommit),
	))
	return err
}
