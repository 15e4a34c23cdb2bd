package cli

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/kubev2v/patchcord-planner/internal/client"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type GlobalOptions struct {
	ServerUrl  string
	ConfigFile string
	Timeout    time.Duration

	out io.Writer
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		ServerUrl:  "",
		ConfigFile: client.DefaultConfigPath(),
		Timeout:    30 * time.Second,
		out:        os.Stdout,
	}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.ServerUrl, "server-url", "u", o.ServerUrl, "Address of the planner API server. Overrides the client config file.")
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to the client config file.")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Timeout of remote calls.")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	o.out = cmd.OutOrStdout()
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.Timeout < 0 {
		return errors.New("timeout must not be negative")
	}
	return nil
}

// Client returns an API client for --server-url, else for the config file,
// else for the default local server.
func (o *GlobalOptions) Client() (*client.PlannerClient, error) {
	if o.ServerUrl != "" {
		cfg := client.NewDefault()
		cfg.Service.Server = o.ServerUrl
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return client.NewPlannerClient(o.ServerUrl, o.Timeout), nil
	}

	cfg, err := client.ParseConfigFile(o.ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return client.NewPlannerClient(client.NewDefault().Service.Server, o.Timeout), nil
		}
		return nil, err
	}
	return client.NewFromConfig(cfg)
}
