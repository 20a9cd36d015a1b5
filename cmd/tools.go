package cmd

import (
	"context"

	"reliefctl/internal/cli"

	"github.com/spf13/cobra"
)

// toolFlags are the output and connection flags of every tool-backed command.
type toolFlags struct {
	output   string
	quiet    bool
	endpoint string
}

func (f *toolFlags) register(cmd *cobra.Command, persistent bool) {
	flags := cmd.Flags()
	if persistent {
		flags = cmd.PersistentFlags()
	}
	flags.StringVarP(&f.output, "output", "o", "table", "Output format (table, json, yaml)")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress non-essential output")
	flags.StringVar(&f.endpoint, "endpoint", "", "Use a running 'reliefctl mcp-server' at this URL instead of calling the backend directly")
}

// newExecutor connects a tool executor for cmd.
func newExecutor(cmd *cobra.Command, f *toolFlags) (*cli.ToolExecutor, context.Context, error) {
	format, err := cli.ParseOutputFormat(f.output)
	if err != nil {
		return nil, nil, err
	}

	application, err := newApplication(cmd, "")
	if err != nil {
		return nil, nil, err
	}

	ctx := commandContext(cmd)
	executor, err := application.NewToolExecutor(ctx, f.endpoint, cli.ExecutorOptions{
		Format: format,
		Quiet:  f.quiet,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return executor, ctx, nil
}

// runTool executes one tool and prints its result.
func runTool(cmd *cobra.Command, f *toolFlags, tool string, args map[string]interface{}) error {
	executor, ctx, err := newExecutor(cmd, f)
	if err != nil {
		return err
	}
	defer executor.Close()

	return executor.Execute(ctx, tool, args)
}
