package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/contextmenu/internal/config"
	"github.com/example/contextmenu/internal/logging"
	"github.com/example/contextmenu/pkg/contextmenu"
)

type globalOptions struct {
	debug      bool
	configPath string

	cfg *config.Config
}

func newRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "contextmenu",
		Short: "Show native context menus described by JSON payloads",
		Long: `contextmenu validates popup menu payloads sent by an application frontend
and hands them to a native menu backend (stub, systray or terminal).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			opts.cfg = cfg
			if opts.debug || cfg.Debug {
				logging.EnableDebug()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose debug logging")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.toml (default: user config dir)")
	root.PersistentFlags().Bool("console", false, "keep the console window visible (Windows)")

	root.AddCommand(
		newPopupCommand(opts),
		newServeCommand(opts),
		newInvokeCommand(opts),
		newSchemaCommand(),
	)
	return root
}

func (o *globalOptions) load() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load()
}

// resolvedConfigPath returns the file the current configuration came from.
func (o *globalOptions) resolvedConfigPath() (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}
	return config.Path()
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the popup payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(contextmenu.Schema())
			return err
		},
	}
}

// readPayload reads from path, or from stdin when path is empty or "-".
func readPayload(stdin io.Reader, path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read payload from stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}

// describeFailure prefixes err with its kind so scripts can tell
// malformed payloads from platform failures.
func describeFailure(err error) error {
	if err == nil {
		return nil
	}
	kind := contextmenu.Kind(err)
	if kind == "" {
		return err
	}
	return fmt.Errorf("%s error: %w", kind, err)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
