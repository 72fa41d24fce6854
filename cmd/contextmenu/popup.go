package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/contextmenu/internal/native"
	"github.com/example/contextmenu/pkg/contextmenu"
)

func newPopupCommand(opts *globalOptions) *cobra.Command {
	var (
		file    string
		backend string
		wait    bool
	)

	cmd := &cobra.Command{
		Use:   "popup",
		Short: "Show the menu described by a JSON payload",
		Long: `Reads a ContextMenuOptions payload from --file or stdin, validates it and
hands it to the selected backend. Exits non-zero with a "deserialization" or
"platform" error on failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			presenter, err := native.New(firstNonEmpty(backend, opts.cfg.Backend), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer presenter.Close()

			gw := contextmenu.New(presenter, contextmenu.WithRejectEmpty(opts.cfg.RejectEmpty))
			if err := gw.Ping(cmd.Context(), payload); err != nil {
				return describeFailure(err)
			}

			if wait {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				log.Printf("menu shown via %s; press Ctrl+C to exit", presenter.Name())
				<-ctx.Done()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (default: stdin)")
	cmd.Flags().StringVar(&backend, "backend", "", "menu backend: stub, systray, terminal (default from config)")
	cmd.Flags().BoolVar(&wait, "wait", false, "keep the menu alive until interrupted")
	return cmd
}
