package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/contextmenu/internal/bridge"
	"github.com/example/contextmenu/internal/ipc"
	"github.com/example/contextmenu/internal/protocol"
	"github.com/example/contextmenu/internal/security"
)

func newInvokeCommand(opts *globalOptions) *cobra.Command {
	var (
		file    string
		command string
		addr    string
		token   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Send a payload to a running bridge, as the host shell would",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			cfg := opts.cfg
			endpoint := ipc.NewEndpoint(firstNonEmpty(addr, cfg.Bridge.Listen))
			resolved := firstNonEmpty(token, security.ResolveBridgeToken(cfg.Bridge.Token, cfg.Bridge.Secret))

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			resp, err := bridge.Invoke(ctx, endpoint, protocol.Request{
				Token:   resolved,
				Command: command,
				Payload: json.RawMessage(payload),
			})
			if err != nil {
				return err
			}
			if resp.Error != nil {
				return fmt.Errorf("request %s failed: %w", resp.ID, resp.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "request %s ok\n", resp.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (default: stdin)")
	cmd.Flags().StringVar(&command, "command", protocol.PluginPrefix+protocol.CommandPopup, "command name")
	cmd.Flags().StringVar(&addr, "addr", "", "bridge address (default from config)")
	cmd.Flags().StringVar(&token, "token", "", "bridge token (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	return cmd
}
