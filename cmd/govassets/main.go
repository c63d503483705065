// Command govassets runs one-off realm discovery and permission checks against
// an RPC endpoint and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"govassets/internal/app"
	"govassets/internal/assets/models"
	"govassets/internal/platform/config"
	"govassets/internal/platform/logger"
	id "govassets/pkg/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	endpoint     string
	treasuryFile string
	logLevel     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "govassets",
		Short:         "Inspect the assets and permissions of a governance realm",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.endpoint, "rpc", "", "JSON-RPC endpoint (overrides GOVASSETS_RPC_ENDPOINT)")
	root.PersistentFlags().StringVar(&opts.treasuryFile, "treasury", "", "treasury YAML file (overrides GOVASSETS_TREASURY_FILE)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newDiscoverCmd(opts), newPermissionsCmd(opts))
	return root
}

func newDiscoverCmd(opts *rootOptions) *cobra.Command {
	var assetType string
	cmd := &cobra.Command{
		Use:   "discover <realm>",
		Short: "Load a realm and print its governed accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			realm, err := id.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			var filter models.AccountType
			if assetType != "" {
				if filter, err = models.ParseAccountType(assetType); err != nil {
					return err
				}
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.App) error {
				state, err := a.Assets.LoadRealm(ctx, realm)
				if err != nil {
					return err
				}
				accounts := state.AssetAccounts
				if filter != "" {
					accounts = state.FilterByType(filter)
				}
				return printJSON(cmd.OutOrStdout(), accounts)
			})
		},
	}
	cmd.Flags().StringVar(&assetType, "type", "", "only print accounts of this type (token, nft, sol, mint, program)")
	return cmd
}

func newPermissionsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "permissions <realm> <wallet>",
		Short: "Load a realm and print what a wallet may propose",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			realm, err := id.ParsePublicKey(args[0])
			if err != nil {
				return err
			}
			wallet, err := id.ParsePublicKey(args[1])
			if err != nil {
				return err
			}
			return withApp(cmd.Context(), opts, func(ctx context.Context, a *app.App) error {
				if _, err := a.Assets.LoadRealm(ctx, realm); err != nil {
					return err
				}
				res, err := a.Permissions.Evaluate(ctx, realm, wallet)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
}

// withApp builds the service graph from the environment and flags. Snapshots
// always stay in memory for one-off commands.
func withApp(parent context.Context, opts *rootOptions, fn func(context.Context, *app.App) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	if opts.endpoint != "" {
		cfg.Chain.Endpoint = opts.endpoint
	}
	if opts.treasuryFile != "" {
		cfg.TreasuryFile = opts.treasuryFile
	}
	cfg.Redis.URL = ""

	treasury, err := config.LoadTreasury(cfg.TreasuryFile)
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(os.Stderr, opts.logLevel)
	a, err := app.New(ctx, cfg, treasury, log)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
