package main

import (
	"fmt"
	"os"

	"cert-inventory/internal/config"
	"cert-inventory/internal/presentation"
	"cert-inventory/internal/server"
	"cert-inventory/internal/version"

	"github.com/spf13/cobra"
)

var (
	scanOutput      string
	scanNoColor     bool
	failOnSendError bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Collect the inventory once, send the report and print the list",
	Long: `Collect the certificate inventory, send the text report to transport.host when one is
configured and print the certificates ordered by expiration date.

A failed delivery is logged but does not change the exit status unless
--fail-on-send-error is given.

Examples:
  # Colored table on a terminal
  cert-inventory scan

  # The exact text that is uploaded
  cert-inventory scan --output report`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the inventory as a web page and JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		srv, err := server.New(cfg, server.SetupLogger(cfg))
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}
		return srv.Start()
	},
}

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Accept inventory reports uploaded by agents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		srv, err := server.NewReceiver(cfg, server.SetupLogger(cfg))
		if err != nil {
			return fmt.Errorf("failed to create receiver: %w", err)
		}
		return srv.Start()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.ProductName, version.GetFullVersion())
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", server.OutputTable, "output format: table or report")
	scanCmd.Flags().BoolVar(&scanNoColor, "no-color", false, "disable colored output")
	scanCmd.Flags().BoolVar(&failOnSendError, "fail-on-send-error", false, "exit non-zero when the report cannot be delivered")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger := server.SetupLogger(cfg)

	_, err = server.Scan(cmd.Context(), cfg, logger, server.ScanOptions{
		Out:             os.Stdout,
		Output:          scanOutput,
		Color:           !scanNoColor && presentation.ShouldColor(os.Stdout),
		FailOnSendError: failOnSendError,
	})
	return err
}
