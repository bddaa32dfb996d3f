// Command cert-inventory lists the certificates installed on this machine, reports the ones
// about to expire and ships the report to a collector.
package main

import (
	"fmt"
	"os"

	"cert-inventory/internal/version"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:   "cert-inventory",
	Short: "Inventory locally installed certificates",
	Long: `cert-inventory reads the machine and user certificate stores, drops vendor and
machine-generated noise, keeps the newest certificate per issuer and subject and lists the
result by expiration date.

Examples:
  # Print the inventory and send the report to the configured collector
  cert-inventory scan -c config.yaml

  # Serve the inventory as a web page, refreshed every refresh_interval
  cert-inventory serve -c config.yaml

  # Accept reports uploaded by agents
  cert-inventory receive -c config.yaml`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML config file (defaults apply when omitted)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(receiveCmd)
	rootCmd.AddCommand(versionCmd)
}
