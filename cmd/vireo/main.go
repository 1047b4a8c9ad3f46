// Command vireo is the CLI entry point for the reactive runtime's demo
// tooling: serve runs the dev server, bench runs the scheduler and
// reconciler throughput benchmarks, and deploy ships a built demo bundle
// to S3. Grounded on the teacher's cmd/vango/main.go — same cobra root
// command shape, same SilenceUsage/SilenceErrors, same colored-output
// helpers.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

const banner = `
  ╦  ╦┬┬─┐┌─┐┌─┐
  ╚╗╔╝│├┬┘├┤ │ │
   ╚╝ ┴┴└─└─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "vireo",
		Short: "Demo tooling for the vireo reactive runtime",
		Long: `vireo drives the demo app built on top of the reactive runtime:
signals, computed values, effects, a keyed-list reconciler, and a
binding layer, all wired up behind a dev server you can poke at in a
browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		benchCmd(),
		deployCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func printBanner() { fmt.Print(banner) }

func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the vireo version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("vireo %s (%s)\n", version, commit)
			return nil
		},
	}
}
