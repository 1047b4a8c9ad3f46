package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/vireo-rt/vireo/internal/devserver"
	"github.com/vireo-rt/vireo/internal/metrics"
	"github.com/vireo-rt/vireo/internal/tracing"
)

// serveCmd wires internal/devserver up behind an HTTP listener, grounded
// on the teacher's cmd/vango/dev.go devCmd() flag-binding shape.
func serveCmd() *cobra.Command {
	var (
		port      int
		host      string
		bundleDir string
		traced    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo dev server",
		Long: `Run the demo dev server: serves the static bundle, pushes a
hot-reload signal over /ws, and exposes scheduler/reconciler metrics on
/metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, bundleDir, traced)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "port to listen on")
	cmd.Flags().StringVarP(&host, "host", "H", "127.0.0.1", "host to bind to")
	cmd.Flags().StringVarP(&bundleDir, "dir", "d", "./dist", "bundle directory to serve")
	cmd.Flags().BoolVar(&traced, "trace", false, "also install OpenTelemetry tracing for flushes and reconciles")

	return cmd
}

func runServe(host string, port int, bundleDir string, traced bool) error {
	printBanner()
	info("serve")
	fmt.Println()

	metrics.Install()
	if traced {
		tracing.Install()
		info("tracing enabled")
	}

	srv := devserver.New(bundleDir)
	addr := fmt.Sprintf("%s:%d", host, port)

	success("serving %s on http://%s", bundleDir, addr)
	info("metrics at http://%s/metrics", addr)
	info("hot reload at ws://%s/ws", addr)

	return http.ListenAndServe(addr, srv)
}
