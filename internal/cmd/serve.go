package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcraft-dev/jcraft/internal/config"
	"github.com/jcraft-dev/jcraft/internal/mcpserver"
)

var (
	serveManifest string
	serveSrc      string
	serveJarURLs  []string
	serveTools    []string
	serveTimeout  time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run jcraft as an MCP server over stdio",
	Long: `serve exposes jcraft's construction search as MCP tools
(jcraft_construct, jcraft_emit) so an agent can request a plan or
emitted source without shelling out to the CLI.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveManifest, "manifest", "", "path to a JSON class manifest view")
	serveCmd.Flags().StringVar(&serveSrc, "src", "", "directory of .java sources to parse as a view")
	serveCmd.Flags().StringSliceVar(&serveJarURLs, "jar-urls", nil, "jar URLs to download before loading the view (default from config)")
	serveCmd.Flags().StringSliceVar(&serveTools, "tools", nil, "tools to expose (default: all)")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 0, "exit if idle this long (0 disables)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	jarURLs := serveJarURLs
	if len(jarURLs) == 0 {
		jarURLs = cfg.Scan.JarURLs
	}

	s, err := mcpserver.New(mcpserver.Config{
		ManifestPath: serveManifest,
		SrcDir:       serveSrc,
		JarURLs:      jarURLs,
		Tools:        serveTools,
		Timeout:      serveTimeout,
	})
	if err != nil {
		return fmt.Errorf("start mcp server: %w", err)
	}
	return s.ServeStdio()
}
