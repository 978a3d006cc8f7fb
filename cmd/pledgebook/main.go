// Pledgebook builds the interbank collateral workbook from a position
// export, today's borrowing targets and the banks' eligible-collateral
// lists. It runs as a CLI or serves an upload page.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/avaropoint/pledgebook/config"
	"github.com/avaropoint/pledgebook/logger"
)

// version is the application version, reported by /api/info.
const version = "1.0.0"

// usage prints command-line help to stderr.
func usage() {
	fmt.Fprintf(os.Stderr, `pledgebook v%s
Interbank collateral workbook builder

Usage:
  pledgebook build <positions> <today> [bank files or dirs...] [options]
                                          Build the workbook
  pledgebook rates <bank> <file>          Show one bank's rate lookup
  pledgebook serve [port] [options]       Start web interface (default port 8080)
  pledgebook healthcheck [port]           Probe a running server
  pledgebook help                         Show this help message

Options:
  --config <file>     TOML configuration (bank roster, layout, sheet names)
  --out <file>        Output path for build (default 银行间对账_MMDD.xlsx)
  --base-path <path>  Serve under a URL prefix (e.g. /pledge)

Examples:
  pledgebook build 银行间可用券模板.xlsx today.xlsx ./banks
  pledgebook build positions.xlsx today.xlsx 苏银对券.xlsx 华夏对券.xlsx --out out.xlsx
  pledgebook rates 联储 联储对券.xlsx
  pledgebook serve 9090 --base-path /pledge
`, version)
}

// options are the flags shared by every command.
type options struct {
	config   string
	out      string
	basePath string
	args     []string
}

func parseOptions(args []string) options {
	var o options
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" && i+1 < len(args):
			o.config = args[i+1]
			i++
		case args[i] == "--out" && i+1 < len(args):
			o.out = args[i+1]
			i++
		case args[i] == "--base-path" && i+1 < len(args):
			o.basePath = args[i+1]
			i++
		default:
			o.args = append(o.args, args[i])
		}
	}
	return o
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	opts := parseOptions(os.Args[2:])

	switch cmd {
	case "help", "-h", "--help":
		usage()
		return
	case "version", "-v", "--version":
		fmt.Println(version)
		return
	case "healthcheck":
		cmdHealthcheck(opts.args)
		return
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Env)
	defer logger.Sync()

	switch cmd {
	case "build":
		requireArgs(opts.args, 2, "positions and today files required")
		if err := cmdBuild(cfg, opts); err != nil {
			logger.Sync()
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "rates":
		requireArgs(opts.args, 2, "bank id and file required")
		cmdRates(cfg, opts.args[0], opts.args[1])
	case "serve", "server", "web":
		port := cfg.Server.Port
		if len(opts.args) > 0 {
			port = opts.args[0]
		}
		if opts.basePath != "" {
			cfg.Server.BasePath = opts.basePath
		}
		cmdServe(cfg, port)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// requireArgs exits with an error if fewer than n arguments were provided.
func requireArgs(args []string, n int, msg string) {
	if len(args) < n {
		fmt.Fprintln(os.Stderr, "Error: "+msg)
		usage()
		os.Exit(1)
	}
}
