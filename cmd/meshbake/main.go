// meshbake bakes uniform surface samples from triangle meshes.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/meshbake/internal/config"
	"github.com/Faultbox/meshbake/internal/logger"
)

func main() {
	config.ParseFlags()
	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage(os.Stdout)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch command {
	case "bake":
		err = cmdBake(cfg, args, os.Stdout)
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "inspect":
		err = cmdInspect(cfg, args, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshbake - uniform mesh surface sample baker

Usage:
  meshbake [flags] <command> [args]

Commands:
  bake <mesh.obj> [name]       Bake samples and write <name>.samples + <name>.yaml
  info <mesh.obj>              Show mesh attributes and surface area
  inspect <name> [n]           Show an artifact and its first n samples (default 8)
  help                         Show this help

Flags:
  -config <path>    Config file (default ./meshbake.yaml or the user config dir)
  -seed <n>         Random seed, 32-bit signed (decimal or 0x hex)
  -samples <n>      Number of samples
  -order <name>     Ordering: none, uv-radial, nearest-anchor
  -out <dir>        Artifact directory
  -debug            Debug logging

Examples:
  meshbake bake bunny.obj
  meshbake -samples 4096 -order uv-radial bake bunny.obj bunny_uv
  meshbake -out ./baked inspect bunny 16`)
}
