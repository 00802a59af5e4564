package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/agusespa/tsmend/internal/pipeline"
	"github.com/agusespa/tsmend/internal/report"
	"github.com/agusespa/tsmend/internal/tools"
	"github.com/agusespa/tsmend/internal/types"
	"github.com/agusespa/tsmend/pkg/config"
)

var version = "dev"

// Exit codes. The shim codes fire before any source file is mutated.
const (
	exitUsage        = 1
	exitShimContent  = 2
	exitShimNoModule = 3
)

func main() {
	showHelp := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version information")
	configFile := flag.String("config", "tsmend.json", "Path to configuration file")
	sweep := flag.Bool("sweep", false, "Remove every stale suppression instead of the per-run capped subset")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tsmend version %s\n", version)
		return
	}

	if *showHelp {
		fmt.Println("tsmend - mechanical remediation of type checker diagnostics")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Printf("  %s [options] OUTDIR\n", os.Args[0])
		fmt.Println()
		fmt.Println("OUTDIR receives one plain-text artifact per pipeline stage.")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] OUTDIR\n", os.Args[0])
		os.Exit(exitUsage)
	}
	outDir := flag.Arg(0)

	cfg := config.Default()
	if _, err := os.Stat(*configFile); err == nil {
		cfg, err = config.LoadConfig(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to load config from %s: %v\n", *configFile, err)
			os.Exit(exitUsage)
		}
	}

	fmt.Println("")
	fmt.Println("==================")
	fmt.Println("      tsmend      ")
	fmt.Println("==================")
	fmt.Println("")

	registry := tools.NewRegistry()
	toolsToRegister := map[tools.ToolName]tools.Tool{
		tools.ToolNameGitStatus: &tools.GitStatusTool{Root: cfg.Project.Root},
		tools.ToolNameGitDiff:   &tools.GitDiffTool{Root: cfg.Project.Root},
		tools.ToolNameTypeCheck: &tools.TypeCheckTool{Root: cfg.Project.Root, Command: cfg.Checker.Command},
		tools.ToolNameReadFile:  &tools.ReadFileTool{Root: cfg.Project.Root},
		tools.ToolNameWriteFile: &tools.WriteFileTool{Root: cfg.Project.Root},
	}
	for name, tool := range toolsToRegister {
		registry.Register(name, tool)
	}

	writer, err := report.NewWriter(outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	pipe, err := pipeline.New(cfg, registry, writer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}
	pipe.Sweep = *sweep

	if err := pipe.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Remediation failed: %v\n", err)

		var violation *types.ShimViolation
		if errors.As(err, &violation) {
			if violation.Reason == types.ViolationForbiddenContent {
				os.Exit(exitShimContent)
			}
			os.Exit(exitShimNoModule)
		}
		os.Exit(exitUsage)
	}

	fmt.Printf("\nArtifacts written to %s\n", writer.Dir())
}
