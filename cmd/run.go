package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/ferrous-labs/decompress"
)

// CLI are the cli parameters for the decompress binary
type CLI struct {
	Archive          string           `arg:"" name:"archive" help:"Path to the archive." type:"existingfile"`
	Destination      string           `arg:"" name:"destination" default:"." help:"Output directory."`
	ContentDetection bool             `short:"c" help:"Select the format by content sniffing instead of the file name."`
	List             bool             `short:"l" help:"List archive entries instead of extracting."`
	Strip            int              `short:"s" help:"Strip this many leading path segments from every entry."`
	Verbose          bool             `short:"v" optional:"" help:"Verbose logging."`
	Version          kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run is the entrypoint of decompress as a cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Extract or list archives with auto-detected formats"),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	opts := decompress.NewExtractOptions(
		decompress.WithStrip(cli.Strip),
		decompress.WithDetectContent(cli.ContentDetection),
		decompress.WithLogger(logger),
	)

	if cli.List {
		listing, err := decompress.List(ctx, cli.Archive, opts)
		if err != nil {
			logger.Error("listing failed", "err", err)
			os.Exit(1)
		}
		for _, entry := range listing.Entries {
			fmt.Println(entry)
		}
		return
	}

	res, err := decompress.Decompress(ctx, cli.Archive, cli.Destination, opts)
	if err != nil {
		logger.Error("extraction failed", "err", err)
		os.Exit(1)
	}
	logger.Info("extraction finished", "format", res.ID, "files", len(res.Files))
	for _, f := range res.Files {
		fmt.Println(f)
	}
}
