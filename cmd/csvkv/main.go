// Command csvkv bulk-loads a CSV file into a Redis-compatible store and
// queries it back by key.
//
//	csvkv store users.csv 0        # import users.csv into database 0
//	csvkv get 42 0                 # print every record keyed "42"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/hupe1980/csvkv"
	"github.com/hupe1980/csvkv/compress"
)

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "csvkv: %v\n", err)
		os.Exit(1)
	}
}

func mainImpl() error {
	hostname := flag.String("hostname", "localhost", "Store hostname")
	port := flag.Int("port", 6379, "Store port")
	password := flag.String("password", "", "Store password (default none)")
	compression := flag.String("compression", compress.Default.Name(), "Compression algorithm (xz, zstd, lz4)")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		usage()
		return fmt.Errorf("expected <store|get> <input> <db-index>, got %d arguments", len(args))
	}
	action, input := args[0], args[1]

	dbIndex, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("db-index must be an integer, got %q", args[2])
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))

	comp, ok := compress.ByName(*compression)
	if !ok {
		return fmt.Errorf("unknown compression %q (want xz, zstd or lz4)", *compression)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := csvkv.New(ctx,
		csvkv.WithAddr(net.JoinHostPort(*hostname, strconv.Itoa(*port))),
		csvkv.WithPassword(*password),
		csvkv.WithNamespace(dbIndex),
		csvkv.WithCompressor(comp),
		csvkv.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer client.Close()

	switch action {
	case "store":
		stats, err := client.StoreCSV(ctx, input)
		if err != nil {
			return err
		}
		if !stats.Saved {
			logger.Warn("store did not confirm a durable save; data is live in memory only")
		}
		return nil
	case "get":
		records, err := client.GetRecords(ctx, input)
		if err != nil {
			return err
		}
		for _, r := range records {
			fmt.Printf("%v\n\n", r)
		}
		fmt.Printf("count: %d\n", len(records))
		return nil
	default:
		usage()
		return fmt.Errorf("unknown action %q (want store or get)", action)
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage: csvkv [flags] <store|get> <input> <db-index>

Actions:
  store   import the CSV file <input> into database <db-index>,
          clearing the database first
  get     print every record stored under key <input> in database <db-index>

Flags:
`)
	flag.PrintDefaults()
}
