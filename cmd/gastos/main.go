package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/gastos/internal/app"
	"github.com/MrJamesThe3rd/gastos/internal/config"
	"github.com/MrJamesThe3rd/gastos/internal/importer"
	"github.com/MrJamesThe3rd/gastos/internal/logger"
	"github.com/MrJamesThe3rd/gastos/internal/reconcile"
)

var (
	bankFlag   = flag.String("bank", "", "Bank the files were exported from: "+bankList())
	dryRunFlag = flag.Bool("dry-run", false, "Reconcile without writing to the ledger")
)

var (
	okc   = color.New(color.FgGreen).SprintFunc()
	warnc = color.New(color.FgYellow).SprintFunc()
	errc  = color.New(color.BgRed, color.FgWhite).SprintFunc()
	headc = color.New(color.Bold).SprintFunc()
)

func bankList() string {
	banks := importer.Banks()

	names := make([]string, len(banks))
	for i, b := range banks {
		names[i] = string(b)
	}

	return strings.Join(names, ", ")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-bank id] [-dry-run] file...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create logger")
	}

	bank, err := chooseBank(*bankFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("no bank selected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx = logger.WithContext(ctx, log)

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	failed := false

	for _, path := range flag.Args() {
		res, err := importFile(ctx, a, bank, path, *dryRunFlag)
		if err != nil {
			fmt.Printf("%s %s: %v\n", errc(" FAIL "), path, err)
			failed = true

			continue
		}

		printResult(path, res, *dryRunFlag)

		if res.HasErrors() {
			failed = true
		}
	}

	if err := a.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close ledger")
	}

	if failed {
		os.Exit(1)
	}
}

// chooseBank resolves the -bank flag, prompting when it was not given.
func chooseBank(flagValue string) (importer.Bank, error) {
	if flagValue != "" {
		return importer.ParseBank(flagValue)
	}

	opts := make([]huh.Option[importer.Bank], 0, len(importer.Banks()))
	for _, b := range importer.Banks() {
		opts = append(opts, huh.NewOption(string(b.Account()), b))
	}

	var bank importer.Bank

	err := huh.NewSelect[importer.Bank]().
		Title("Which bank are these files from?").
		Options(opts...).
		Value(&bank).
		Run()
	if err != nil {
		return "", err
	}

	return bank, nil
}

func importFile(ctx context.Context, a *app.App, bank importer.Bank, path string, dryRun bool) (reconcile.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return reconcile.Result{}, err
	}
	defer f.Close()

	res, err := a.ImportFile(ctx, bank, f, dryRun)
	if errors.Is(err, importer.ErrUnknownBank) {
		return res, fmt.Errorf("%w (choose one of %s)", err, bankList())
	}

	return res, err
}

func printResult(path string, res reconcile.Result, dryRun bool) {
	title := path
	if dryRun {
		title += " (dry run)"
	}

	fmt.Println(headc(title))
	fmt.Printf("  read:       %d\n", res.TotalRead)
	fmt.Printf("  inserted:   %s\n", okc(res.Inserted))
	fmt.Printf("  duplicates: %d\n", res.Duplicates)

	if res.Skipped > 0 {
		fmt.Printf("  skipped:    %s\n", warnc(res.Skipped))
	}

	for _, e := range res.Errors {
		fmt.Printf("  %s %s\n", errc(" ERR "), e)
	}
}
