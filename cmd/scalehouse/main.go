package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/scalehouse/internal/cli"
	"github.com/alexanderramin/scalehouse/internal/config"
	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/repository"
	"github.com/alexanderramin/scalehouse/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	productRepo := repository.NewSQLiteProductRepo(database)
	cardRepo := repository.NewSQLitePriceCardRepo(database)
	historyRepo := repository.NewSQLitePriceHistoryRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case logging goes to stderr so piped command output stays clean.
	var logOut io.Writer = io.Discard
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Products:  service.NewProductService(productRepo, cardRepo, uow, time.Now, cfg.ChangedBy, observers...),
		Prices:    service.NewPriceCardService(cardRepo, historyRepo, uow, time.Now, cfg.ChangedBy, observers...),
		Timeline:  service.NewTimelineService(uow, time.Now, observers...),
		Schedules: service.NewImportService(uow, time.Now, cfg.ChangedBy, observers...),
		Config:    cfg,
		Logger:    logger,
		Now:       time.Now,
	}

	// A bare "scalehouse" opens the TUI only on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
