package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dejobratic/minishop/internal/bootstrap"
	"github.com/dejobratic/minishop/internal/shop/app"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The terminal belongs to the UI; logs go to SHOPTUI_LOG_FILE or nowhere.
	var logOut io.Writer = io.Discard
	if path := os.Getenv("SHOPTUI_LOG_FILE"); path != "" {
		f, err := tea.LogToFile(path, "shoptui")
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}

	console, err := bootstrap.New(ctx, logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start console: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = console.Shutdown(shutdownCtx)
	}()

	cfg := console.Config
	placer := app.NewOrderPlacer(console.API, console.Logger, console.Metrics, cfg.Console.CatalogFetchSize)
	orders := app.NewOrderList(console.API, console.Logger, console.Metrics, cfg.Console.Location, cfg.Console.CatalogFetchSize)

	if _, err := tea.NewProgram(newModel(ctx, placer, orders), tea.WithAltScreen()).Run(); err != nil {
		console.Logger.Error("terminal console failed", "error", err)
		fmt.Fprintf(os.Stderr, "shoptui: %v\n", err)
		os.Exit(1)
	}
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
