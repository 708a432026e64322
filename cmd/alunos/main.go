// alunos is the terminal client for the aluno API.
//
// RUNNING:
//
//	go run ./cmd/alunos --config=config/client.yaml        # interactive form
//	go run ./cmd/alunos --config=config/client.yaml list   # print the roster
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/alunos/internal/config"
	"github.com/aanand-mishra/alunos/internal/gateway"
	"github.com/aanand-mishra/alunos/internal/logger"
	"github.com/aanand-mishra/alunos/internal/notice"
	"github.com/aanand-mishra/alunos/internal/roster"
	"github.com/aanand-mishra/alunos/internal/tui"
)

func main() {
	// MustLoadClient parses the command line, so flag.Arg works below.
	cfg := config.MustLoadClient()

	log, closeLog, err := openLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	client := gateway.New(cfg.BaseURL, gateway.WithLogger(log))

	switch cmd := flag.Arg(0); cmd {
	case "", "form":
		err = runForm(client, log)
	case "list":
		err = runList(client, os.Stdout)
	default:
		err = fmt.Errorf("unknown command %q (want form or list)", cmd)
	}

	if err != nil {
		log.Error("alunos failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runForm(client *gateway.Client, log *slog.Logger) error {
	log.Info("starting form", slog.String("component", "tui"))
	_, err := tea.NewProgram(tui.New(client, log), tea.WithAltScreen()).Run()
	return err
}

// runList prints the roster once and exits.
func runList(client *gateway.Client, w io.Writer) error {
	var cache roster.Cache
	if err := cache.Load(context.Background(), client); err != nil {
		return fmt.Errorf("%s (%w)", notice.LoadFailed, err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tCOURSE")
	for _, s := range cache.Students() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, s.Phone, s.CourseID)
	}
	return tw.Flush()
}

// openLogger writes logs to cfg.LogPath; the terminal belongs to the UI.
func openLogger(cfg *config.ClientConfig) (*slog.Logger, func(), error) {
	if cfg.LogPath == "" {
		return logger.Setup(cfg.Env, io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return logger.Setup(cfg.Env, f), func() { f.Close() }, nil
}
