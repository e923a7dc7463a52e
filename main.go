package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"

	"github.com/dtkav/redditviz/internal/config"
	"github.com/dtkav/redditviz/internal/dataset"
	"github.com/dtkav/redditviz/internal/resize"
	"github.com/dtkav/redditviz/internal/selection"
	"github.com/dtkav/redditviz/internal/server"
	"github.com/dtkav/redditviz/internal/viewport"
)

func main() {
	configFlag := flag.String("config", "", "Path to the YAML config file (default $REDDITVIZ_CONFIG or ./config.yaml)")
	dataFlag := flag.String("data", "", "CSV file of posts; overrides data_path")
	addrFlag := flag.String("addr", "", "Listen address for -serve; overrides listen_addr")
	subFlag := flag.String("subreddit", "", "Subreddit selected at start; overrides default_subreddit")
	serveFlag := flag.Bool("serve", false, "Serve the web dashboard instead of the terminal UI")
	exportFlag := flag.String("export", "", "Write a static HTML dashboard to this path and exit")
	widthFlag := flag.Float64("width", viewport.Default.Width, "Viewport width for -export")
	heightFlag := flag.Float64("height", viewport.Default.Height, "Viewport height for -export")
	flag.Parse()

	if err := config.LoadEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	path := *configFlag
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *dataFlag != "" {
		cfg.DataPath = *dataFlag
	}
	if *addrFlag != "" {
		cfg.ListenAddr = *addrFlag
	}
	if *subFlag != "" {
		cfg.DefaultSubreddit = *subFlag
	}

	tui := !*serveFlag && *exportFlag == ""
	closeLog, err := setupLogging(cfg, tui)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	data, err := dataset.LoadFile(cfg.DataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded", "path", cfg.DataPath, "posts", data.Len(), "subreddits", len(data.Subreddits()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case *exportFlag != "":
		err = server.NewDashboard(data, dashboardOptions(cfg)...).
			Export(ctx, *exportFlag, viewport.Viewport{Width: *widthFlag, Height: *heightFlag})
	case *serveFlag:
		err = serve(ctx, cfg, data)
	default:
		err = runTUI(ctx, cfg, data)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging installs a JSON slog default. The terminal UI owns stdout,
// so in that mode logs go to the configured file.
func setupLogging(cfg *config.Config, tui bool) (func(), error) {
	var w io.Writer = os.Stdout
	closer := func() {}
	if tui {
		if cfg.LogFile == "" {
			w = io.Discard
		} else {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return nil, fmt.Errorf("open log file: %w", err)
			}
			w = f
			closer = func() { f.Close() }
		}
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	return closer, nil
}

func dashboardOptions(cfg *config.Config) []server.Option {
	return []server.Option{
		server.WithDataURL(cfg.DataURL),
		server.WithDebounce(cfg.DebounceMS),
		server.WithDefaultSubreddit(cfg.DefaultSubreddit),
		server.WithLogger(slog.Default()),
	}
}

func serve(ctx context.Context, cfg *config.Config, data *dataset.Dataset) error {
	gin.SetMode(gin.ReleaseMode)
	board := server.NewDashboard(data, dashboardOptions(cfg)...)
	r := server.NewRouter(server.NewHandler(board, cfg.DataPath), cfg.AllowedOrigins)
	return server.Run(ctx, cfg.ListenAddr, r)
}

func runTUI(ctx context.Context, cfg *config.Config, data *dataset.Dataset) error {
	surface := &termSurface{}
	ctrl := selection.New(data, surface,
		selection.WithViewport(viewport.FromTerminal(80, 24)),
		selection.WithLogger(slog.Default()))
	resizer := resize.New(
		resize.WithDelay(cfg.Debounce()),
		resize.WithLogger(slog.Default()))
	defer resizer.Stop()

	m := newModel(ctx, data, ctrl, surface, resizer, cfg.DefaultSubreddit)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// The rebuild runs on the timer goroutine; hand it back to the update loop.
	resizer.Register("bubble-grid", resize.PanelFunc{
		IsMounted: ctrl.Mounted,
		Build: func(_ context.Context, v viewport.Viewport) error {
			p.Send(relayoutMsg{viewport: v})
			return nil
		},
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}
