package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hyprshy/hyprshy/internal/bar"
	"github.com/hyprshy/hyprshy/internal/config"
	"github.com/hyprshy/hyprshy/internal/daemon"
	"github.com/hyprshy/hyprshy/internal/ipc"
	"github.com/hyprshy/hyprshy/internal/platform"
)

const version = "0.3.0"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: hyprshy daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "show":
		os.Exit(runSetVisible(os.Args[2:], "show", true))
	case "hide":
		os.Exit(runSetVisible(os.Args[2:], "hide", false))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "version":
		fmt.Printf("hyprshy %s\n", version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: hyprshy <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the hyprshy daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  show                Reveal the bar now")
	fmt.Fprintln(w, "  hide                Hide the bar now")
	fmt.Fprintln(w, "  monitors            List monitors seen by the daemon")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  version             Print version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'hyprshy <command> --help' for command-specific options.")
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (bar: %s, poll: %dms, thresholds: %d/%dpx)",
		cfg.Bar.ProcessName, cfg.PollIntervalMs, cfg.RevealThresholdPx, cfg.HideThresholdPx)

	backend, err := platform.New(platform.Kind(cfg.Backend))
	if err != nil {
		log.Fatalf("Failed to connect to compositor: %v", err)
	}
	defer backend.Close()
	log.Printf("Using %s backend", backend.Name())

	showSig, err := cfg.Bar.ShowSignalNum()
	if err != nil {
		log.Fatalf("Invalid show signal: %v", err)
	}
	hideSig, err := cfg.Bar.HideSignalNum()
	if err != nil {
		log.Fatalf("Invalid hide signal: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	driver := bar.NewDriver(bar.DriverConfig{
		Attempts:      cfg.Bar.SignalAttempts,
		RetryDelay:    time.Duration(cfg.Bar.RetryDelayMs) * time.Millisecond,
		CooldownDelay: time.Duration(cfg.Bar.CooldownDelayMs) * time.Millisecond,
		SettleDelay:   time.Duration(cfg.Bar.SettleDelayMs) * time.Millisecond,
		Logger:        logger,
	}, bar.NewProcessSignaller(cfg.Bar.ProcessName, showSig, hideSig))

	queue := daemon.NewEventQueue()
	defer queue.Close()

	// Initial authoritative window query; on failure assume an empty desktop
	// and let the first notification correct it.
	windowsOpen := false
	if count, err := backend.OpenWindows(); err != nil {
		log.Printf("Warning: initial window query failed: %v", err)
	} else {
		windowsOpen = count > 0
	}

	reconciler := daemon.NewReconciler(queue.Pop(), driver, windowsOpen, logger)
	reconciler.Prime()

	cursorWatcher := daemon.NewCursorWatcher(daemon.CursorWatcherConfig{
		PollInterval:   cfg.PollInterval(),
		EnterThreshold: cfg.RevealThresholdPx,
		ExitThreshold:  cfg.HideThresholdPx,
		Logger:         logger,
	}, backend, queue.Push())

	activityWatcher := daemon.NewActivityWatcher(backend, queue.Push(), logger)

	server, err := ipc.NewServer(backend, reconciler, driver)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer server.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cursorWatcher.Run(ctx)
	go activityWatcher.Run(ctx)

	log.Println("hyprshy daemon started")
	reconciler.Run(ctx)
	log.Println("Shutting down")
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hyprshy status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running:   %v\n", status.DaemonRunning)
	fmt.Printf("backend:          %s\n", status.Backend)
	fmt.Printf("cursor_at_top:    %v\n", status.CursorAtTop)
	fmt.Printf("windows_open:     %v\n", status.WindowsOpen)
	fmt.Printf("desired_visible:  %v\n", status.DesiredVisible)
	fmt.Printf("believed_visible: %v\n", status.BelievedVisible)
	fmt.Printf("uptime_seconds:   %d\n", status.UptimeSeconds)
	return 0
}

func runSetVisible(args []string, name string, visible bool) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: hyprshy %s\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintf(os.Stderr, "Ask the daemon to %s the bar.\n", name)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().SetVisible(visible); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: hyprshy monitors")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	monitors, err := ipc.NewClient().GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range monitors.Monitors {
		fmt.Printf("%d: %s %dx%d at %d,%d\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: hyprshy config <validate|print>")
		return 2
	}

	switch args[0] {
	case "validate":
		if _, err := config.Load(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("configuration is valid")
		return 0
	case "print":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := cfg.Print(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: hyprshy config <validate|print>")
		return 2
	}
}
