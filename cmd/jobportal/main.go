package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/nemesisgroup/jobportal/internal/browser"
	"github.com/nemesisgroup/jobportal/internal/config"
	"github.com/nemesisgroup/jobportal/internal/router"
	"github.com/nemesisgroup/jobportal/internal/session"
	"github.com/nemesisgroup/jobportal/internal/tui"
	"github.com/nemesisgroup/jobportal/pkg/client"
	"github.com/nemesisgroup/jobportal/pkg/logger"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// A missing .env is normal outside development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "--version", "version", "-v":
			fmt.Println("jobportal " + version)
			return nil
		case "help", "--help", "-h":
			printHelp(os.Stdout)
			return nil
		case "terms", "privacy", "contact":
			return openSite(cfg.SiteURL, "/"+args[0])
		}
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Pretty: cfg.LogPretty})
	defer logger.Close() //nolint:errcheck
	log := logger.Get()

	storage, watcher, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage() //nolint:errcheck

	store := session.NewStore(storage)

	startPath := cfg.StartPath
	if len(args) > 0 {
		switch args[0] {
		case "logout":
			return runLogout(ctx, store, os.Stdout)
		case "status":
			return printStatus(ctx, store, os.Stdout)
		case "open":
			if len(args) < 2 {
				return fmt.Errorf("usage: jobportal open <path>")
			}
			startPath = args[1]
		default:
			return fmt.Errorf("unknown command %q (see jobportal help)", args[0])
		}
	}

	sess := session.NewContext(ctx, store)
	go func() {
		if err := sess.Run(ctx, watcher); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("session watcher stopped")
		}
	}()

	c := client.New(cfg.APIURL, sess.Current().Token)
	app := tui.NewApp(tui.Options{
		Client:         c,
		Session:        sess,
		Router:         router.New(session.NewAdminGuard(store)),
		StartPath:      startPath,
		SiteURL:        cfg.SiteURL,
		RotateInterval: cfg.RotateInterval,
	})
	defer app.Close()

	log.Info().Str("version", version).Str("api", cfg.APIURL).Str("start", startPath).Msg("starting")
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// openStorage picks the session backend: Redis when configured so several
// terminals share one session, otherwise files under cfg.Home.
func openStorage(ctx context.Context, cfg *config.Config) (session.Storage, session.Watcher, func() error, error) {
	if cfg.Redis.Addr != "" {
		rs, err := session.DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, nil, err
		}
		return rs, rs, rs.Close, nil
	}
	fs, err := session.NewFileStorage(cfg.Home)
	if err != nil {
		return nil, nil, nil, err
	}
	return fs, fs, func() error { return nil }, nil
}

func runLogout(ctx context.Context, store *session.Store, w io.Writer) error {
	if !store.Read(ctx).Authenticated() && store.ReadAdminToken(ctx) == "" {
		fmt.Fprintln(w, "Already logged out.") //nolint:errcheck
		return nil
	}
	if err := errors.Join(store.Clear(ctx), store.ClearAdmin(ctx)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(w, "Logged out.") //nolint:errcheck
	return nil
}

func printStatus(ctx context.Context, store *session.Store, w io.Writer) error {
	s := store.Read(ctx)
	if !s.Authenticated() {
		fmt.Fprintln(w, "Not signed in.") //nolint:errcheck
	} else {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", s.User.DisplayName(), s.Role()) //nolint:errcheck
	}
	if session.AdminTokenAllowed(store.ReadAdminToken(ctx)) {
		fmt.Fprintln(w, "Admin console: signed in") //nolint:errcheck
	}
	return nil
}

func sitePage(siteURL, path string) string {
	return strings.TrimRight(siteURL, "/") + router.Normalize(path)
}

func openSite(siteURL, path string) error {
	url := sitePage(siteURL, path)
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}
