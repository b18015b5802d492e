package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/config"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/database"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/repositories/s3kv"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/services"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/storage"
	"github.com/dmitrijs2005/vigilkeeper/internal/filex"
	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
	"github.com/dmitrijs2005/vigilkeeper/internal/metrics"
)

type Mode string

const (
	ModeLocked   Mode = "locked"
	ModeUnlocked Mode = "unlocked"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	stores   *database.Stores
	keyring  services.Keyring
	sessions services.SessionManager
	profiles services.ProfileManager
	prefs    *services.Preferences
	userName string
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
	server   *http.Server
}

// NewApp opens storage as configured in c and builds the services on top
// of it. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dataDir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}

	stores, err := database.Open(ctx, database.Options{
		DataDir:     dataDir,
		Backend:     c.GeneralBackend,
		DatabaseDSN: c.DatabaseDSN,
		S3: s3kv.Options{
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
		},
		S3Bucket: c.S3Bucket,
		S3Prefix: c.S3Prefix,
	})
	if err != nil {
		log.Error(ctx, "error opening storage", "error", err)
		return nil, err
	}

	reg := prometheus.NewRegistry()
	store := storage.New(stores.Secure, stores.General,
		storage.WithLogger(log.With("component", "storage")),
		storage.WithRecorder(metrics.NewCollector(reg)),
	)

	a := newApp(c, log, stores, store)
	a.Mode = ModeLocked
	if c.MetricsAddr != "" {
		a.server = &http.Server{
			Addr:              c.MetricsAddr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, stores *database.Stores, store services.TieredStore) *App {
	return &App{
		config:   c,
		log:      log,
		stores:   stores,
		keyring:  services.NewKeyring(stores.Local, stores.Secure, log),
		sessions: services.NewSessionManager(store, log),
		profiles: services.NewProfileManager(stores.General, time.Now, log),
		prefs:    services.NewPreferences(stores.General, log),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		a.log.Info(ctx, "secure storage mode changed", "mode", string(mode))
	}
}

// Run serves metrics (if configured) and blocks in the REPL until the user
// exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	if a.server != nil {
		go func() {
			if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error(ctx, "metrics server stopped", "error", err)
			}
		}()
	}
	a.Root(ctx)
}

// Close stops the metrics server, wipes the secure key and closes storage.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		errs = append(errs, a.server.Shutdown(shutdownCtx))
		cancel()
	}
	a.keyring.Lock()
	errs = append(errs, a.stores.Close())
	return errors.Join(errs...)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// opContext bounds a single storage operation by the configured timeout.
func (a *App) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.OperationTimeout)
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root restores the persisted session, then runs the REPL on stdin.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Vigil agent CLI (type 'help' for commands)")

	opCtx, cancel := a.opContext(ctx)
	if s, ok := a.sessions.Load(opCtx); ok {
		a.userName = s.FullName
	}
	cancel()

	runREPL(ctx, a, a.getStatus, a.reader)
}
