package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/fingergate/internal/client/biometric"
	"github.com/dmitrijs2005/fingergate/internal/client/config"
	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/userdata"
	"github.com/dmitrijs2005/fingergate/internal/client/services"
	"github.com/dmitrijs2005/fingergate/internal/client/storage"
	"github.com/dmitrijs2005/fingergate/internal/cryptox"
	"github.com/dmitrijs2005/fingergate/internal/i18n"
	"github.com/dmitrijs2005/fingergate/internal/logging"
)

const sensorProbeInterval = 5 * time.Second

type prober interface {
	Probe(ctx context.Context) biometric.Availability
}

type App struct {
	config  *config.Config
	auth    services.AuthService
	data    services.UserDataService
	sensor  prober
	tr      *i18n.Translator
	log     logging.Logger
	console *Console
	out     io.Writer
	db      *sql.DB

	session     *models.Session
	sensorState atomic.Int32
}

// NewApp wires an App to the process terminal.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	return newApp(ctx, cfg, os.Stdin, os.Stdout, log)
}

func newApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, error) {
	tr, err := i18n.New(cfg.Language)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewHasher(cfg.PasswordHasher)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "password hasher", "primary", hasher.Name())

	db, repos, err := storage.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "driver", cfg.DatabaseDriver, "err", err)
		return nil, err
	}

	dataRepo, err := newUserDataRepository(ctx, cfg, db, repos)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	console := NewConsole(in)
	adapter := biometric.NewAdapter(newSensor(cfg, console, out, tr), cfg.BiometricTimeout, log)
	sessions := services.NewSessionIssuer()
	creds := services.NewCredentialStore(repos.Accounts(db), hasher)

	a := &App{
		config:  cfg,
		auth:    services.NewAuthService(creds, adapter, sessions, log),
		data:    services.NewUserDataService(dataRepo, sessions, log),
		sensor:  adapter,
		tr:      tr,
		log:     log,
		console: console,
		out:     out,
		db:      db,
	}
	return a, nil
}

func newSensor(cfg *config.Config, console *Console, out io.Writer, tr *i18n.Translator) biometric.Sensor {
	switch cfg.BiometricSensor {
	case config.SensorNone:
		return biometric.UnsupportedSensor{}
	case config.SensorCommand:
		return biometric.NewCommandSensor(cfg.BiometricCommand, out, os.Stderr)
	default:
		return &biometric.PromptSensor{In: console, Out: out, Prompt: tr.T("prompt.touch_sensor") + " "}
	}
}

func newUserDataRepository(ctx context.Context, cfg *config.Config, db *sql.DB, repos storage.RepositoryManager) (userdata.Repository, error) {
	switch cfg.DataBackend {
	case config.BackendSQL:
		return repos.UserData(db), nil
	case config.BackendS3:
		return userdata.NewS3Repository(ctx, userdata.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
	case config.BackendFile, "":
		return userdata.NewFileRepository(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}

// Run probes the sensor, starts the availability watcher and blocks in the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.refreshSensor(ctx)
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartSensorWatcher(watchCtx, sensorProbeInterval)

	runREPL(ctx, a, a.tr, a.status, a.console.ReadLine)
}

// Close ends the current session and releases the database.
func (a *App) Close() error {
	a.endSession()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.Valid()
}

func (a *App) status() string {
	who := "guest"
	if a.isLoggedIn() {
		who = a.session.Username
	}
	return fmt.Sprintf("%s | fingerprint %s", who, a.sensorAvailability())
}

func (a *App) sensorAvailability() biometric.Availability {
	return biometric.Availability(a.sensorState.Load())
}

func (a *App) refreshSensor(ctx context.Context) {
	next := a.sensor.Probe(ctx)
	prev := biometric.Availability(a.sensorState.Swap(int32(next)))
	if prev != next {
		a.log.Info(ctx, "fingerprint sensor", "availability", next)
	}
}

// StartSensorWatcher re-probes the sensor every interval until ctx is done.
func (a *App) StartSensorWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.refreshSensor(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// fail reports err to the user in their language and returns it.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.log.Debug(ctx, "command failed", "op", op, "err", err)
	a.println(a.tr.Error(err))
	return err
}
