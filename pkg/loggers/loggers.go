package loggers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

const (
	App            = "app"
	API            = "api"
	Executor       = "executor"
	Ledger         = "ledger"
	Storage        = "storage"
	Epoch          = "epoch"
	SystemContract = "system_contract"
)

var w = &LoggerWrapper{
	loggers: map[string]*logrus.Entry{
		App:            newWithModule(App),
		API:            newWithModule(API),
		Executor:       newWithModule(Executor),
		Ledger:         newWithModule(Ledger),
		Storage:        newWithModule(Storage),
		Epoch:          newWithModule(Epoch),
		SystemContract: newWithModule(SystemContract),
	},
}

type LoggerWrapper struct {
	loggers map[string]*logrus.Entry
}

type options struct {
	reportCaller     bool
	enableColor      bool
	disableTimestamp bool
	out              io.Writer
}

func newWithModule(name string) *logrus.Entry {
	return newLogger(name, &options{enableColor: true, out: os.Stderr})
}

func newLogger(name string, opts *options) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(opts.out)
	l.SetReportCaller(opts.reportCaller)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:      opts.enableColor,
		DisableColors:    !opts.enableColor,
		DisableTimestamp: opts.disableTimestamp,
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02T15:04:05.000",
	})
	return l.WithField("module", name)
}

// ParseLevel falls back to info on an unknown level string.
func ParseLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func Initialize(ctx context.Context, rep *repo.Repo, persist bool) error {
	config := rep.Config
	opts := &options{
		reportCaller:     config.Log.ReportCaller,
		enableColor:      config.Log.EnableColor,
		disableTimestamp: config.Log.DisableTimestamp,
		out:              os.Stderr,
	}
	if persist {
		logDir := filepath.Join(rep.RepoRoot, repo.LogsDirName)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("log initialize: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(logDir, config.Log.Filename+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("log initialize: %w", err)
		}
		go func() {
			<-ctx.Done()
			_ = f.Close()
		}()
		opts.out = io.MultiWriter(os.Stderr, f)
		opts.enableColor = false
	}

	levels := map[string]string{
		App:            config.Log.Level,
		API:            config.Log.Module.API,
		Executor:       config.Log.Module.Executor,
		Ledger:         config.Log.Module.Ledger,
		Storage:        config.Log.Module.Storage,
		Epoch:          config.Log.Module.Epoch,
		SystemContract: config.Log.Module.SystemContract,
	}
	m := make(map[string]*logrus.Entry)
	for name, level := range levels {
		m[name] = newLogger(name, opts)
		m[name].Logger.SetLevel(ParseLevel(level))
	}

	w = &LoggerWrapper{loggers: m}
	InitializeEthLog(m[API])
	return nil
}

func Logger(name string) logrus.FieldLogger {
	return w.loggers[name]
}
