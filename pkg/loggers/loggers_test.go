package loggers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

func TestInitialize(t *testing.T) {
	rep := repo.MockRepo(t)
	rep.Config.Log.Module.Ledger = "debug"
	rep.Config.Log.Module.Storage = "unknown"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.Nil(t, Initialize(ctx, rep, true))

	ledgerLogger, ok := Logger(Ledger).(*logrus.Entry)
	require.True(t, ok)
	require.Equal(t, logrus.DebugLevel, ledgerLogger.Logger.GetLevel())
	require.Equal(t, Ledger, ledgerLogger.Data["module"])

	storageLogger := Logger(Storage).(*logrus.Entry)
	require.Equal(t, logrus.InfoLevel, storageLogger.Logger.GetLevel())

	Logger(App).Info("persisted")
	_, err := os.Stat(filepath.Join(rep.RepoRoot, repo.LogsDirName, rep.Config.Log.Filename+".log"))
	require.Nil(t, err)
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("not-a-level"))
}
