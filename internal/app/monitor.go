package app

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

// Monitor exposes the prometheus metrics on /metrics of the monitor port
type Monitor struct {
	rep    *repo.Repo
	logger logrus.FieldLogger
	server *http.Server
}

func NewMonitor(rep *repo.Repo) *Monitor {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return &Monitor{
		rep:    rep,
		logger: loggers.Logger(loggers.App),
		server: &http.Server{Handler: router},
	}
}

func (m *Monitor) Start() error {
	if !m.rep.Config.Monitor.Enable {
		return nil
	}

	addr := fmt.Sprintf(":%d", m.rep.Config.Port.Monitor)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s failed", addr)
	}
	go func() {
		if err := m.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.WithField("err", err).Error("Monitor stopped unexpectedly")
		}
	}()

	m.logger.WithField("port", m.rep.Config.Port.Monitor).Info("Monitor started")
	return nil
}

func (m *Monitor) Stop() error {
	if !m.rep.Config.Monitor.Enable {
		return nil
	}
	return m.server.Shutdown(context.Background())
}

func (m *Monitor) Handler() http.Handler {
	return m.server.Handler
}
