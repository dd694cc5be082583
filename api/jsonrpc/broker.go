package jsonrpc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gorilla/mux"
	"github.com/juju/ratelimit"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/api/jsonrpc/namespaces/admin"
	"github.com/axiomesh/unbonding-ledger/api/jsonrpc/namespaces/unbonding"
	"github.com/axiomesh/unbonding-ledger/internal/executor"
	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

const (
	UnbondingNamespace = "unbonding"
	AdminNamespace     = "admin"
)

type LedgerBrokerService struct {
	rep        *repo.Repo
	exec       executor.Executor
	logger     logrus.FieldLogger
	rpcServer  *rpc.Server
	httpServer *http.Server
	limiter    *ratelimit.Bucket
}

func NewLedgerBrokerService(rep *repo.Repo, exec executor.Executor) (*LedgerBrokerService, error) {
	logger := loggers.Logger(loggers.API)
	rpcServer := rpc.NewServer()

	apis := []rpc.API{
		{
			Namespace: UnbondingNamespace,
			Service:   unbonding.NewUnbondingAPI(rep, exec, logger),
		},
	}
	if rep.Config.JsonRPC.EnableAdmin {
		apis = append(apis, rpc.API{
			Namespace: AdminNamespace,
			Service:   admin.NewAdminAPI(rep, exec, logger),
		})
	}
	for _, api := range apis {
		if err := rpcServer.RegisterName(api.Namespace, api.Service); err != nil {
			return nil, errors.Wrapf(err, "register %s namespace failed", api.Namespace)
		}
	}

	s := &LedgerBrokerService{
		rep:       rep,
		exec:      exec,
		logger:    logger,
		rpcServer: rpcServer,
	}
	if limiterCfg := rep.Config.JsonRPC.Limiter; limiterCfg.Enable {
		s.limiter = ratelimit.NewBucketWithQuantum(limiterCfg.Interval.ToDuration(), limiterCfg.Capacity, limiterCfg.Quantum)
	}
	s.httpServer = &http.Server{
		Handler: cors.New(cors.Options{
			AllowedOrigins: rep.Config.JsonRPC.CorsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"*"},
		}).Handler(s.Router()),
		ReadTimeout:  rep.Config.JsonRPC.ReadTimeout.ToDuration(),
		WriteTimeout: rep.Config.JsonRPC.WriteTimeout.ToDuration(),
	}
	return s, nil
}

// Router serves json-rpc requests on / and the liveness probe on /health
func (s *LedgerBrokerService) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.rateLimit)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.PathPrefix("/").Handler(s.rpcServer)
	return router
}

func (s *LedgerBrokerService) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && s.limiter.TakeAvailable(1) == 0 {
			limitedRequestCounter.Inc()
			http.Error(w, "request rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *LedgerBrokerService) RPCServer() *rpc.Server {
	return s.rpcServer
}

func (s *LedgerBrokerService) handleHealth(w http.ResponseWriter, _ *http.Request) {
	epochInfo, err := s.exec.CurrentEpochInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"status":"normal","epoch":%d,"version":%d}`, epochInfo.Epoch, s.exec.Version())
}

func (s *LedgerBrokerService) Start() error {
	addr := fmt.Sprintf(":%d", s.rep.Config.Port.JsonRpc)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s failed", addr)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithField("err", err).Error("JSON-RPC service stopped unexpectedly")
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"port":  s.rep.Config.Port.JsonRpc,
		"admin": s.rep.Config.JsonRPC.EnableAdmin,
	}).Info("JSON-RPC service started")
	return nil
}

func (s *LedgerBrokerService) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.rep.Config.JsonRPC.ShutdownTimeout.ToDuration())
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.rpcServer.Stop()
	if err != nil {
		return errors.Wrap(err, "shutdown JSON-RPC service failed")
	}

	s.logger.Info("JSON-RPC service stopped")
	return nil
}
