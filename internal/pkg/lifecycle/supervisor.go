package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"farminventory/internal/pkg/logger"
)

type closer struct {
	name     string
	critical bool
	fn       func(context.Context) error
}

// Supervisor é a fronteira de erro do processo: sobe o servidor HTTP, espera
// SIGINT/SIGTERM e encerra os recursos na ordem inversa do registro.
type Supervisor struct {
	server  *http.Server
	log     logger.Logger
	timeout time.Duration
	closers []closer
}

// New cria o Supervisor. timeout limita o Shutdown do servidor e cada closer.
func New(server *http.Server, log logger.Logger, timeout time.Duration) *Supervisor {
	return &Supervisor{server: server, log: log, timeout: timeout}
}

// OnShutdown registra um recurso a ser fechado no encerramento. Falha de um
// recurso crítico faz Run devolver 1.
func (s *Supervisor) OnShutdown(name string, critical bool, fn func(context.Context) error) {
	s.closers = append(s.closers, closer{name: name, critical: critical, fn: fn})
}

// Go roda fn em background; um panic é logado e o processo segue.
func (s *Supervisor) Go(ctx context.Context, name string, fn func(context.Context)) {
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Error("Panic em tarefa de background.", fmt.Errorf("%v", rec), map[string]interface{}{
					"task":  name,
					"stack": string(debug.Stack()),
				})
			}
		}()
		fn(ctx)
	}()
}

// Run bloqueia até um sinal, o cancelamento de ctx ou a queda do listener,
// e devolve o código de saída do processo.
func (s *Supervisor) Run(ctx context.Context) int {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	exitCode := 0

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		s.log.Error("Falha ao abrir o listener HTTP.", err, map[string]interface{}{"addr": s.server.Addr})
		return s.closeAll(1)
	}

	serveErr := make(chan error, 1)
	go func() {
		s.log.Info("Servidor ouvindo.", map[string]interface{}{"addr": ln.Addr().String()})
		serveErr <- s.server.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("Servidor falhou.", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Desligamento do servidor forçado.", err)
	}

	return s.closeAll(exitCode)
}

func (s *Supervisor) closeAll(exitCode int) int {
	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := c.fn(ctx)
		cancel()
		if err != nil {
			s.log.Error("Falha ao encerrar recurso.", err, map[string]interface{}{"resource": c.name, "critical": c.critical})
			if c.critical {
				exitCode = 1
			}
			continue
		}
		s.log.Info("Recurso encerrado.", map[string]interface{}{"resource": c.name})
	}
	if exitCode == 0 {
		s.log.Info("Servidor encerrado com sucesso.", nil)
	}
	return exitCode
}
