package sqlwire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tuannm99/tinysql/internal/sql/executor"
)

// SessionFactory returns a fresh executor with its own database.
type SessionFactory func() *executor.Executor

type ServerConfig struct {
	Addr       string
	NewSession SessionFactory
}

// Run listens on sc.Addr until ctx is cancelled.
func Run(ctx context.Context, sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return Serve(ctx, ln, sc.NewSession)
}

// errListenerClosed stops the group when ln is closed from outside.
var errListenerClosed = errors.New("sqlwire: listener closed")

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Serve accepts connections on ln. Every connection is its own session:
// tables created on one connection are invisible to the others.
// Serve returns once ctx is cancelled or ln is closed; either way it closes
// ln and every open connection, and waits for their handlers.
func Serve(ctx context.Context, ln net.Listener, newSession SessionFactory) error {
	if newSession == nil {
		return errors.New("sqlwire: nil session factory")
	}
	slog.Info("sqlwire: listening", "addr", ln.Addr().String())

	g, ctx := errgroup.WithContext(ctx)

	var (
		mu    sync.Mutex
		conns = make(map[net.Conn]struct{})
	)

	g.Go(func() error {
		<-ctx.Done()
		_ = ln.Close()
		mu.Lock()
		for c := range conns {
			_ = c.Close()
		}
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		var backoff time.Duration
		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				if errors.Is(err, net.ErrClosed) {
					return errListenerClosed
				}

				if backoff == 0 {
					backoff = minAcceptBackoff
				} else {
					backoff = min(2*backoff, maxAcceptBackoff)
				}
				slog.Warn("sqlwire: accept", "err", err, "retryIn", backoff)
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(backoff):
				}
				continue
			}
			backoff = 0

			mu.Lock()
			if ctx.Err() != nil {
				// shutdown already swept conns
				mu.Unlock()
				_ = conn.Close()
				return nil
			}
			conns[conn] = struct{}{}
			mu.Unlock()

			g.Go(func() error {
				defer func() {
					mu.Lock()
					delete(conns, conn)
					mu.Unlock()
				}()
				handleConn(ctx, conn, newSession())
				return nil
			})
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errListenerClosed) {
		return err
	}
	return nil
}

func handleConn(ctx context.Context, conn net.Conn, ex *executor.Executor) {
	defer func() { _ = conn.Close() }()

	remote := conn.RemoteAddr().String()
	slog.Debug("sqlwire: session open", "remote", remote)
	defer slog.Debug("sqlwire: session closed", "remote", remote)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("sqlwire: read frame", "remote", remote, "err", err)
			}
			return
		}

		results, err := ex.ExecScript(req.Script)
		resp := ExecuteResponse{ID: req.ID, Results: results}
		if err != nil {
			resp.Error = err.Error()
			var se *executor.StatementError
			if errors.As(err, &se) {
				resp.FailedCommand = se.Command
			}
		}
		if err := WriteFrame(conn, resp); err != nil {
			slog.Debug("sqlwire: write frame", "remote", remote, "err", err)
			return
		}
	}
}
