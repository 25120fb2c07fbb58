package link

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"net"
	"reflect"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Link sends and receives messages on one connection.
type Link struct {
	conn   net.Conn
	logger *zap.Logger
	send   chan any
	done   chan struct{}
}

func New(conn net.Conn, logger *zap.Logger) *Link {
	return &Link{
		conn:   conn,
		logger: logger,
		send:   make(chan any, 16),
		done:   make(chan struct{}),
	}
}

// Run pumps messages until ctx is done or the connection fails. handle is
// called from the receiving goroutine.
func (l *Link) Run(ctx context.Context, handle func(msg any)) error {
	defer close(l.done)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		l.conn.Close()
		return nil
	})
	g.Go(func() error {
		return l.handleSend(gctx)
	})
	g.Go(func() error {
		return l.handleReceive(handle)
	})

	err := g.Wait()
	if ctx.Err() != nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// Send queues msg. It fails once Run has returned.
func (l *Link) Send(ctx context.Context, msg any) error {
	select {
	case <-l.done:
		return net.ErrClosed
	default:
	}

	select {
	case l.send <- msg:
		return nil
	case <-l.done:
		return net.ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Link) handleSend(ctx context.Context) error {
	enc := gob.NewEncoder(l.conn)

	for {
		select {
		case msg := <-l.send:
			if err := enc.Encode(&msg); err != nil {
				return fmt.Errorf("failed to send %v: %w", reflect.TypeOf(msg), err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

func (l *Link) handleReceive(handle func(msg any)) error {
	dec := gob.NewDecoder(l.conn)

	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
				return io.EOF
			}
			return fmt.Errorf("failed to receive: %w", err)
		}

		switch v.(type) {
		case Snapshot, NewGame, SaveImage:
			handle(v)
		default:
			l.logger.Warn("unknown message received", zap.Stringer("type", reflect.TypeOf(v)))
		}
	}
}
