package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	drepo "SigScan/internal/domain/repository"
	"SigScan/pkg/logger"

	"github.com/gorilla/websocket"
)

// price staleness cutoff: streamed prices older than this are ignored
const priceMaxAge = time.Minute

// Stream implements a PriceStream backed by the Binance miniTicker
// WebSocket feed. It keeps the last streamed price per symbol so snapshots
// can use a fresher price than the latest closed kline.
type Stream struct {
	websocketURL   string
	symbols        []string
	reconnectDelay time.Duration
	log            *logger.Logger

	mu        sync.RWMutex
	prices    map[string]pricePoint
	connected bool

	conn *websocket.Conn
}

type pricePoint struct {
	price float64
	at    time.Time
}

// NewStream creates a Binance miniTicker price stream.
func NewStream(websocketURL string, symbols []string, reconnectDelay time.Duration, log *logger.Logger) drepo.PriceStream {
	return &Stream{
		websocketURL:   websocketURL,
		symbols:        symbols,
		reconnectDelay: reconnectDelay,
		log:            log,
		prices:         make(map[string]pricePoint),
	}
}

// Start connects and reads ticker frames until ctx is done, reconnecting
// after read failures.
func (s *Stream) Start(ctx context.Context) error {
	for {
		if err := s.connect(ctx); err != nil {
			s.log.Warn("stream connect failed, retrying",
				logger.Error(err),
				logger.Duration("retry_in", s.reconnectDelay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.reconnectDelay):
				continue
			}
		}

		err := s.readLoop(ctx)
		s.setConnected(false)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("stream disconnected, reconnecting",
			logger.Error(err),
			logger.Duration("retry_in", s.reconnectDelay))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

func (s *Stream) connect(ctx context.Context) error {
	streams := make([]string, 0, len(s.symbols))
	for _, sym := range s.symbols {
		streams = append(streams, strings.ToLower(sym)+"@miniTicker")
	}
	u := fmt.Sprintf("%s/stream?streams=%s", s.websocketURL, strings.Join(streams, "/"))

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u, nil)
	if err != nil {
		return fmt.Errorf("binance stream connect: %w", err)
	}
	s.conn = conn
	s.setConnected(true)
	s.log.Info("stream connected", logger.Int("symbols", len(s.symbols)))
	return nil
}

type miniTicker struct {
	Symbol string `json:"s"`
	Close  string `json:"c"`
}

type streamFrame struct {
	Stream string     `json:"stream"`
	Data   miniTicker `json:"data"`
}

func (s *Stream) readLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, b, err := s.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("binance stream read: %w", err)
		}

		var frame streamFrame
		if err := json.Unmarshal(b, &frame); err != nil {
			// ignore non-ticker frames
			continue
		}
		if frame.Data.Symbol == "" {
			continue
		}
		price, err := strconv.ParseFloat(frame.Data.Close, 64)
		if err != nil {
			continue
		}

		s.mu.Lock()
		s.prices[frame.Data.Symbol] = pricePoint{price: price, at: time.Now()}
		s.mu.Unlock()
	}
}

// LastPrice returns the most recent streamed price for symbol, if fresh.
func (s *Stream) LastPrice(symbol string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prices[symbol]
	if !ok || time.Since(p.at) > priceMaxAge {
		return 0, false
	}
	return p.price, true
}

// IsConnected indicates status.
func (s *Stream) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

func (s *Stream) setConnected(v bool) {
	s.mu.Lock()
	s.connected = v
	s.mu.Unlock()
}

// Close closes the WS connection.
func (s *Stream) Close() error {
	s.setConnected(false)
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
