// Package messaging publica eventos de dominio (matches) sobre NATS.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"swapwise/internal/domain"
)

// SubjectMatchCreated se publica cuando dos usuarios se dan like mutuo.
const SubjectMatchCreated = "match.created"

// MatchCreatedEvent es el payload de SubjectMatchCreated.
type MatchCreatedEvent struct {
	MatchID   string    `json:"match_id"`
	UserA     string    `json:"user_a"`
	UserB     string    `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

type natsPublisher interface {
	Publish(subject string, data []byte) error
}

// NATSConfig agrupa las opciones de conexion.
type NATSConfig struct {
	URL           string
	Name          string
	ReconnectWait time.Duration
	MaxReconnects int // -1 para reintentar siempre
}

func DefaultNATSConfig(url string) NATSConfig {
	return NATSConfig{
		URL:           url,
		Name:          "swapwise-api",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1,
	}
}

// NATSClient envuelve la conexion y publica eventos de match.
type NATSClient struct {
	conn   *nats.Conn
	pub    natsPublisher
	logger *zap.Logger
}

// NewNATSClient conecta a NATS; falla si la conexion inicial no se establece.
func NewNATSClient(cfg NATSConfig, logger *zap.Logger) (*NATSClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []nats.Option{
		nats.Name(cfg.Name),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("nats connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	logger.Info("nats connected", zap.String("url", nc.ConnectedUrl()))

	return &NATSClient{conn: nc, pub: nc, logger: logger}, nil
}

// PublishMatch publica un MatchCreatedEvent.
func (c *NATSClient) PublishMatch(_ context.Context, match domain.Match) error {
	data, err := json.Marshal(MatchCreatedEvent{
		MatchID:   match.ID,
		UserA:     match.UserA,
		UserB:     match.UserB,
		CreatedAt: match.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal match event: %w", err)
	}
	if err := c.pub.Publish(SubjectMatchCreated, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", SubjectMatchCreated, err)
	}
	return nil
}

// Close drena y cierra la conexion.
func (c *NATSClient) Close() {
	if c == nil || c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.logger.Warn("nats drain failed", zap.Error(err))
		c.conn.Close()
	}
}

// NoopPublisher descarta eventos cuando NATS no esta configurado.
type NoopPublisher struct{}

func (NoopPublisher) PublishMatch(context.Context, domain.Match) error { return nil }
