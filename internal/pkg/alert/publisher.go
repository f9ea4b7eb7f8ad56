package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"farminventory/internal/domain"
	"farminventory/internal/pkg/logger"
)

// Publisher define o contrato para divulgar alertas de estoque baixo.
// O serviço depende só desta interface (Redis em produção, Nop sem REDIS_ADDR).
type Publisher interface {
	PublishLowStock(ctx context.Context, alert domain.LowStockAlert) error
	Close(ctx context.Context) error
}

// RedisPublisher publica alertas num canal Pub/Sub do Redis.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher cria o client e faz um PING de cortesia.
// Redis fora do ar não impede o boot: o go-redis reconecta sozinho.
func NewRedisPublisher(addr, channel string, log logger.Logger) *RedisPublisher {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis indisponível; alertas de estoque baixo serão perdidos até reconectar.", map[string]interface{}{
			"addr":  addr,
			"error": err.Error(),
		})
	} else {
		log.Info("Conexão Redis estabelecida.", map[string]interface{}{"addr": addr, "channel": channel})
	}

	return &RedisPublisher{rdb: rdb, channel: channel}
}

// PublishLowStock serializa o alerta em JSON e publica no canal configurado.
func (p *RedisPublisher) PublishLowStock(ctx context.Context, alert domain.LowStockAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("falha ao serializar alerta: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("falha ao publicar alerta no canal %s: %w", p.channel, err)
	}
	return nil
}

// Close fecha o pool de conexões do Redis.
func (p *RedisPublisher) Close(context.Context) error {
	return p.rdb.Close()
}

// NopPublisher descarta os alertas.
type NopPublisher struct{}

func (NopPublisher) PublishLowStock(context.Context, domain.LowStockAlert) error { return nil }
func (NopPublisher) Close(context.Context) error                                { return nil }

// New escolhe a implementação a partir da configuração.
func New(addr, channel string, log logger.Logger) Publisher {
	if addr == "" {
		log.Info("REDIS_ADDR não definido; alertas de estoque baixo desativados.", nil)
		return NopPublisher{}
	}
	return NewRedisPublisher(addr, channel, log)
}
