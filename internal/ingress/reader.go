package ingress

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lokidex/matching-core/internal/orderbook"
)

// Reader pulls encoded orders off a single Redis list with BRPOP and
// decodes each one, per spec.md §6's ingress transport.
type Reader struct {
	client  *redis.Client
	key     string
	decoder *Decoder
	log     *zap.Logger
}

func NewReader(client *redis.Client, key string, decoder *Decoder, log *zap.Logger) *Reader {
	return &Reader{client: client, key: key, decoder: decoder, log: log}
}

// Run blocks, repeatedly BRPOPing r.key and invoking handle for each
// successfully decoded order, until ctx is cancelled. Malformed payloads
// are logged and skipped, never passed to handle.
func (r *Reader) Run(ctx context.Context, handle func(*orderbook.Order)) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		res, err := r.client.BRPop(ctx, 1*time.Second, r.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			return err
		}

		// res is [key, value]; BRPop on a single key always returns exactly that pair.
		payload := []byte(res[1])
		order, derr := r.decoder.Decode(payload)
		if derr != nil {
			r.log.Warn("dropping malformed ingress payload", zap.Error(derr))
			continue
		}
		handle(order)
	}
}
