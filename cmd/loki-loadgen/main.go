// Command loki-loadgen pushes synthetic orders onto the same Redis list
// loki-engine's ingress reader drains, for local load testing without a
// real upstream order gateway.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/lokidex/matching-core/internal/kafkafeed"
)

type wireOrder struct {
	ID        string  `json:"id"`
	Symbol    string  `json:"symbol"`
	OrderType string  `json:"order_type"`
	Side      string  `json:"side"`
	Quantity  string  `json:"quantity"`
	Price     *string `json:"price"`
	Timestamp int64   `json:"timestamp"`
}

func main() {
	var (
		redisAddr = flag.String("redis-addr", "127.0.0.1:6379", "redis host:port")
		redisDB   = flag.Int("redis-db", 0, "redis db index")
		key       = flag.String("key", "orders", "redis list key the ingress reader BRPOPs")
		symbol    = flag.String("symbol", "BTC-USDT", "symbol to generate orders for")
		rate      = flag.Duration("rate", 100*time.Millisecond, "delay between generated orders")
		count     = flag.Int("count", 0, "number of orders to send; 0 means run until interrupted")
		midPrice  = flag.Float64("mid", 60000, "center price orders are generated around")
		mirrorTo  = flag.String("kafka-mirror-topic", "", "if set, also mirror every generated order onto this Kafka topic for independent replay/audit")
		brokers   = flag.String("kafka-brokers", "127.0.0.1:9092", "comma-separated Kafka broker list, used only with -kafka-mirror-topic")
	)
	flag.Parse()

	client := redis.NewClient(&redis.Options{Addr: *redisAddr, DB: *redisDB})
	defer client.Close()

	var mirror *kafkafeed.Producer
	if *mirrorTo != "" {
		mirror = kafkafeed.NewProducer(splitCSV(*brokers), *mirrorTo)
		defer mirror.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sent := 0
	for *count == 0 || sent < *count {
		order := randomOrder(*symbol, *midPrice)
		payload, err := json.Marshal(order)
		if err != nil {
			fmt.Fprintln(os.Stderr, "loki-loadgen: marshal:", err)
			os.Exit(1)
		}
		if err := client.LPush(ctx, *key, payload).Err(); err != nil {
			fmt.Fprintln(os.Stderr, "loki-loadgen: lpush:", err)
			os.Exit(1)
		}
		if mirror != nil {
			if err := mirror.Send(ctx, []byte(order.ID), payload); err != nil {
				fmt.Fprintln(os.Stderr, "loki-loadgen: kafka mirror:", err)
			}
		}
		sent++
		time.Sleep(*rate)
	}
}

func splitCSV(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}

func randomOrder(symbol string, mid float64) wireOrder {
	side := "buy"
	if rand.Intn(2) == 0 {
		side = "sell"
	}

	orderType := "limit"
	switch rand.Intn(10) {
	case 0:
		orderType = "market"
	case 1:
		orderType = "ioc"
	case 2:
		orderType = "fok"
	}

	qty := fmt.Sprintf("%.6f", 0.01+rand.Float64()*2)
	o := wireOrder{
		ID:        uuid.NewString(),
		Symbol:    symbol,
		OrderType: orderType,
		Side:      side,
		Quantity:  qty,
		Timestamp: time.Now().UnixMilli(),
	}

	if orderType != "market" {
		offset := (rand.Float64() - 0.5) * 20
		price := fmt.Sprintf("%.2f", mid+offset)
		o.Price = &price
	}
	return o
}
