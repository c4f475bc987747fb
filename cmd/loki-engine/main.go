// Command loki-engine runs the matching core as a long-running process:
// a Redis-fed ingress reader dispatches decoded orders onto per-symbol
// shard goroutines, each owning one matching.Engine exclusively; trades
// and market-data projections are durably queued for Kafka, and a gRPC
// surface mirrors the same operations synchronously for operators.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/lokidex/matching-core/internal/api/pb"
	"github.com/lokidex/matching-core/internal/auditlog"
	"github.com/lokidex/matching-core/internal/broadcaster"
	"github.com/lokidex/matching-core/internal/config"
	"github.com/lokidex/matching-core/internal/egress"
	"github.com/lokidex/matching-core/internal/grpcserver"
	"github.com/lokidex/matching-core/internal/ingress"
	"github.com/lokidex/matching-core/internal/instrument"
	"github.com/lokidex/matching-core/internal/logging"
	"github.com/lokidex/matching-core/internal/marketdata"
	"github.com/lokidex/matching-core/internal/marketdatafeed"
	"github.com/lokidex/matching-core/internal/matching"
	"github.com/lokidex/matching-core/internal/memory"
	"github.com/lokidex/matching-core/internal/metrics"
	"github.com/lokidex/matching-core/internal/orderbook"
	"github.com/lokidex/matching-core/internal/outbox"
	"github.com/lokidex/matching-core/internal/sequence"
)

// reclaimRingSize is the retire ring's slot count per shard; it must be a
// power of two and comfortably larger than the number of orders that can
// go from resting to retired between two Advance calls.
const reclaimRingSize = 1024

// shard owns one symbol's Engine exclusively; orders for that symbol are
// serialized onto in, enforcing the single-writer rule per symbol.
type shard struct {
	symbol    string
	in        chan *orderbook.Order
	engine    *matching.Engine
	auditSeq  *sequence.Sequencer
	reclaimer *memory.OrderReclaimer
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "loki-engine:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	registry := instrument.Default()

	auditLog, err := auditlog.Open(auditlog.Config{Dir: cfg.AuditLogDir, SegmentSize: cfg.AuditSegmentSize})
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer auditLog.Close()

	store, err := outbox.Open(cfg.OutboxDir)
	if err != nil {
		return fmt.Errorf("open outbox: %w", err)
	}
	defer store.Close()

	bc, err := broadcaster.New(store, cfg.KafkaBrokers, log)
	if err != nil {
		return fmt.Errorf("start broadcaster: %w", err)
	}
	defer bc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bc.Start(ctx)

	publisher := egress.NewPublisher(store, registry)
	feed := marketdatafeed.New(registry, log)

	promReg := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(promReg)

	shards := make(map[string]*shard)
	for _, sym := range []string{"BTC-USDT", "BTC-USD", "ETH-USDT"} {
		reclaimer := memory.NewOrderReclaimer(reclaimRingSize)
		sh := &shard{
			symbol:    sym,
			in:        make(chan *orderbook.Order, 1024),
			engine:    matching.New().WithSink(publisher).WithReclaimer(reclaimer),
			auditSeq:  sequence.New(0),
			reclaimer: reclaimer,
		}
		shards[sym] = sh
		go runShard(ctx, sh, auditLog, publisher, feed, collectors, log)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		DB:   cfg.RedisDB,
	})
	defer redisClient.Close()

	decoder := ingress.NewDecoder(registry)
	reader := ingress.NewReader(redisClient, cfg.RedisIngressKey, decoder, log)

	ingressErrs := make(chan error, 1)
	go func() {
		ingressErrs <- reader.Run(ctx, func(o *orderbook.Order) {
			sh, ok := shards[o.Symbol]
			if !ok {
				log.Warn("dropping order for unknown shard", zap.String("symbol", o.Symbol))
				return
			}
			sh.in <- o
		})
	}()

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	grpcSrv := grpc.NewServer()
	engineFor := func(symbol string) (*matching.Engine, bool) {
		sh, ok := shards[symbol]
		if !ok {
			return nil, false
		}
		return sh.engine, true
	}
	pb.RegisterOrderServiceServer(grpcSrv, grpcserver.NewServer(engineFor, registry, log, nowMillis))
	go func() {
		if err := grpcSrv.Serve(grpcListener); err != nil {
			log.Warn("grpc server stopped", zap.Error(err))
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/ws/bbo", feed.ServeBBO)
	mux.HandleFunc("/ws/l2", feed.ServeL2)
	httpSrv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.MetricsPort), Handler: mux}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()

	log.Info("loki-engine started",
		zap.Int("grpc_port", cfg.GRPCPort), zap.Int("metrics_port", cfg.MetricsPort))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-ingressErrs:
		if err != nil {
			return fmt.Errorf("ingress reader stopped: %w", err)
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	grpcSrv.GracefulStop()
	_ = httpSrv.Shutdown(shutdownCtx)
	return nil
}

// runShard is the single goroutine that ever touches sh.engine: it
// drains sh.in, applies each order, audits it, and republishes the
// book's BBO/L2 projection after every mutation.
//
// Every order entering the engine is acquired from sh.reclaimer rather
// than allocated fresh; once ProcessOrder returns, an order that isn't
// left resting on a Limit book is retired back to the pool. Advance then
// drains whatever retired nodes are now safe to reuse, given the
// engine's own snapshot-reader epoch — the gRPC GetBBO/GetL2Snapshot
// path brackets its book walks with EnterSnapshot/ExitSnapshot against
// that same epoch.
func runShard(ctx context.Context, sh *shard, auditLog *auditlog.Log, publisher *egress.Publisher, feed *marketdatafeed.Feed, collectors *metrics.Collectors, log *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case decoded := <-sh.in:
			o := sh.reclaimer.Acquire(decoded.ID, decoded.Symbol, decoded.Side, decoded.Type, decoded.Price, decoded.Qty, decoded.Timestamp)

			if err := auditLog.Append(auditlog.NewOrderAccepted(sh.auditSeq.Next(), o)); err != nil {
				log.Warn("audit log append failed", zap.Error(err))
			}

			start := time.Now()
			trades := sh.engine.ProcessOrder(o)
			collectors.MatchLatency.WithLabelValues(sh.symbol).Observe(time.Since(start).Seconds())
			collectors.OrdersProcessed.WithLabelValues(sh.symbol, o.Type.String()).Inc()
			for _, tr := range trades {
				if err := auditLog.Append(auditlog.NewTrade(sh.auditSeq.Next(), tr)); err != nil {
					log.Warn("audit log append failed", zap.Error(err))
				}
			}
			if len(trades) > 0 {
				var volume int64
				for _, tr := range trades {
					volume += tr.Qty
				}
				collectors.TradesEmitted.WithLabelValues(sh.symbol).Add(float64(len(trades)))
				collectors.TradeVolume.WithLabelValues(sh.symbol).Add(float64(volume))
			}

			stillResting := o.Remaining > 0 && o.Type == orderbook.Limit
			if !stillResting {
				sh.reclaimer.Retire(o)
			}
			sh.reclaimer.Advance(sh.engine.ReaderEpoch())

			ts := nowMillis()
			book := sh.engine.GetBook(sh.symbol)
			collectors.BookDepth.WithLabelValues(sh.symbol, orderbook.Buy.String()).Set(float64(book.RestingCount(orderbook.Buy)))
			collectors.BookDepth.WithLabelValues(sh.symbol, orderbook.Sell.String()).Set(float64(book.RestingCount(orderbook.Sell)))

			bbo := marketdata.BuildBBO(book, ts)
			l2 := marketdata.BuildL2(book, 10, ts)

			feed.PublishBBO(bbo)
			feed.PublishL2(l2)
			if err := publisher.PublishBBO(bbo); err != nil {
				log.Warn("outbox publish bbo failed", zap.Error(err))
			}
			if err := publisher.PublishL2(l2); err != nil {
				log.Warn("outbox publish l2 failed", zap.Error(err))
			}
		}
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
