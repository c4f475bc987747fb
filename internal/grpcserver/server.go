// Package grpcserver adapts the matching engine to the OrderService
// gRPC contract, for operators and integration tests that want a
// synchronous request/response path instead of going through
// Redis/Kafka.
package grpcserver

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lokidex/matching-core/internal/api/pb"
	"github.com/lokidex/matching-core/internal/instrument"
	"github.com/lokidex/matching-core/internal/marketdata"
	"github.com/lokidex/matching-core/internal/matching"
	"github.com/lokidex/matching-core/internal/orderbook"
)

const defaultL2Depth = 10

// EngineFor resolves the Engine that owns a given symbol's book. In a
// sharded deployment this is the same lookup the ingress dispatcher uses
// to route an order to its shard channel; the gRPC path calls straight
// through instead of going via a channel, so it must not run
// concurrently with that symbol's shard goroutine.
type EngineFor func(symbol string) (*matching.Engine, bool)

// Server implements pb.OrderServiceServer against whichever Engine
// EngineFor resolves for a request's symbol.
type Server struct {
	pb.UnimplementedOrderServiceServer
	engineFor EngineFor
	registry  *instrument.Registry
	log       *zap.Logger
	now       func() int64
}

func NewServer(engineFor EngineFor, registry *instrument.Registry, log *zap.Logger, now func() int64) *Server {
	return &Server{engineFor: engineFor, registry: registry, log: log, now: now}
}

// Single wraps one shared Engine (every symbol routed through it) as an
// EngineFor, for single-process deployments that don't shard by symbol.
func Single(engine *matching.Engine) EngineFor {
	return func(string) (*matching.Engine, bool) { return engine, true }
}

func (s *Server) PlaceOrder(ctx context.Context, req *pb.PlaceOrderRequest) (*pb.PlaceOrderResponse, error) {
	inst, ok := s.registry.Get(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: unknown symbol %q", req.Symbol)
	}
	engine, ok := s.engineFor(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: no shard for symbol %q", req.Symbol)
	}

	side, err := toSide(req.Side)
	if err != nil {
		return nil, err
	}
	typ, err := toType(req.Type)
	if err != nil {
		return nil, err
	}

	qty, err := inst.ScaleQuantity(req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("grpcserver: bad quantity: %w", err)
	}

	var price int64
	if typ != orderbook.Market {
		price, err = inst.ScalePrice(req.Price)
		if err != nil {
			return nil, fmt.Errorf("grpcserver: bad price: %w", err)
		}
	}

	ts := req.Timestamp
	if ts == 0 {
		ts = s.now()
	}
	order := orderbook.NewOrder(req.Id, req.Symbol, side, typ, price, qty, ts)

	trades := engine.ProcessOrder(order)
	s.log.Info("grpc place order",
		zap.String("id", req.Id), zap.String("symbol", req.Symbol), zap.Int("trades", len(trades)))

	out := &pb.PlaceOrderResponse{Accepted: true, Trades: make([]*pb.Trade, 0, len(trades))}
	for _, tr := range trades {
		out.Trades = append(out.Trades, &pb.Trade{
			TradeId:       tr.TradeID,
			Symbol:        tr.Symbol,
			MakerOrderId:  tr.MakerOrderID,
			TakerOrderId:  tr.TakerOrderID,
			Price:         inst.UnscalePrice(tr.Price),
			Quantity:      inst.UnscaleQuantity(tr.Qty),
			AggressorSide: fromOrderbookSide(tr.Aggressor),
			Timestamp:     tr.Timestamp,
		})
	}
	return out, nil
}

func (s *Server) CancelOrder(ctx context.Context, req *pb.CancelOrderRequest) (*pb.CancelOrderResponse, error) {
	engine, ok := s.engineFor(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: no shard for symbol %q", req.Symbol)
	}
	found := engine.CancelOrder(req.Symbol, req.Id)
	s.log.Info("grpc cancel order", zap.String("id", req.Id), zap.String("symbol", req.Symbol), zap.Bool("found", found))
	return &pb.CancelOrderResponse{Found: found}, nil
}

func (s *Server) GetBBO(ctx context.Context, req *pb.GetBBORequest) (*pb.GetBBOResponse, error) {
	inst, ok := s.registry.Get(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: unknown symbol %q", req.Symbol)
	}
	engine, ok := s.engineFor(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: no shard for symbol %q", req.Symbol)
	}
	engine.EnterSnapshot()
	defer engine.ExitSnapshot()
	book := engine.GetBook(req.Symbol)
	bbo := marketdata.BuildBBO(book, s.now())

	out := &pb.GetBBOResponse{Symbol: req.Symbol, Timestamp: bbo.Timestamp}
	if bbo.Bid != nil {
		v := inst.UnscalePrice(*bbo.Bid)
		out.Bid = &v
	}
	if bbo.Ask != nil {
		v := inst.UnscalePrice(*bbo.Ask)
		out.Ask = &v
	}
	return out, nil
}

func (s *Server) GetL2Snapshot(ctx context.Context, req *pb.GetL2SnapshotRequest) (*pb.GetL2SnapshotResponse, error) {
	inst, ok := s.registry.Get(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: unknown symbol %q", req.Symbol)
	}
	engine, ok := s.engineFor(req.Symbol)
	if !ok {
		return nil, fmt.Errorf("grpcserver: no shard for symbol %q", req.Symbol)
	}
	depth := int(req.Depth)
	if depth <= 0 {
		depth = defaultL2Depth
	}
	engine.EnterSnapshot()
	defer engine.ExitSnapshot()
	book := engine.GetBook(req.Symbol)
	snap := marketdata.BuildL2(book, depth, s.now())

	out := &pb.GetL2SnapshotResponse{Symbol: req.Symbol, Timestamp: snap.Timestamp}
	for _, l := range snap.Bids {
		out.Bids = append(out.Bids, &pb.PriceLevel{Price: inst.UnscalePrice(l.Price), Quantity: inst.UnscaleQuantity(l.Qty)})
	}
	for _, l := range snap.Asks {
		out.Asks = append(out.Asks, &pb.PriceLevel{Price: inst.UnscalePrice(l.Price), Quantity: inst.UnscaleQuantity(l.Qty)})
	}
	return out, nil
}

func toSide(s pb.Side) (orderbook.Side, error) {
	switch s {
	case pb.Side_BUY:
		return orderbook.Buy, nil
	case pb.Side_SELL:
		return orderbook.Sell, nil
	default:
		return 0, fmt.Errorf("grpcserver: unknown side %d", s)
	}
}

func toType(t pb.OrderType) (orderbook.Type, error) {
	switch t {
	case pb.OrderType_LIMIT:
		return orderbook.Limit, nil
	case pb.OrderType_MARKET:
		return orderbook.Market, nil
	case pb.OrderType_IOC:
		return orderbook.IOC, nil
	case pb.OrderType_FOK:
		return orderbook.FOK, nil
	default:
		return 0, fmt.Errorf("grpcserver: unknown order type %d", t)
	}
}

func fromOrderbookSide(s orderbook.Side) pb.Side {
	if s == orderbook.Sell {
		return pb.Side_SELL
	}
	return pb.Side_BUY
}
