// Package pb holds the OrderService request/response types described by
// api/proto/order_service.proto. protoc is not run as part of this
// repo's build; these are hand-written structs carried over the wire by
// a JSON grpc codec (see codec.go) rather than protoc-gen-go's binary
// wire format.
package pb

// Side mirrors the proto enum of the same name.
type Side int32

const (
	Side_BUY  Side = 0
	Side_SELL Side = 1
)

// OrderType mirrors the proto enum of the same name.
type OrderType int32

const (
	OrderType_LIMIT  OrderType = 0
	OrderType_MARKET OrderType = 1
	OrderType_IOC    OrderType = 2
	OrderType_FOK    OrderType = 3
)

type PlaceOrderRequest struct {
	Id        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      Side      `json:"side"`
	Type      OrderType `json:"type"`
	Price     string    `json:"price"`
	Quantity  string    `json:"quantity"`
	Timestamp int64     `json:"timestamp"`
}

type Trade struct {
	TradeId       string `json:"trade_id"`
	Symbol        string `json:"symbol"`
	MakerOrderId  string `json:"maker_order_id"`
	TakerOrderId  string `json:"taker_order_id"`
	Price         string `json:"price"`
	Quantity      string `json:"quantity"`
	AggressorSide Side   `json:"aggressor_side"`
	Timestamp     int64  `json:"timestamp"`
}

type PlaceOrderResponse struct {
	Accepted bool     `json:"accepted"`
	Trades   []*Trade `json:"trades"`
}

type CancelOrderRequest struct {
	Symbol string `json:"symbol"`
	Id     string `json:"id"`
}

type CancelOrderResponse struct {
	Found bool `json:"found"`
}

type GetBBORequest struct {
	Symbol string `json:"symbol"`
}

type GetBBOResponse struct {
	Symbol    string  `json:"symbol"`
	Bid       *string `json:"bid,omitempty"`
	Ask       *string `json:"ask,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

type PriceLevel struct {
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

type GetL2SnapshotRequest struct {
	Symbol string `json:"symbol"`
	Depth  int32  `json:"depth"`
}

type GetL2SnapshotResponse struct {
	Symbol    string        `json:"symbol"`
	Bids      []*PriceLevel `json:"bids"`
	Asks      []*PriceLevel `json:"asks"`
	Timestamp int64         `json:"timestamp"`
}
