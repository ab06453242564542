package orderbook

// Order is the record kept by a Book. Every field but Note feeds an index:
//
//	ID        hashed unique
//	Ref       hashed unique
//	Timestamp ordered unique
//	Trader    hashed non unique
//	Price     ordered non unique
type Order struct {
	ID        uint32 `json:"order_id"`
	Ref       string `json:"ref"`
	Timestamp uint64 `json:"timestamp"`
	Trader    string `json:"trader_name"`
	Price     int64  `json:"price"`
	Note      string `json:"note"`
}

const (
	IndexOrderID    = "order_id"
	IndexRef        = "ref"
	IndexTimestamp  = "timestamp"
	IndexTraderName = "trader_name"
	IndexPrice      = "price"
)
