package entity

const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderServed    = "served"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// TerminalOrderStatuses release the table and accept no further changes.
var TerminalOrderStatuses = []string{OrderCompleted, OrderCancelled}

const (
	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
	ItemServed    = "served"
)

var ItemStatuses = []string{ItemPending, ItemPreparing, ItemReady, ItemServed}

func ValidItemStatus(s string) bool {
	for _, v := range ItemStatuses {
		if v == s {
			return true
		}
	}
	return false
}
