package orders

type Status string

const (
	StatusPreparing Status = "preparing"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
	StatusRefund    Status = "refund"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPreparing, StatusShipping, StatusDelivered, StatusRefund:
		return true
	}
	return false
}
