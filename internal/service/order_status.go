package service

import "github.com/solemart/solemart/internal/constants"

// allowedTransitions 订单状态流转表。
// pending -> processing -> shipping -> delivered，非终态均可取消。
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipping:  true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipping: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
}

func isTransitionAllowed(current, target string) bool {
	if current == target {
		return true
	}
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return nexts[target]
}

func isKnownOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusProcessing,
		constants.OrderStatusShipping,
		constants.OrderStatusDelivered,
		constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}
