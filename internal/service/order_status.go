package service

import (
	"strings"

	"github.com/petshop-next/internal/constants"
)

// orderStatusTransitions 合法的订单状态流转
// delivered / canceled 为终态。
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending:   {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped:   {constants.OrderStatusDelivered, constants.OrderStatusCanceled},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCanceled:  {},
}

// IsOrderStatusValid 判断状态值是否合法
func IsOrderStatusValid(status string) bool {
	_, ok := orderStatusTransitions[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// CanTransitionOrderStatus 判断状态流转是否允许
func CanTransitionOrderStatus(from, to string) bool {
	targets, ok := orderStatusTransitions[strings.ToLower(strings.TrimSpace(from))]
	if !ok {
		return false
	}
	normalized := strings.ToLower(strings.TrimSpace(to))
	for _, target := range targets {
		if target == normalized {
			return true
		}
	}
	return false
}
