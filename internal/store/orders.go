package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// OrdersFile is the file Load reads below the data directory.
const OrdersFile = "orders.json"

// OrdersKey is the lookup key for the full order list. A single order is
// found under OrdersKey + "/" + id.
const OrdersKey = "shipping/orders"

type OrderStatus struct {
	OrderID     int    `json:"order_id"`
	OrderDate   string `json:"order_date"`
	OrderStatus string `json:"order_status"`
}

// Orders is an immutable snapshot of order records. It is safe for
// concurrent readers because nothing writes to it after construction.
type Orders struct {
	list []OrderStatus
	byID map[int]OrderStatus
}

func NewOrders(list []OrderStatus) *Orders {
	o := &Orders{
		list: make([]OrderStatus, len(list)),
		byID: make(map[int]OrderStatus, len(list)),
	}
	copy(o.list, list)
	for _, order := range list {
		o.byID[order.OrderID] = order
	}
	return o
}

// Load reads OrdersFile from dir.
func Load(dir string) (*Orders, error) {
	path := filepath.Join(dir, OrdersFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}

	var list []OrderStatus
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return NewOrders(list), nil
}

// Find returns the record stored under key. The returned value is a copy.
func (o *Orders) Find(key string) (any, bool) {
	key = strings.Trim(key, "/")

	if key == OrdersKey {
		out := make([]OrderStatus, len(o.list))
		copy(out, o.list)
		return out, true
	}

	rest, ok := strings.CutPrefix(key, OrdersKey+"/")
	if !ok {
		return nil, false
	}

	id, err := strconv.Atoi(rest)
	if err != nil {
		return nil, false
	}

	order, ok := o.byID[id]
	if !ok {
		return nil, false
	}
	return order, true
}

// Len is the number of orders held.
func (o *Orders) Len() int {
	return len(o.list)
}
