// Package memory implements every persistence port on in-process maps. It
// backs usecase tests and the APP_ENV=dev mode where no database is wired.
package memory

import (
	"sync"

	"github.com/sayanm085/shopnex-api/internal/domain/entity"
)

// Store holds all collections behind one mutex. Transactions are emulated by
// snapshotting the full state and restoring it when the transactional closure
// fails, so partial writes never survive.
type Store struct {
	mu sync.RWMutex

	items     map[string]*entity.Item
	variants  map[string]*entity.StockVariant
	batches   map[string]*entity.Batch
	orders    map[string]*entity.PurchaseOrder
	sales     map[string]*entity.Sale
	customers map[string]*entity.Customer
	dealers   map[string]*entity.Dealer
	users     map[string]*entity.User
	counters  map[string]int64

	// Insertion order, so listings are deterministic.
	itemOrder     []string
	variantOrder  []string
	batchOrder    []string
	orderOrder    []string
	saleOrder     []string
	customerOrder []string
	dealerOrder   []string
}

func NewStore() *Store {
	return &Store{
		items:     make(map[string]*entity.Item),
		variants:  make(map[string]*entity.StockVariant),
		batches:   make(map[string]*entity.Batch),
		orders:    make(map[string]*entity.PurchaseOrder),
		sales:     make(map[string]*entity.Sale),
		customers: make(map[string]*entity.Customer),
		dealers:   make(map[string]*entity.Dealer),
		users:     make(map[string]*entity.User),
		counters:  make(map[string]int64),
	}
}

type snapshot struct {
	items     map[string]*entity.Item
	variants  map[string]*entity.StockVariant
	batches   map[string]*entity.Batch
	orders    map[string]*entity.PurchaseOrder
	sales     map[string]*entity.Sale
	customers map[string]*entity.Customer
	dealers   map[string]*entity.Dealer
	users     map[string]*entity.User
	counters  map[string]int64

	itemOrder     []string
	variantOrder  []string
	batchOrder    []string
	orderOrder    []string
	saleOrder     []string
	customerOrder []string
	dealerOrder   []string
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := snapshot{
		items:     make(map[string]*entity.Item, len(s.items)),
		variants:  make(map[string]*entity.StockVariant, len(s.variants)),
		batches:   make(map[string]*entity.Batch, len(s.batches)),
		orders:    make(map[string]*entity.PurchaseOrder, len(s.orders)),
		sales:     make(map[string]*entity.Sale, len(s.sales)),
		customers: make(map[string]*entity.Customer, len(s.customers)),
		dealers:   make(map[string]*entity.Dealer, len(s.dealers)),
		users:     make(map[string]*entity.User, len(s.users)),
		counters:  make(map[string]int64, len(s.counters)),

		itemOrder:     append([]string(nil), s.itemOrder...),
		variantOrder:  append([]string(nil), s.variantOrder...),
		batchOrder:    append([]string(nil), s.batchOrder...),
		orderOrder:    append([]string(nil), s.orderOrder...),
		saleOrder:     append([]string(nil), s.saleOrder...),
		customerOrder: append([]string(nil), s.customerOrder...),
		dealerOrder:   append([]string(nil), s.dealerOrder...),
	}
	for k, v := range s.items {
		snap.items[k] = cloneItem(v)
	}
	for k, v := range s.variants {
		snap.variants[k] = cloneVariant(v)
	}
	for k, v := range s.batches {
		snap.batches[k] = cloneBatch(v)
	}
	for k, v := range s.orders {
		snap.orders[k] = cloneOrder(v)
	}
	for k, v := range s.sales {
		snap.sales[k] = cloneSale(v)
	}
	for k, v := range s.customers {
		snap.customers[k] = cloneCustomer(v)
	}
	for k, v := range s.dealers {
		snap.dealers[k] = cloneDealer(v)
	}
	for k, v := range s.users {
		u := *v
		snap.users[k] = &u
	}
	for k, v := range s.counters {
		snap.counters[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snap.items
	s.variants = snap.variants
	s.batches = snap.batches
	s.orders = snap.orders
	s.sales = snap.sales
	s.customers = snap.customers
	s.dealers = snap.dealers
	s.users = snap.users
	s.counters = snap.counters
	s.itemOrder = snap.itemOrder
	s.variantOrder = snap.variantOrder
	s.batchOrder = snap.batchOrder
	s.orderOrder = snap.orderOrder
	s.saleOrder = snap.saleOrder
	s.customerOrder = snap.customerOrder
	s.dealerOrder = snap.dealerOrder
}

func cloneItem(v *entity.Item) *entity.Item {
	c := *v
	return &c
}

func cloneVariant(v *entity.StockVariant) *entity.StockVariant {
	c := *v
	return &c
}

func cloneBatch(v *entity.Batch) *entity.Batch {
	c := *v
	if v.ExpiryDate != nil {
		t := *v.ExpiryDate
		c.ExpiryDate = &t
	}
	return &c
}

func cloneOrder(v *entity.PurchaseOrder) *entity.PurchaseOrder {
	c := *v
	c.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
	return &c
}

func cloneSale(v *entity.Sale) *entity.Sale {
	c := *v
	c.Items = append([]entity.SaleItem(nil), v.Items...)
	if v.CompletedAt != nil {
		t := *v.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneCustomer(v *entity.Customer) *entity.Customer {
	c := *v
	if v.LastVisitDate != nil {
		t := *v.LastVisitDate
		c.LastVisitDate = &t
	}
	return &c
}

func cloneDealer(v *entity.Dealer) *entity.Dealer {
	c := *v
	c.SupplyCategories = append([]string(nil), v.SupplyCategories...)
	if v.LastOrderDate != nil {
		t := *v.LastOrderDate
		c.LastOrderDate = &t
	}
	return &c
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
