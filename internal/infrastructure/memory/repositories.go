package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sayanm085/shopnex-api/internal/domain"
	"github.com/sayanm085/shopnex-api/internal/domain/entity"
	"github.com/sayanm085/shopnex-api/internal/domain/repository"
)

func (s *Store) Items() repository.ItemRepository                   { return itemRepo{s} }
func (s *Store) Variants() repository.VariantRepository             { return variantRepo{s} }
func (s *Store) Batches() repository.BatchRepository                { return batchRepo{s} }
func (s *Store) PurchaseOrders() repository.PurchaseOrderRepository { return orderRepo{s} }
func (s *Store) Sales() repository.SaleRepository                   { return saleRepo{s} }
func (s *Store) Customers() repository.CustomerRepository           { return customerRepo{s} }
func (s *Store) Dealers() repository.DealerRepository               { return dealerRepo{s} }
func (s *Store) Users() repository.UserRepository                   { return userRepo{s} }
func (s *Store) Counters() repository.CounterRepository             { return counterRepo{s} }

type itemRepo struct{ s *Store }

func (r itemRepo) Create(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.Barcode != "" {
		for _, existing := range r.s.items {
			if existing.Barcode == item.Barcode {
				return fmt.Errorf("%w: item barcode %s", domain.ErrConflict, item.Barcode)
			}
		}
	}
	r.s.items[item.ID] = cloneItem(item)
	r.s.itemOrder = append(r.s.itemOrder, item.ID)
	return nil
}

func (r itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if item, ok := r.s.items[id]; ok {
		return cloneItem(item), nil
	}
	return nil, nil
}

func (r itemRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, item := range r.s.items {
		if item.Barcode == barcode {
			return cloneItem(item), nil
		}
	}
	return nil, nil
}

func (r itemRepo) Update(_ context.Context, item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, item.ID)
	}
	r.s.items[item.ID] = cloneItem(item)
	return nil
}

func (r itemRepo) List(_ context.Context, nameFilter string, limit, offset int) ([]*entity.Item, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Item
	for _, id := range r.s.itemOrder {
		item, ok := r.s.items[id]
		if !ok {
			continue
		}
		if nameFilter != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(nameFilter)) {
			continue
		}
		all = append(all, cloneItem(item))
	}
	return page(all, limit, offset), len(all), nil
}

func (r itemRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return fmt.Errorf("%w: item %s", domain.ErrNotFound, id)
	}
	delete(r.s.items, id)
	return nil
}

type variantRepo struct{ s *Store }

func (r variantRepo) Create(_ context.Context, v *entity.StockVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.variants {
		if existing.Barcode == v.Barcode {
			return fmt.Errorf("%w: variant barcode %s", domain.ErrConflict, v.Barcode)
		}
	}
	r.s.variants[v.ID] = cloneVariant(v)
	r.s.variantOrder = append(r.s.variantOrder, v.ID)
	return nil
}

func (r variantRepo) GetByBarcode(_ context.Context, barcode string) (*entity.StockVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, v := range r.s.variants {
		if v.Barcode == barcode {
			return cloneVariant(v), nil
		}
	}
	return nil, nil
}

func (r variantRepo) GetByBarcodeForUpdate(ctx context.Context, barcode string) (*entity.StockVariant, error) {
	return r.GetByBarcode(ctx, barcode)
}

func (r variantRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockVariant
	for _, id := range r.s.variantOrder {
		if v, ok := r.s.variants[id]; ok && v.ItemID == itemID {
			out = append(out, cloneVariant(v))
		}
	}
	return out, nil
}

func (r variantRepo) Update(_ context.Context, v *entity.StockVariant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.variants[v.ID]; !ok {
		return fmt.Errorf("%w: variant %s", domain.ErrNotFound, v.ID)
	}
	r.s.variants[v.ID] = cloneVariant(v)
	return nil
}

func (r variantRepo) DecrementQuantity(_ context.Context, variantID string, qty int64, actor string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.variants[variantID]
	if !ok || v.CurrentQuantity < qty {
		return false, nil
	}
	v.CurrentQuantity -= qty
	v.LastUpdatedBy = actor
	v.DeriveStatus()
	return true, nil
}

func (r variantRepo) List(_ context.Context, limit, offset int) ([]*entity.StockVariant, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.StockVariant
	for _, id := range r.s.variantOrder {
		if v, ok := r.s.variants[id]; ok {
			all = append(all, cloneVariant(v))
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (r variantRepo) ListLowStock(_ context.Context, limit int) ([]*entity.StockVariant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.StockVariant
	for _, id := range r.s.variantOrder {
		v, ok := r.s.variants[id]
		if !ok {
			continue
		}
		if v.Status == entity.StockStatusLow || v.Status == entity.StockStatusOutOfStock {
			out = append(out, cloneVariant(v))
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type batchRepo struct{ s *Store }

func (r batchRepo) Create(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.batches {
		if existing.BatchNumber == b.BatchNumber {
			return fmt.Errorf("%w: batch number %s", domain.ErrConflict, b.BatchNumber)
		}
	}
	r.s.batches[b.ID] = cloneBatch(b)
	r.s.batchOrder = append(r.s.batchOrder, b.ID)
	return nil
}

func (r batchRepo) ListActiveByVariant(_ context.Context, variantID string) ([]*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Batch
	for _, id := range r.s.batchOrder {
		if b, ok := r.s.batches[id]; ok && b.IsActive && b.StockVariantID == variantID {
			out = append(out, cloneBatch(b))
		}
	}
	sortBatchesByPurchaseDate(out)
	return out, nil
}

func (r batchRepo) ListActiveByItem(_ context.Context, itemID string) ([]*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Batch
	for _, id := range r.s.batchOrder {
		if b, ok := r.s.batches[id]; ok && b.IsActive && b.ItemID == itemID {
			out = append(out, cloneBatch(b))
		}
	}
	sortBatchesByPurchaseDate(out)
	return out, nil
}

func (r batchRepo) UpdateDepletion(_ context.Context, batchID string, remainingQuantity int64, isActive bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[batchID]
	if !ok {
		return fmt.Errorf("%w: batch %s", domain.ErrNotFound, batchID)
	}
	b.RemainingQuantity = remainingQuantity
	b.IsActive = isActive
	return nil
}

func sortBatchesByPurchaseDate(batches []*entity.Batch) {
	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].PurchaseDate.Before(batches[j].PurchaseDate)
	})
}

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.orders {
		if existing.PONumber == po.PONumber {
			return fmt.Errorf("%w: purchase order %s", domain.ErrConflict, po.PONumber)
		}
	}
	r.s.orders[po.ID] = cloneOrder(po)
	r.s.orderOrder = append(r.s.orderOrder, po.ID)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if po, ok := r.s.orders[id]; ok {
		return cloneOrder(po), nil
	}
	return nil, nil
}

func (r orderRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.PurchaseOrder, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.PurchaseOrder
	for _, id := range r.s.orderOrder {
		po, ok := r.s.orders[id]
		if !ok {
			continue
		}
		if status != "" && po.Status != status {
			continue
		}
		all = append(all, cloneOrder(po))
	}
	return page(all, limit, offset), len(all), nil
}

type saleRepo struct{ s *Store }

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sales[sale.ID] = cloneSale(sale)
	r.s.saleOrder = append(r.s.saleOrder, sale.ID)
	return nil
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sale, ok := r.s.sales[id]; ok {
		return cloneSale(sale), nil
	}
	return nil, nil
}

func (r saleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r saleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return fmt.Errorf("%w: sale %s", domain.ErrNotFound, sale.ID)
	}
	r.s.sales[sale.ID] = cloneSale(sale)
	return nil
}

func (r saleRepo) List(_ context.Context, status string, limit, offset int) ([]*entity.Sale, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Sale
	for _, id := range r.s.saleOrder {
		sale, ok := r.s.sales[id]
		if !ok {
			continue
		}
		if status != "" && sale.Status != status {
			continue
		}
		all = append(all, cloneSale(sale))
	}
	return page(all, limit, offset), len(all), nil
}

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.Phone != "" {
		for _, existing := range r.s.customers {
			if existing.Phone == c.Phone {
				return fmt.Errorf("%w: customer phone %s", domain.ErrConflict, c.Phone)
			}
		}
	}
	r.s.customers[c.ID] = cloneCustomer(c)
	r.s.customerOrder = append(r.s.customerOrder, c.ID)
	return nil
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if c, ok := r.s.customers[id]; ok {
		return cloneCustomer(c), nil
	}
	return nil, nil
}

func (r customerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.customers {
		if c.Phone == phone {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r customerRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.customers[c.ID]; !ok {
		return fmt.Errorf("%w: customer %s", domain.ErrNotFound, c.ID)
	}
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r customerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Customer
	for _, id := range r.s.customerOrder {
		if c, ok := r.s.customers[id]; ok {
			all = append(all, cloneCustomer(c))
		}
	}
	return page(all, limit, offset), len(all), nil
}

type dealerRepo struct{ s *Store }

func (r dealerRepo) Create(_ context.Context, d *entity.Dealer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.dealers[d.ID] = cloneDealer(d)
	r.s.dealerOrder = append(r.s.dealerOrder, d.ID)
	return nil
}

func (r dealerRepo) GetByID(_ context.Context, id string) (*entity.Dealer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if d, ok := r.s.dealers[id]; ok {
		return cloneDealer(d), nil
	}
	return nil, nil
}

func (r dealerRepo) Update(_ context.Context, d *entity.Dealer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.dealers[d.ID]; !ok {
		return fmt.Errorf("%w: dealer %s", domain.ErrNotFound, d.ID)
	}
	r.s.dealers[d.ID] = cloneDealer(d)
	return nil
}

func (r dealerRepo) ListActive(_ context.Context, limit, offset int) ([]*entity.Dealer, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var all []*entity.Dealer
	for _, id := range r.s.dealerOrder {
		if d, ok := r.s.dealers[id]; ok && d.IsActive {
			all = append(all, cloneDealer(d))
		}
	}
	return page(all, limit, offset), len(all), nil
}

func (r dealerRepo) Deactivate(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.dealers[id]
	if !ok {
		return fmt.Errorf("%w: dealer %s", domain.ErrNotFound, id)
	}
	d.IsActive = false
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return fmt.Errorf("%w: username %s", domain.ErrConflict, u.Username)
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

type counterRepo struct{ s *Store }

func (r counterRepo) Next(_ context.Context, name string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.counters[name]++
	return r.s.counters[name], nil
}
