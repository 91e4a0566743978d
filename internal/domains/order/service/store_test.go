package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	bookModel "librobuddy-backend/internal/domains/book/model"
	"librobuddy-backend/internal/domains/order/model"
	"librobuddy-backend/internal/shared"
)

// memStore is an in-memory order and stock store.
// A transaction holds mu until commit or rollback, which serializes writers like row locks would.
type memStore struct {
	mu      sync.Mutex
	books   map[uuid.UUID]bookModel.Book
	orders  map[uuid.UUID]model.Order
	items   map[uuid.UUID][]model.OrderItem
	history []model.OrderStatusHistory

	snap *memSnapshot
}

type memSnapshot struct {
	books   map[uuid.UUID]bookModel.Book
	orders  map[uuid.UUID]model.Order
	items   map[uuid.UUID][]model.OrderItem
	history []model.OrderStatusHistory
}

func newMemStore(books ...bookModel.Book) *memStore {
	s := &memStore{
		books:  map[uuid.UUID]bookModel.Book{},
		orders: map[uuid.UUID]model.Order{},
		items:  map[uuid.UUID][]model.OrderItem{},
	}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

// memTx implements only Commit and Rollback; any other pgx.Tx call panics on the nil embed.
type memTx struct {
	pgx.Tx
	store *memStore
	done  bool
}

func (s *memStore) Begin(ctx context.Context) (pgx.Tx, error) {
	s.mu.Lock()
	s.snap = s.copyState()
	return &memTx{store: s}, nil
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.snap = nil
	t.store.mu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	s := t.store
	s.books, s.orders, s.items, s.history = s.snap.books, s.snap.orders, s.snap.items, s.snap.history
	s.snap = nil
	s.mu.Unlock()
	return nil
}

func (s *memStore) copyState() *memSnapshot {
	snap := &memSnapshot{
		books:   make(map[uuid.UUID]bookModel.Book, len(s.books)),
		orders:  make(map[uuid.UUID]model.Order, len(s.orders)),
		items:   make(map[uuid.UUID][]model.OrderItem, len(s.items)),
		history: append([]model.OrderStatusHistory(nil), s.history...),
	}
	for k, v := range s.books {
		snap.books[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.items {
		snap.items[k] = append([]model.OrderItem(nil), v...)
	}
	return snap
}

// ---- stock ----

func (s *memStore) LockBooksForUpdateWithTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) (map[uuid.UUID]*bookModel.Book, error) {
	out := make(map[uuid.UUID]*bookModel.Book, len(ids))
	for _, id := range ids {
		if b, ok := s.books[id]; ok {
			cp := b
			out[id] = &cp
		}
	}
	return out, nil
}

func (s *memStore) DecrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, quantity int) error {
	b, ok := s.books[bookID]
	if !ok || b.StockQuantity < quantity {
		return bookModel.ErrInsufficientStock
	}
	b.StockQuantity -= quantity
	s.books[bookID] = b
	return nil
}

func (s *memStore) IncrementStockWithTx(ctx context.Context, tx pgx.Tx, bookID uuid.UUID, quantity int) error {
	b, ok := s.books[bookID]
	if !ok {
		return bookModel.ErrBookNotFound
	}
	// INTEGER column overflow
	if int64(b.StockQuantity)+int64(quantity) > shared.MaxQuantity {
		return bookModel.ErrValueOutOfRange
	}
	b.StockQuantity += quantity
	s.books[bookID] = b
	return nil
}

// ---- orders ----

func (s *memStore) CreateOrderWithTx(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	s.orders[order.ID] = *order
	return nil
}

func (s *memStore) CreateOrderItemsWithTx(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	for _, item := range items {
		s.items[item.OrderID] = append(s.items[item.OrderID], item)
	}
	return nil
}

func (s *memStore) CreateStatusHistoryWithTx(ctx context.Context, tx pgx.Tx, h *model.OrderStatusHistory) error {
	h.ChangedAt = time.Now()
	s.history = append(s.history, *h)
	return nil
}

func (s *memStore) GetOrderForUpdateWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*model.Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return &o, nil
}

func (s *memStore) UpdateStatusWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, status string) (time.Time, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return time.Time{}, model.ErrOrderNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	s.orders[orderID] = o
	return o.UpdatedAt, nil
}

func (s *memStore) GetOrderItemsWithTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error) {
	return append([]model.OrderItem(nil), s.items[orderID]...), nil
}

func (s *memStore) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return &o, nil
}

func (s *memStore) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := append([]model.OrderItem(nil), s.items[orderID]...)
	sort.Slice(items, func(i, j int) bool { return items[i].LineNo < items[j].LineNo })
	return items, nil
}

func (s *memStore) GetStatusHistory(ctx context.Context, orderID uuid.UUID) ([]model.OrderStatusHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.OrderStatusHistory
	for _, h := range s.history {
		if h.OrderID == orderID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *memStore) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []model.Order
	for _, o := range s.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		matched = append(matched, o)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// ---- test accessors ----

func (s *memStore) stock(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id].StockQuantity
}

func (s *memStore) setPrice(id uuid.UUID, price string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.books[id]
	b.Price = mustDecimal(price)
	s.books[id] = b
}

func (s *memStore) deleteBook(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, id)
	for orderID, items := range s.items {
		for i := range items {
			if items[i].BookID != nil && *items[i].BookID == id {
				items[i].BookID = nil
			}
		}
		s.items[orderID] = items
	}
}

func (s *memStore) setStock(id uuid.UUID, stock int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.books[id]
	b.StockQuantity = stock
	s.books[id] = b
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) historyFor(orderID uuid.UUID) []model.OrderStatusHistory {
	h, _ := s.GetStatusHistory(context.Background(), orderID)
	return h
}
