package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/phenrril/fashionshop/internal/domain"
)

type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	failPut  error
	puts     int
	putDelay time.Duration
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	delay := m.putDelay
	m.mu.Unlock()
	time.Sleep(delay)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.puts++
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memStore) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.data[key])
}

func (m *memStore) setFailPut(err error) {
	m.mu.Lock()
	m.failPut = err
	m.mu.Unlock()
}

type lookupMap map[string]domain.Product

func (l lookupMap) Get(id string) (domain.Product, bool) {
	p, ok := l[id]
	return p, ok
}

type fakeSource struct {
	list []domain.Product
	err  error
}

func (f fakeSource) ListProducts(context.Context) ([]domain.Product, error) {
	return f.list, f.err
}

var errBoom = errors.New("boom")

// fakeAdmin is a scripted AdminAPI. Hooks, when set, override the defaults.
type fakeAdmin struct {
	mu          sync.Mutex
	stats       domain.DashboardStats
	orders      []domain.Order
	statsErr    error
	ordersErr   error
	statusErr   error
	deleteErr   error
	statsCalls  int
	ordersCalls int
	keys        []string
	statuses    map[string]domain.OrderStatus

	statsHook  func(ctx context.Context, call int) (domain.DashboardStats, error)
	ordersHook func(ctx context.Context, call int) ([]domain.Order, error)
}

func (f *fakeAdmin) Stats(ctx context.Context, apiKey string) (domain.DashboardStats, error) {
	f.mu.Lock()
	f.statsCalls++
	call := f.statsCalls
	f.keys = append(f.keys, apiKey)
	hook, st, err := f.statsHook, f.stats, f.statsErr
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, call)
	}
	return st, err
}

func (f *fakeAdmin) ListOrders(ctx context.Context, apiKey string) ([]domain.Order, error) {
	f.mu.Lock()
	f.ordersCalls++
	call := f.ordersCalls
	hook, err := f.ordersHook, f.ordersErr
	out := append([]domain.Order(nil), f.orders...)
	f.mu.Unlock()
	if hook != nil {
		return hook(ctx, call)
	}
	return out, err
}

func (f *fakeAdmin) GetOrder(_ context.Context, _ string, id string) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if string(o.ID) == id {
			return o, nil
		}
	}
	return domain.Order{}, domain.ErrNotFound
}

func (f *fakeAdmin) UpdateOrderStatus(_ context.Context, _ string, id string, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return f.statusErr
	}
	for i := range f.orders {
		if string(f.orders[i].ID) == id {
			f.orders[i].Status = status
		}
	}
	if f.statuses == nil {
		f.statuses = map[string]domain.OrderStatus{}
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeAdmin) DeleteOrder(_ context.Context, _ string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	next := f.orders[:0:0]
	for _, o := range f.orders {
		if string(o.ID) != id {
			next = append(next, o)
		}
	}
	f.orders = next
	return nil
}

func (f *fakeAdmin) set(fn func(f *fakeAdmin)) {
	f.mu.Lock()
	fn(f)
	f.mu.Unlock()
}

func (f *fakeAdmin) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statsCalls, f.ordersCalls
}
