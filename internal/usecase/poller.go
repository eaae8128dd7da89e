package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/phenrril/fashionshop/internal/domain"
)

type PollState string

const (
	PollDisconnected PollState = "disconnected"
	PollConnected    PollState = "connected"
	PollRefreshing   PollState = "refreshing"
)

// PollSnapshot is what the dashboard renders.
type PollSnapshot struct {
	State       PollState              `json:"state"`
	Countdown   int                    `json:"countdown"`
	Stats       *domain.DashboardStats `json:"stats,omitempty"`
	Orders      []domain.Order         `json:"orders"`
	LastRefresh time.Time              `json:"lastRefresh"`
	LastError   string                 `json:"lastError,omitempty"`
}

// PollObserver receives every state change. Callbacks run on the poller's
// goroutines and must not call Connect or Disconnect.
type PollObserver interface {
	OnSnapshot(PollSnapshot)
	OnError(error)
}

type PollerConfig struct {
	// Tick is the countdown resolution.
	Tick time.Duration
	// Countdown is the number of ticks between refreshes.
	Countdown int
}

func DefaultPollerConfig() PollerConfig {
	return PollerConfig{Tick: time.Second, Countdown: 30}
}

// Poller keeps the admin dashboard fresh. A single ticker drives both the
// visible countdown and the refresh that fires when it reaches zero.
type Poller struct {
	api   domain.AdminAPI
	store domain.KVStore
	cfg   PollerConfig

	// lifeMu serializes Connect and Disconnect so only one loop ever runs.
	lifeMu sync.Mutex

	mu          sync.Mutex
	state       PollState
	apiKey      string
	countdown   int
	stats       *domain.DashboardStats
	orders      []domain.Order
	lastRefresh time.Time
	lastErr     string
	inflight    int

	// request tokens: issued, and last applied per resource
	issued        uint64
	statsApplied  uint64
	ordersApplied uint64
	errApplied    uint64

	cancel context.CancelFunc
	done   chan struct{}

	obsMu     sync.RWMutex
	observers []PollObserver
}

func NewPoller(api domain.AdminAPI, store domain.KVStore, cfg PollerConfig) *Poller {
	if cfg.Tick <= 0 {
		cfg.Tick = time.Second
	}
	if cfg.Countdown <= 0 {
		cfg.Countdown = 30
	}
	return &Poller{api: api, store: store, cfg: cfg, state: PollDisconnected, countdown: cfg.Countdown, orders: []domain.Order{}}
}

func (p *Poller) Subscribe(o PollObserver) {
	p.obsMu.Lock()
	p.observers = append(p.observers, o)
	p.obsMu.Unlock()
}

func (p *Poller) Unsubscribe(o PollObserver) {
	p.obsMu.Lock()
	defer p.obsMu.Unlock()
	for i, v := range p.observers {
		if v == o {
			p.observers = append(p.observers[:i:i], p.observers[i+1:]...)
			return
		}
	}
}

// Connect validates and stores the key, refreshes once and starts the timer.
// Refresh failures do not fail Connect.
func (p *Poller) Connect(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.Wrap(domain.ErrValidation, "api key vacía")
	}
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	p.disconnect()

	if err := p.store.Put(ctx, domain.KeyAdminAPIKey, []byte(key)); err != nil {
		log.Warn().Err(err).Msg("no se pudo guardar la api key")
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.apiKey = key
	p.state = PollConnected
	p.countdown = p.cfg.Countdown
	p.lastErr = ""
	p.cancel = cancel
	p.done = done
	p.mu.Unlock()

	log.Info().Int("countdown", p.cfg.Countdown).Dur("tick", p.cfg.Tick).Msg("panel admin conectado")
	_ = p.Refresh(ctx)

	go p.run(loopCtx, done)
	return nil
}

// Restore connects with the persisted key, if any.
func (p *Poller) Restore(ctx context.Context) (bool, error) {
	raw, err := p.store.Get(ctx, domain.KeyAdminAPIKey)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	key := strings.TrimSpace(string(raw))
	if key == "" {
		return false, nil
	}
	return true, p.Connect(ctx, key)
}

// Disconnect stops the timer and waits for the loop to exit. The last data
// is kept for display.
func (p *Poller) Disconnect() {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	p.disconnect()
}

func (p *Poller) disconnect() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	wasConnected := p.state != PollDisconnected
	p.cancel, p.done = nil, nil
	p.state = PollDisconnected
	p.countdown = p.cfg.Countdown
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if wasConnected {
		log.Info().Msg("panel admin desconectado")
		p.publish()
	}
}

// Forget disconnects and removes the stored key.
func (p *Poller) Forget(ctx context.Context) error {
	p.Disconnect()
	p.mu.Lock()
	p.apiKey = ""
	p.mu.Unlock()
	return p.store.Delete(ctx, domain.KeyAdminAPIKey)
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(p.cfg.Tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if p.tick() {
				_ = p.Refresh(ctx)
			} else {
				p.publish()
			}
		}
	}
}

// tick advances the countdown and reports whether a refresh is due.
func (p *Poller) tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == PollDisconnected {
		return false
	}
	p.countdown--
	if p.countdown <= 0 {
		p.countdown = p.cfg.Countdown
		return true
	}
	return false
}

// Refresh fetches stats and orders concurrently. Each result is applied on its
// own and only if no newer request has been applied already. Errors are
// reported to observers; the poller stays connected.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if p.state == PollDisconnected {
		p.mu.Unlock()
		return errors.Wrap(domain.ErrValidation, "panel admin desconectado")
	}
	key := p.apiKey
	p.issued++
	token := p.issued
	p.inflight++
	p.state = PollRefreshing
	p.mu.Unlock()
	p.publish()

	reqID := uuid.NewString()
	logger := log.With().Str("refresh_id", reqID).Uint64("token", token).Logger()

	var statsErr, ordersErr error
	var g errgroup.Group
	g.Go(func() error {
		st, err := p.api.Stats(ctx, key)
		if err != nil {
			statsErr = errors.Wrap(err, "estadísticas")
			return nil
		}
		p.mu.Lock()
		if token > p.statsApplied && p.state != PollDisconnected {
			p.stats = &st
			p.statsApplied = token
		}
		p.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		orders, err := p.api.ListOrders(ctx, key)
		if err != nil {
			ordersErr = errors.Wrap(err, "pedidos")
			return nil
		}
		p.mu.Lock()
		if token > p.ordersApplied && p.state != PollDisconnected {
			p.orders = orders
			p.ordersApplied = token
		}
		p.mu.Unlock()
		return nil
	})
	_ = g.Wait()
	err := stderrors.Join(statsErr, ordersErr)

	p.mu.Lock()
	p.inflight--
	if p.state != PollDisconnected && p.inflight == 0 {
		p.state = PollConnected
	}
	// an older request must not overwrite the outcome of a newer one
	current := token >= p.errApplied
	if current {
		p.errApplied = token
		if err != nil {
			p.lastErr = err.Error()
		} else {
			p.lastErr = ""
			p.lastRefresh = time.Now()
		}
	}
	p.mu.Unlock()

	if err != nil {
		logger.Warn().Err(err).Bool("stale", !current).Msg("actualización del panel falló")
		if current {
			p.notifyError(err)
		}
	} else {
		logger.Debug().Msg("panel actualizado")
	}
	p.publish()
	return err
}

func (p *Poller) APIKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.apiKey
}

// Key returns the active key or, when not connected, the persisted one.
func (p *Poller) Key(ctx context.Context) string {
	if k := p.APIKey(); k != "" {
		return k
	}
	raw, err := p.store.Get(ctx, domain.KeyAdminAPIKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

func (p *Poller) State() PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Poller) Snapshot() PollSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Poller) snapshotLocked() PollSnapshot {
	s := PollSnapshot{
		State:       p.state,
		Countdown:   p.countdown,
		Orders:      make([]domain.Order, len(p.orders)),
		LastRefresh: p.lastRefresh,
		LastError:   p.lastErr,
	}
	copy(s.Orders, p.orders)
	if p.stats != nil {
		st := *p.stats
		s.Stats = &st
	}
	return s
}

func (p *Poller) publish() {
	snap := p.Snapshot()
	p.obsMu.RLock()
	defer p.obsMu.RUnlock()
	for _, o := range p.observers {
		o.OnSnapshot(snap)
	}
}

func (p *Poller) notifyError(err error) {
	p.obsMu.RLock()
	defer p.obsMu.RUnlock()
	for _, o := range p.observers {
		o.OnError(err)
	}
}
