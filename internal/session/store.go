// Package session maps cart session ids to their ledgers.
// Sessions expire after an idle period and the least recently used session is
// evicted when the store is full. A background cleaner removes expired sessions.
//
// Package session 将购物车会话ID映射到其账本。
// 会话在空闲一段时间后过期，存储已满时淘汰最近最少使用的会话。
// 后台清理器会删除过期的会话。
package session

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Humphrey-He/storefront/pkg/cart"
	storeerrors "github.com/Humphrey-He/storefront/pkg/errors"
)

const (
	defaultTTL             = 30 * time.Minute
	defaultCleanupInterval = time.Minute
	defaultMaxSessions     = 10000
)

// Reason says why a session left the store.
type Reason string

// Removal reasons passed to Config.OnRemoved.
const (
	ReasonExpired Reason = "expired"
	ReasonEvicted Reason = "evicted"
	ReasonDeleted Reason = "deleted"
)

// Config configures a Store. Zero values select the defaults.
//
// Config 配置Store。零值表示使用默认值。
type Config struct {
	// Idle time after which a session expires; negative disables expiry
	// 会话过期前的空闲时间；负数表示不过期
	TTL time.Duration

	// How often the cleaner runs; negative disables the cleaner
	// 清理器运行的间隔；负数表示禁用清理器
	CleanupInterval time.Duration

	// Maximum number of live sessions
	// 最大活跃会话数
	MaxSessions int

	// Called without the store lock held after a session is removed
	// 会话被删除后调用（不持有存储锁）
	OnRemoved func(id string, reason Reason)

	// Time source, time.Now when nil
	// 时间源，为nil时使用time.Now
	Now func() time.Time
}

// Stats are cumulative store counters.
type Stats struct {
	Sessions  int    `json:"sessions"`
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Created   uint64 `json:"created"`
	Expired   uint64 `json:"expired"`
	Evictions uint64 `json:"evictions"`
}

type entry struct {
	id       string
	ledger   *cart.Ledger
	accessed time.Time
}

type removal struct {
	id     string
	reason Reason
}

// Store holds the cart ledger of every live session.
// All methods are safe for concurrent use.
//
// Store 保存每个活跃会话的购物车账本。
// 所有方法都可以安全地并发使用。
type Store struct {
	mu        sync.Mutex
	entries   map[string]*list.Element
	lru       *list.List // front is most recently used
	stats     Stats
	ttl       time.Duration
	max       int
	now       func() time.Time
	onRemoved func(string, Reason)
	logger    *zap.Logger

	closeChan chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Store and starts its cleaner.
//
// New 创建Store并启动其清理器。
//
// Parameters:
//   - cfg: The store configuration
//   - logger: Logger for expiry and eviction events; nil discards output
//
// Returns:
//   - *Store: A new store; call Close to stop the cleaner
func New(cfg Config, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}
	interval := cfg.CleanupInterval
	if interval == 0 {
		interval = defaultCleanupInterval
	}
	maxSessions := cfg.MaxSessions
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Store{
		entries:   make(map[string]*list.Element),
		lru:       list.New(),
		ttl:       ttl,
		max:       maxSessions,
		now:       now,
		onRemoved: cfg.OnRemoved,
		logger:    logger,
		closeChan: make(chan struct{}),
	}

	if interval > 0 && ttl > 0 {
		s.wg.Add(1)
		go s.cleanerLoop(interval)
	}
	return s
}

// Create opens a new session with an empty ledger.
// When the store is full the least recently used session is evicted first.
func (s *Store) Create() (string, *cart.Ledger) {
	id := uuid.NewString()
	ledger := cart.NewLedger()

	var evicted []removal
	s.mu.Lock()
	for s.lru.Len() >= s.max {
		back := s.lru.Back()
		e := back.Value.(*entry)
		s.removeElementLocked(back)
		s.stats.Evictions++
		evicted = append(evicted, removal{id: e.id, reason: ReasonEvicted})
	}
	s.entries[id] = s.lru.PushFront(&entry{id: id, ledger: ledger, accessed: s.now()})
	s.stats.Created++
	s.mu.Unlock()

	s.notify(evicted)
	return id, ledger
}

// Get returns the ledger of session id and marks the session as used.
//
// Get 返回会话id的账本并将该会话标记为已使用。
//
// Parameters:
//   - id: The session id
//
// Returns:
//   - *cart.Ledger: The session's ledger
//   - error: An error wrapping ErrSessionNotFound when the session is unknown or expired
func (s *Store) Get(id string) (*cart.Ledger, error) {
	now := s.now()

	s.mu.Lock()
	el, ok := s.entries[id]
	if !ok {
		s.stats.Misses++
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", storeerrors.ErrSessionNotFound, id)
	}
	e := el.Value.(*entry)
	if s.expiredLocked(e, now) {
		s.removeElementLocked(el)
		s.stats.Misses++
		s.stats.Expired++
		s.mu.Unlock()
		s.notify([]removal{{id: id, reason: ReasonExpired}})
		return nil, fmt.Errorf("%w: %s", storeerrors.ErrSessionNotFound, id)
	}
	e.accessed = now
	s.lru.MoveToFront(el)
	s.stats.Hits++
	s.mu.Unlock()

	return e.ledger, nil
}

// Delete ends session id. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	el, ok := s.entries[id]
	if ok {
		s.removeElementLocked(el)
	}
	s.mu.Unlock()

	if ok {
		s.notify([]removal{{id: id, reason: ReasonDeleted}})
	}
	return ok
}

// Len returns the number of sessions currently held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Len()
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stats
	st.Sessions = s.lru.Len()
	return st
}

// Close stops the cleaner. It is safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.closeChan)
	})
	s.wg.Wait()
	return nil
}

func (s *Store) cleanerLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.cleanExpired(); n > 0 {
				s.logger.Debug("expired sessions removed", zap.Int("count", n))
			}
		case <-s.closeChan:
			return
		}
	}
}

// cleanExpired walks from the least recently used end and stops at the first
// live session.
func (s *Store) cleanExpired() int {
	now := s.now()

	var expired []removal
	s.mu.Lock()
	for el := s.lru.Back(); el != nil; {
		e := el.Value.(*entry)
		if !s.expiredLocked(e, now) {
			break
		}
		prev := el.Prev()
		s.removeElementLocked(el)
		s.stats.Expired++
		expired = append(expired, removal{id: e.id, reason: ReasonExpired})
		el = prev
	}
	s.mu.Unlock()

	s.notify(expired)
	return len(expired)
}

func (s *Store) expiredLocked(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.accessed) >= s.ttl
}

func (s *Store) removeElementLocked(el *list.Element) {
	e := s.lru.Remove(el).(*entry)
	delete(s.entries, e.id)
}

func (s *Store) notify(removed []removal) {
	for _, r := range removed {
		s.logger.Debug("session removed", zap.String("session", r.id), zap.String("reason", string(r.reason)))
		if s.onRemoved != nil {
			s.onRemoved(r.id, r.reason)
		}
	}
}
