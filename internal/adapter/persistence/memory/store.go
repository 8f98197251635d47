package memory

import (
	"sync"

	"milling_aggregator/internal/domain/entities"
)

// Store is the shared in-memory state behind the memory repositories.
//
// Entities are held by value, so every read hands out a copy. mu only protects
// the maps; lifecycle transitions additionally hold a per-aggregate lock from
// locks, so transitions on different RFQs or orders never wait on each other.
type Store struct {
	mu sync.RWMutex

	rfqs     map[string]entities.RFQ
	quotes   map[string]entities.Quote
	orders   map[string]entities.Order
	payments map[string]entities.Payment
	users    map[string]entities.User

	rfqsByUser      map[string][]string
	quotesByRFQ     map[string][]string
	ordersByRFQ     map[string][]string
	paymentsByOrder map[string][]string
	userByEmail     map[string]string

	locks *keyedMutex
}

func NewStore() *Store {
	return &Store{
		rfqs:            make(map[string]entities.RFQ),
		quotes:          make(map[string]entities.Quote),
		orders:          make(map[string]entities.Order),
		payments:        make(map[string]entities.Payment),
		users:           make(map[string]entities.User),
		rfqsByUser:      make(map[string][]string),
		quotesByRFQ:     make(map[string][]string),
		ordersByRFQ:     make(map[string][]string),
		paymentsByOrder: make(map[string][]string),
		userByEmail:     make(map[string]string),
		locks:           newKeyedMutex(),
	}
}

func rfqKey(id string) string   { return "rfq#" + id }
func orderKey(id string) string { return "order#" + id }
func emailKey(e string) string  { return "email#" + e }

// keyedMutex hands out one mutex per key and forgets it once nobody holds or
// waits for it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until key is free and returns the matching unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
