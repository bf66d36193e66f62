package cart

import (
	"strings"
	"sync"

	pkgerrors "github.com/nhakalabs/storefront-gateway/pkg/errors"
)

// Provider scopes cart stores to sessions. Mount creates the store at sign-in,
// Unmount tears it down at sign-out, and Use fails with a contract error when
// no store was mounted for the session.
type Provider struct {
	mu     sync.RWMutex
	stores map[string]*Store
}

func NewProvider() *Provider {
	return &Provider{stores: make(map[string]*Store)}
}

// Mount returns the session's store, creating it if absent.
func (p *Provider) Mount(sessionID string) *Store {
	p.mu.Lock()
	defer p.mu.Unlock()
	if store, ok := p.stores[sessionID]; ok {
		return store
	}
	store := NewStore()
	p.stores[sessionID] = store
	return store
}

// Unmount discards the session's store. Unmounting twice is a no-op.
func (p *Provider) Unmount(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.stores, sessionID)
}

// Use returns the mounted store for the session. Calling it for an unmounted
// session is an integration bug, not a user-facing condition.
func (p *Provider) Use(sessionID string) (*Store, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeContract, "cart store used without a session")
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	store, ok := p.stores[sessionID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeContract, "cart store used outside a mounted session")
	}
	return store, nil
}
