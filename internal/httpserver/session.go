package httpserver

import (
	"context"
	"log"
	"net/http"
	"sync"

	"cartkeep/internal/cart"
	"cartkeep/internal/checkout"
	"cartkeep/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "cart_session"

// sessionEntry is one shopper's cart store plus its checkout guard.
type sessionEntry struct {
	store   *cart.Store
	handoff *checkout.Handoff
}

// sessionRegistry maps session keys to live stores. A store is created and
// hydrated on first touch; hydration runs in the background so the first
// request may see an empty cart that fills in shortly after.
type sessionRegistry struct {
	slots    storage.Opener
	checkout checkout.Starter
	logger   *log.Logger

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

func newSessionRegistry(slots storage.Opener, starter checkout.Starter, logger *log.Logger) *sessionRegistry {
	return &sessionRegistry{
		slots:    slots,
		checkout: starter,
		logger:   logger,
		entries:  make(map[string]*sessionEntry),
	}
}

func (r *sessionRegistry) get(key string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[key]
	if !ok {
		store := cart.New(r.slots.Open(key), r.logger)
		go store.Hydrate(context.Background())
		entry = &sessionEntry{store: store}
		if r.checkout != nil {
			entry.handoff = checkout.NewHandoff(r.checkout)
		}
		r.entries[key] = entry
	}
	return entry
}

// sessionMiddleware resolves the shopper's session cookie, minting one when
// absent, and puts the session entry on the gin context.
func sessionMiddleware(registry *sessionRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(sessionCookie)
		if err != nil || key == "" {
			key = uuid.NewString()
			c.SetCookie(sessionCookie, key, int(180*24*3600), "/", "", false, true)
		}
		c.Set("session", registry.get(key))
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *sessionEntry {
	entry, ok := c.Get("session")
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return nil
	}
	return entry.(*sessionEntry)
}
