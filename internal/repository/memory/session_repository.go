package memory

import (
	"time"

	"ai-luthier-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Session lifecycle only: one hour of inactivity ends the workshop,
	// expired sessions are purged every ten minutes.
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}

// Touch refreshes the TTL so an active workshop is not expired under the
// user.
func (r *SessionRepository) Touch(sessionID string) {
	if x, found := r.cache.Get(sessionID); found {
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
	}
}
