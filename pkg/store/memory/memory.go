package memory

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/store"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
)

// New creates a new in-memory keyed store. Expiry is evaluated against
// logging.CtxTime, so tests can inject a clock instead of sleeping.
func New() interfaces.KeyedStore {
	return &keyedStore{
		records: make(map[string]*record),
		sets:    make(map[string]*setRecord),
	}
}

type record struct {
	value     []byte
	expiresAt time.Time
}

type setRecord struct {
	members   map[string]struct{}
	expiresAt time.Time
}

type keyedStore struct {
	mu      sync.RWMutex
	records map[string]*record
	sets    map[string]*setRecord
}

func (x *keyedStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return goerr.Wrap(store.ErrInvalidInput, "key is empty")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	r := &record{value: append([]byte(nil), value...)}
	if ttl > 0 {
		r.expiresAt = logging.CtxTime(ctx).Add(ttl)
	}
	x.records[key] = r

	return nil
}

func (x *keyedStore) Get(ctx context.Context, key string) ([]byte, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	r, exists := x.records[key]
	if !exists || expired(r.expiresAt, logging.CtxTime(ctx)) {
		return nil, goerr.Wrap(store.ErrNotFound, "record not found", goerr.V("key", key))
	}

	return append([]byte(nil), r.value...), nil
}

func (x *keyedStore) Delete(ctx context.Context, key string) (bool, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	r, exists := x.records[key]
	if !exists {
		return false, nil
	}
	delete(x.records, key)

	if expired(r.expiresAt, logging.CtxTime(ctx)) {
		return false, nil
	}

	return true, nil
}

func (x *keyedStore) AddSetMember(ctx context.Context, setKey, member string) error {
	if setKey == "" || member == "" {
		return goerr.Wrap(store.ErrInvalidInput, "set key and member must not be empty")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	s, exists := x.sets[setKey]
	if !exists || expired(s.expiresAt, logging.CtxTime(ctx)) {
		s = &setRecord{members: make(map[string]struct{})}
		x.sets[setKey] = s
	}
	s.members[member] = struct{}{}

	return nil
}

func (x *keyedStore) RemoveSetMember(ctx context.Context, setKey, member string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	if s, exists := x.sets[setKey]; exists {
		delete(s.members, member)
		if len(s.members) == 0 {
			delete(x.sets, setKey)
		}
	}

	return nil
}

func (x *keyedStore) SetMembers(ctx context.Context, setKey string) ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	s, exists := x.sets[setKey]
	if !exists || expired(s.expiresAt, logging.CtxTime(ctx)) {
		return nil, nil
	}

	members := make([]string, 0, len(s.members))
	for m := range s.members {
		members = append(members, m)
	}

	return members, nil
}

func (x *keyedStore) ExpireSet(ctx context.Context, setKey string, ttl time.Duration) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	s, exists := x.sets[setKey]
	if !exists {
		return nil
	}
	if ttl > 0 {
		s.expiresAt = logging.CtxTime(ctx).Add(ttl)
	} else {
		s.expiresAt = time.Time{}
	}

	return nil
}

func (x *keyedStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	now := logging.CtxTime(ctx)
	var keys []string
	for key, r := range x.records {
		if expired(r.expiresAt, now) {
			continue
		}
		if matched, err := path.Match(pattern, key); err != nil {
			return nil, goerr.Wrap(store.ErrInvalidInput, "invalid pattern", goerr.V("pattern", pattern))
		} else if matched {
			keys = append(keys, key)
		}
	}
	for key, s := range x.sets {
		if expired(s.expiresAt, now) {
			continue
		}
		if matched, err := path.Match(pattern, key); err != nil {
			return nil, goerr.Wrap(store.ErrInvalidInput, "invalid pattern", goerr.V("pattern", pattern))
		} else if matched {
			keys = append(keys, key)
		}
	}

	return keys, nil
}

func (x *keyedStore) Close() error {
	return nil
}

func expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && !now.Before(expiresAt)
}
