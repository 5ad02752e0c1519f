package testhelper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/store"
)

// TestAll runs the contract test suite against any KeyedStore
// implementation. Expiry behavior is implementation-specific (wall clock vs
// injected clock) and is tested per implementation.
func TestAll(t *testing.T, s interfaces.KeyedStore) {
	t.Run("PutGetDelete", func(t *testing.T) {
		TestPutGetDelete(t, s)
	})
	t.Run("Overwrite", func(t *testing.T) {
		TestOverwrite(t, s)
	})
	t.Run("SetOperations", func(t *testing.T) {
		TestSetOperations(t, s)
	})
	t.Run("Keys", func(t *testing.T) {
		TestKeys(t, s)
	})
	t.Run("InvalidInput", func(t *testing.T) {
		TestInvalidInput(t, s)
	})
}

func uniqueKey(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

func TestPutGetDelete(t *testing.T, s interfaces.KeyedStore) {
	ctx := context.Background()
	key := uniqueKey("test:kv")

	gt.NoError(t, s.Put(ctx, key, []byte(`{"value":1}`), time.Hour))

	value := gt.R1(s.Get(ctx, key)).NoError(t)
	gt.V(t, string(value)).Equal(`{"value":1}`)

	// Delete returns true for an existing record
	gt.V(t, gt.R1(s.Delete(ctx, key)).NoError(t)).Equal(true)

	// Gone after delete
	_, err := s.Get(ctx, key)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, store.ErrNotFound))

	// Second delete reports absence
	gt.V(t, gt.R1(s.Delete(ctx, key)).NoError(t)).Equal(false)
}

func TestOverwrite(t *testing.T, s interfaces.KeyedStore) {
	ctx := context.Background()
	key := uniqueKey("test:kv")

	gt.NoError(t, s.Put(ctx, key, []byte("first"), time.Hour))
	gt.NoError(t, s.Put(ctx, key, []byte("second"), time.Hour))

	value := gt.R1(s.Get(ctx, key)).NoError(t)
	gt.V(t, string(value)).Equal("second")
}

func TestSetOperations(t *testing.T, s interfaces.KeyedStore) {
	ctx := context.Background()
	setKey := uniqueKey("test:set")

	// Empty set has no members
	members := gt.R1(s.SetMembers(ctx, setKey)).NoError(t)
	gt.V(t, len(members)).Equal(0)

	gt.NoError(t, s.AddSetMember(ctx, setKey, "alpha"))
	gt.NoError(t, s.AddSetMember(ctx, setKey, "bravo"))
	// Adding the same member twice keeps the set a set
	gt.NoError(t, s.AddSetMember(ctx, setKey, "alpha"))
	gt.NoError(t, s.ExpireSet(ctx, setKey, time.Hour))

	members = gt.R1(s.SetMembers(ctx, setKey)).NoError(t)
	sort.Strings(members)
	gt.V(t, members).Equal([]string{"alpha", "bravo"})

	gt.NoError(t, s.RemoveSetMember(ctx, setKey, "alpha"))
	members = gt.R1(s.SetMembers(ctx, setKey)).NoError(t)
	gt.V(t, members).Equal([]string{"bravo"})

	// Removing a member that is not there is not an error
	gt.NoError(t, s.RemoveSetMember(ctx, setKey, "charlie"))
}

func TestKeys(t *testing.T, s interfaces.KeyedStore) {
	ctx := context.Background()
	ns := uniqueKey("test:keys")

	gt.NoError(t, s.Put(ctx, ns+":a", []byte("1"), time.Hour))
	gt.NoError(t, s.Put(ctx, ns+":b", []byte("2"), time.Hour))
	gt.NoError(t, s.Put(ctx, uniqueKey("test:other"), []byte("3"), time.Hour))

	keys := gt.R1(s.Keys(ctx, ns+":*")).NoError(t)
	sort.Strings(keys)
	gt.V(t, keys).Equal([]string{ns + ":a", ns + ":b"})
}

func TestInvalidInput(t *testing.T, s interfaces.KeyedStore) {
	ctx := context.Background()

	gt.Error(t, s.Put(ctx, "", []byte("x"), time.Hour))
	gt.Error(t, s.AddSetMember(ctx, "", "x"))
	gt.Error(t, s.AddSetMember(ctx, "set", ""))
}
