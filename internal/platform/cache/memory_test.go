// internal/platform/cache/memory_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/platform/errors"
	"openhours/internal/testutil"
)

func sampleSchedule(id string) *domain.DaySchedule {
	w, _ := domain.NewTimeWindow("07:00", "10:00", "Breakfast")
	return &domain.DaySchedule{
		FacilityID: id,
		Status:     domain.DailyStatusOpen,
		Windows:    []domain.TimeWindow{w},
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)

	testutil.AssertNoError(t, c.Set(ctx, "k", sampleSchedule("1447"), time.Minute), "set")

	got, err := c.Get(ctx, "k")
	testutil.AssertNoError(t, err, "get")
	testutil.AssertEqual(t, got.FacilityID, "1447", "value")
}

func TestMemoryCache_Miss(t *testing.T) {
	_, err := NewMemoryCache(10).Get(context.Background(), "missing")
	testutil.AssertErrorIs(t, err, errors.ErrCacheMiss, "miss")
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)
	now := testutil.At(8, 0)
	c.now = func() time.Time { return now }

	c.Set(ctx, "short", sampleSchedule("a"), time.Minute)
	c.Set(ctx, "forever", sampleSchedule("b"), 0)

	now = now.Add(59 * time.Second)
	_, err := c.Get(ctx, "short")
	testutil.AssertNoError(t, err, "not yet expired")

	now = now.Add(time.Second)
	_, err = c.Get(ctx, "short")
	testutil.AssertErrorIs(t, err, errors.ErrCacheMiss, "expired at ttl")

	now = now.Add(24 * time.Hour)
	_, err = c.Get(ctx, "forever")
	testutil.AssertNoError(t, err, "zero ttl never expires")
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	c.Set(ctx, "a", sampleSchedule("a"), 0)
	c.Set(ctx, "b", sampleSchedule("b"), 0)
	c.Get(ctx, "a") // a pasa a ser el más reciente
	c.Set(ctx, "c", sampleSchedule("c"), 0)

	_, err := c.Get(ctx, "b")
	testutil.AssertErrorIs(t, err, errors.ErrCacheMiss, "least recently used evicted")
	_, err = c.Get(ctx, "a")
	testutil.AssertNoError(t, err, "recently used kept")
	testutil.AssertEqual(t, c.Len(), 2, "capacity respected")
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)
	original := sampleSchedule("1447")
	c.Set(ctx, "k", original, 0)

	original.Windows[0].Label = "mutated after set"
	got, _ := c.Get(ctx, "k")
	got.Windows[0].Label = "mutated after get"

	again, _ := c.Get(ctx, "k")
	testutil.AssertEqual(t, again.Windows[0].Label, "Breakfast", "cache isolated from callers")
}

func TestMemoryCache_DeleteCleanClose(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(10)
	now := testutil.At(8, 0)
	c.now = func() time.Time { return now }

	c.Set(ctx, "a", sampleSchedule("a"), time.Minute)
	c.Set(ctx, "b", sampleSchedule("b"), time.Hour)
	c.Set(ctx, "c", sampleSchedule("c"), 0)

	testutil.AssertNoError(t, c.Delete(ctx, "c"), "delete")
	testutil.AssertEqual(t, c.Len(), 2, "deleted")

	now = now.Add(2 * time.Minute)
	testutil.AssertEqual(t, c.CleanExpired(), 1, "one expired")

	testutil.AssertNoError(t, c.Close(), "close")
	testutil.AssertEqual(t, c.Len(), 0, "purged")
}

func TestMemoryCache_RejectsNil(t *testing.T) {
	testutil.AssertError(t, NewMemoryCache(1).Set(context.Background(), "k", nil, 0), "nil schedule")
}

func TestKey(t *testing.T) {
	testutil.AssertEqual(t, Key("1447", testutil.At(23, 59)), "openhours:schedule:1447:2024-03-12", "key")

	loc := time.FixedZone("PT", -7*3600)
	late := time.Date(2024, 3, 12, 23, 30, 0, 0, loc) // ya es 13 en UTC
	testutil.AssertEqual(t, Key("1447", late), "openhours:schedule:1447:2024-03-12", "local date used")
}
