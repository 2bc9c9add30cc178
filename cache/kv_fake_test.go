package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// fakeKVStore is an in-memory KVStore driven by a settable clock.
type fakeKVStore struct {
	mu   sync.Mutex
	now  time.Time
	data map[string]fakeKVItem
}

type fakeKVItem struct {
	value   string
	expires time.Time
}

func newFakeKVStore() *fakeKVStore {
	return &fakeKVStore{now: time.Unix(1_700_000_000, 0), data: make(map[string]fakeKVItem)}
}

func (f *fakeKVStore) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func (f *fakeKVStore) live(key string) (fakeKVItem, bool) {
	item, ok := f.data[key]
	if !ok {
		return item, false
	}
	if !item.expires.IsZero() && !f.now.Before(item.expires) {
		delete(f.data, key)
		return item, false
	}
	return item, true
}

func (f *fakeKVStore) TTL(_ context.Context, key string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.live(key)
	if !ok || item.expires.IsZero() {
		return 0, nil
	}
	return item.expires.Sub(f.now), nil
}

func (f *fakeKVStore) IncrWithExpire(_ context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.live(key)
	if !ok {
		f.data[key] = fakeKVItem{value: "1", expires: f.now.Add(ttl)}
		return 1, nil
	}
	n, _ := strconv.ParseInt(item.value, 10, 64)
	n++
	item.value = strconv.FormatInt(n, 10)
	f.data[key] = item
	return n, nil
}

func (f *fakeKVStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var exp time.Time
	if ttl > 0 {
		exp = f.now.Add(ttl)
	}
	f.data[key] = fakeKVItem{value: value, expires: exp}
	return nil
}

func (f *fakeKVStore) Del(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}
