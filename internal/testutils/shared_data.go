package testutils

import "sync"

// SharedData is a key/value store for handing values from one test to the
// next. Tests that read a key depend on an earlier test having set it.
type SharedData struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewSharedData returns an empty store.
func NewSharedData() *SharedData {
	return &SharedData{values: make(map[string]any)}
}

// Set stores value under key, replacing any previous value.
func (d *SharedData) Set(key string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.values == nil {
		d.values = make(map[string]any)
	}
	d.values[key] = value
}

// Lookup returns the value under key.
func (d *SharedData) Lookup(key string) (any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.values[key]
	return v, ok
}

// Get returns the value under key and fails the test when it was never set.
func (d *SharedData) Get(t TestingT, key string) any {
	t.Helper()
	v, ok := d.Lookup(key)
	if !ok {
		fail(t, "shared data key %q was never set", key)
		return nil
	}
	return v
}

// SharedValue returns the value under key as a T.
func SharedValue[T any](t TestingT, d *SharedData, key string) T {
	t.Helper()
	var zero T
	v := d.Get(t, key)
	typed, ok := v.(T)
	if !ok {
		fail(t, "shared data key %q holds %T, not %T", key, v, zero)
		return zero
	}
	return typed
}
