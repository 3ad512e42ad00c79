package session

import "context"

// KeyValue is the slice of the state repository the session store needs.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// KeyedStore adapts a keyed blob repository to the Store capability by
// pinning a single record key.
type KeyedStore struct {
	kv  KeyValue
	key string
}

func NewKeyedStore(kv KeyValue, key string) *KeyedStore {
	return &KeyedStore{kv: kv, key: key}
}

func (s *KeyedStore) Load(ctx context.Context) ([]byte, error) {
	return s.kv.Get(ctx, s.key)
}

func (s *KeyedStore) Save(ctx context.Context, value []byte) error {
	return s.kv.Set(ctx, s.key, value)
}

func (s *KeyedStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}

var _ Store = (*KeyedStore)(nil)
