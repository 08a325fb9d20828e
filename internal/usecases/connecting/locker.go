package connecting

import (
	"context"
	"fmt"
	"sync"
)

// Locker serializa a sincronização de um mesmo par (usuário, instituição).
// A função devolvida libera o lock e pode ser chamada mais de uma vez.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

func lockKey(userID int, institutionName string) string {
	return fmt.Sprintf("connect:%d:%s", userID, institutionName)
}

// KeyedMutex é o Locker em memória, suficiente para uma única instância da API
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
}

type keyedEntry struct {
	sem  chan struct{}
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyedEntry),
	}
}

func (k *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyedEntry{sem: make(chan struct{}, 1)}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.sem
				k.release(key, entry)
			})
		}, nil
	case <-ctx.Done():
		k.release(key, entry)
		return nil, ctx.Err()
	}
}

func (k *KeyedMutex) release(key string, entry *keyedEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
}
