package lock

import (
	"context"
	"sync"
	"time"

	"github.com/fatflowers/letterpay/pkg/tool"
)

type lease struct {
	token     string
	expiresAt time.Time
}

// LocalLocker is an in-process Locker for single-instance deployments.
type LocalLocker struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{leases: make(map[string]lease), now: time.Now}
}

func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := validate(key, ttl); err != nil {
		return "", false, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cur, ok := l.leases[key]; ok && now.Before(cur.expiresAt) {
		return "", false, nil
	}
	token := tool.GenerateToken()
	l.leases[key] = lease{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *LocalLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cur, ok := l.leases[key]; ok && cur.token == token {
		delete(l.leases, key)
	}
	return nil
}
