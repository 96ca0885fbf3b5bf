package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/studynotes/internal/dbx"
	"github.com/dmitrijs2005/studynotes/internal/logging"
	"github.com/dmitrijs2005/studynotes/internal/server/config"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/studynotes/internal/server/repositories/repotest"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.SessionValidityDuration = time.Hour
	return cfg
}

type env struct {
	db    *sql.DB
	rm    repomanager.RepositoryManager
	cfg   *config.Config
	users *UserService
	docs  *DocumentService
	store *memStore
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := repotest.OpenSQLite(t)
	rm := repomanager.NewSQLRepositoryManager(dbx.DialectSQLite)
	cfg := testConfig()
	store := newMemStore()
	return &env{
		db:    db,
		rm:    rm,
		cfg:   cfg,
		users: NewUserService(db, rm, cfg, logging.Nop()),
		docs:  NewDocumentService(db, rm, store, cfg, logging.Nop()),
		store: store,
	}
}

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) Put(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStore) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
