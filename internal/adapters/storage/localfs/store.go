package localfs

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/pkg/errors"

	"github.com/phenrril/fashionshop/internal/domain"
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store keeps one file per key under dir. Writes go through a temp file and a
// rename so a crash never leaves a half-written value behind.
type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "localfs: crear directorio")
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", errors.Wrapf(domain.ErrValidation, "localfs: clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "localfs: leer %s", key)
	}
	return b, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return errors.Wrapf(err, "localfs: escribir %s", key)
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "localfs: escribir %s", key)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "localfs: sync %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "localfs: cerrar %s", key)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "localfs: renombrar %s", key)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "localfs: borrar %s", key)
	}
	return nil
}
