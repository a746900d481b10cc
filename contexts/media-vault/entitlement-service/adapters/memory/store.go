package memory

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/entities"
	domainerrors "github.com/00kaito/DevBytes/contexts/media-vault/entitlement-service/domain/errors"
)

type storedObject struct {
	metadata entities.ObjectMetadata
	content  []byte
}

type Store struct {
	mu sync.RWMutex

	objects   map[string]storedObject
	downloads []entities.DownloadRecord
}

func NewStore(seed []entities.ObjectMetadata) *Store {
	objects := make(map[string]storedObject, len(seed))
	for _, item := range seed {
		objects[item.Path] = storedObject{metadata: item}
	}
	return &Store{objects: objects}
}

func (s *Store) GetMetadata(_ context.Context, path string) (entities.ObjectMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.objects[strings.TrimSpace(path)]
	if !exists {
		return entities.ObjectMetadata{}, domainerrors.ErrObjectNotFound
	}
	return item.metadata, nil
}

func (s *Store) WriteObject(_ context.Context, metadata entities.ObjectMetadata, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	metadata.Size = int64(len(data))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[metadata.Path] = storedObject{metadata: metadata, content: data}
	return nil
}

func (s *Store) OpenObject(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.objects[strings.TrimSpace(path)]
	if !exists {
		return nil, domainerrors.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(item.content)), nil
}

func (s *Store) RecordDownload(_ context.Context, record entities.DownloadRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.downloads = append(s.downloads, record)
	return nil
}

// Downloads returns a copy of the audit log for assertions.
func (s *Store) Downloads() []entities.DownloadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]entities.DownloadRecord(nil), s.downloads...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
