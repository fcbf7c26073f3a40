/**
* Name: 			profile_store.go
* Description: 		대화 프로필 레지스트리 (JSON 파일)
* Workflow: 		로드, 저장, 생성, 삭제, 조회
 */

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"VoiceChatRelay/internal/models"
	"VoiceChatRelay/internal/voice"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageGenerator returns an image URL for a prompt, or "" when it could not produce one.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) string
}

type ProfileStore struct {
	path   string
	images ImageGenerator
	logger *zap.SugaredLogger
	newID  func() string

	// mu serializes mutation + persist; readers take RLock.
	mu       sync.RWMutex
	profiles map[string]models.ChatProfile
	order    []string
}

func NewProfileStore(path string, images ImageGenerator, logger *zap.SugaredLogger) *ProfileStore {
	s := &ProfileStore{
		path:   path,
		images: images,
		logger: logger,
		newID:  func() string { return uuid.New().String() },
	}
	s.reset()
	return s
}

// reset leaves only the default profile. Caller holds mu (or owns s exclusively).
func (s *ProfileStore) reset() {
	def := models.NewChatProfile(models.DefaultProfileID, "", voice.Default, "")
	s.profiles = map[string]models.ChatProfile{def.ID: def}
	s.order = []string{def.ID}
}

// persistedEntry is either a legacy bare prompt string or a structured record.
type persistedEntry struct {
	legacy *string
	record *persistedProfile
}

type persistedProfile struct {
	Prompt   string `json:"prompt"`
	Voice    string `json:"voice,omitempty"`
	ImageURL string `json:"image_url"`
}

func (e *persistedEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var prompt string
		if err := json.Unmarshal(data, &prompt); err != nil {
			return err
		}
		e.legacy = &prompt
		return nil
	}
	var rec persistedProfile
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	e.record = &rec
	return nil
}

// normalize turns either variant into the canonical profile shape.
func (e persistedEntry) normalize(id string) models.ChatProfile {
	var prompt, v, image string
	switch {
	case e.legacy != nil:
		prompt = *e.legacy
	case e.record != nil:
		prompt, v, image = e.record.Prompt, e.record.Voice, e.record.ImageURL
	}
	if v == "" {
		v = voice.Select(prompt)
	}
	return models.NewChatProfile(id, prompt, v, image)
}

// Load replaces the registry with the file contents. A missing file is not an
// error. A malformed file leaves only the default profile and returns a
// *PersistenceError.
func (s *ProfileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Infof("ProfileStore.Load(): %s not found, starting with default profile only", s.path)
		return nil
	}
	if err != nil {
		return &PersistenceError{Op: "read", Path: s.path, Err: err}
	}

	ids, entries, err := decodeOrdered(data)
	if err != nil {
		s.logger.Errorf("ProfileStore.Load(): malformed registry %s: %v", s.path, err)
		return &PersistenceError{Op: "parse", Path: s.path, Err: err}
	}

	for i, id := range ids {
		if id == models.DefaultProfileID {
			continue
		}
		if _, dup := s.profiles[id]; !dup {
			s.order = append(s.order, id)
		}
		s.profiles[id] = entries[i].normalize(id)
	}
	s.logger.Infof("ProfileStore.Load(): loaded %d profiles from %s", len(s.order)-1, s.path)
	return nil
}

// decodeOrdered reads a JSON object keeping the key order of the file.
func decodeOrdered(data []byte) ([]string, []persistedEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var ids []string
	var entries []persistedEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		id, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", tok)
		}
		var entry persistedEntry
		if err := dec.Decode(&entry); err != nil {
			return nil, nil, fmt.Errorf("entry %q: %w", id, err)
		}
		ids = append(ids, id)
		entries = append(entries, entry)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, nil, errors.New("trailing data after registry object")
	}
	return ids, entries, nil
}

// Save writes the whole registry, minus the default profile and any profile
// without a resolved voice.
func (s *ProfileStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked()
}

func (s *ProfileStore) saveLocked() error {
	var buf bytes.Buffer
	buf.WriteString("{")
	first := true
	for _, id := range s.order {
		p := s.profiles[id]
		if id == models.DefaultProfileID || p.Voice == "" {
			continue
		}
		key, _ := json.Marshal(id)
		val, err := json.MarshalIndent(persistedProfile{Prompt: p.Prompt, Voice: p.Voice, ImageURL: p.ImageURL}, "  ", "  ")
		if err != nil {
			return &PersistenceError{Op: "encode", Path: s.path, Err: err}
		}
		if !first {
			buf.WriteString(",")
		}
		first = false
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if !first {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")

	if err := writeFileAtomic(s.path, buf.Bytes()); err != nil {
		return &PersistenceError{Op: "write", Path: s.path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Create builds and persists a new profile. The image job may block for up
// to about a minute; it runs before the write lock is taken.
func (s *ProfileStore) Create(ctx context.Context, prompt string) (models.ChatProfile, error) {
	v := voice.Select(prompt)

	image := ""
	if s.images != nil {
		image = s.images.GenerateImage(ctx, prompt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	for {
		if _, taken := s.profiles[id]; !taken && id != models.DefaultProfileID {
			break
		}
		id = s.newID()
	}

	profile := models.NewChatProfile(id, prompt, v, image)
	s.profiles[id] = profile
	s.order = append(s.order, id)

	if err := s.saveLocked(); err != nil {
		delete(s.profiles, id)
		s.order = s.order[:len(s.order)-1]
		s.logger.Errorf("ProfileStore.Create(): persist failed, rolled back %s: %v", id, err)
		return models.ChatProfile{}, err
	}

	s.logger.Infof("ProfileStore.Create(): created %s (voice=%s, image=%t)", id, v, image != "")
	return profile, nil
}

// Delete removes a profile. It reports false for unknown ids and for the
// default profile, leaving the registry untouched.
func (s *ProfileStore) Delete(id string) (bool, error) {
	if id == models.DefaultProfileID {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return false, nil
	}

	idx := indexOf(s.order, id)
	delete(s.profiles, id)
	s.order = append(s.order[:idx:idx], s.order[idx+1:]...)

	if err := s.saveLocked(); err != nil {
		s.profiles[id] = profile
		s.order = append(s.order[:idx], append([]string{id}, s.order[idx:]...)...)
		s.logger.Errorf("ProfileStore.Delete(): persist failed, restored %s: %v", id, err)
		return false, err
	}

	s.logger.Infof("ProfileStore.Delete(): deleted %s", id)
	return true, nil
}

func indexOf(list []string, id string) int {
	for i, v := range list {
		if v == id {
			return i
		}
	}
	return -1
}

func (s *ProfileStore) Get(id string) (models.ChatProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	return p, ok
}

// List returns display data in registry order, default first.
func (s *ProfileStore) List() []models.ProfileSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.ProfileSummary, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.profiles[id].Summary())
	}
	return list
}
