package chanconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chanstruct/chanstruct/chanerr"
)

// Preset is a named, file-storable analyzer configuration: one instrument
// or timeframe's worth of overrides on top of the package defaults. It
// aliases the same struct LoadYAML/LoadTOML decode into, so a preset reads
// and writes with exactly the same field names as a standalone config file.
type Preset = fileConfig

// DefaultPreset returns a Preset pre-filled with the package defaults, for
// callers building a new entry from scratch.
func DefaultPreset() Preset { return defaultFileConfig() }

// Parse validates a Preset into a usable Config, the same parsing LoadYAML
// and LoadTOML apply to a freestanding file.
func (p Preset) Parse() (Config, error) { return parse(p) }

// PresetFile is the on-disk layout of a named collection of presets,
// keyed by whatever the caller uses to identify an instrument+level pair.
type PresetFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// PresetStore reads and writes a PresetFile at a fixed path, backing up the
// previous version before every write and replacing the file atomically so
// a crash mid-write never leaves a truncated file behind.
type PresetStore struct {
	path string
	mu   sync.RWMutex
}

// NewPresetStore returns a store bound to path. The file need not exist yet;
// Read returns an empty PresetFile until the first Write.
func NewPresetStore(path string) *PresetStore {
	return &PresetStore{path: path}
}

// Path returns the path the store was constructed with.
func (s *PresetStore) Path() string { return s.path }

// Read loads the current PresetFile.
func (s *PresetStore) Read() (*PresetFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &PresetFile{Presets: make(map[string]Preset)}, nil
		}
		return nil, chanerr.Newf(chanerr.ConfigError, "read preset file: %v", err)
	}
	var pf PresetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, chanerr.Newf(chanerr.ConfigError, "decode preset file: %v", err)
	}
	if pf.Presets == nil {
		pf.Presets = make(map[string]Preset)
	}
	return &pf, nil
}

// Write replaces the preset file's contents, keeping a timestamped backup
// of whatever was there before.
func (s *PresetStore) Write(pf *PresetFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backup(); err != nil {
		return chanerr.Newf(chanerr.ConfigError, "backup preset file: %v", err)
	}

	data, err := yaml.Marshal(pf)
	if err != nil {
		return chanerr.Newf(chanerr.ConfigError, "marshal preset file: %v", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return chanerr.Newf(chanerr.ConfigError, "write temp preset file: %v", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return chanerr.Newf(chanerr.ConfigError, "replace preset file: %v", err)
	}
	return nil
}

func (s *PresetStore) backup() error {
	src, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer src.Close()

	dir := filepath.Join(filepath.Dir(s.path), "backups")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	backupPath := filepath.Join(dir, fmt.Sprintf("presets_%s.yaml", time.Now().Format("20060102_150405")))
	dst, err := os.Create(backupPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	s.pruneBackups(dir, 10)
	return nil
}

func (s *PresetStore) pruneBackups(dir string, keep int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	var backups []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "presets_") && strings.HasSuffix(e.Name(), ".yaml") {
			backups = append(backups, filepath.Join(dir, e.Name()))
		}
	}
	if len(backups) <= keep {
		return
	}
	for _, stale := range backups[:len(backups)-keep] {
		os.Remove(stale)
	}
}

// Resolve reads the store and parses the named preset into a Config.
func (s *PresetStore) Resolve(name string) (Config, error) {
	pf, err := s.Read()
	if err != nil {
		return Config{}, err
	}
	p, ok := pf.Presets[name]
	if !ok {
		return Config{}, chanerr.Newf(chanerr.ParaError, "preset %q not found", name)
	}
	return p.Parse()
}

// Put adds or replaces a named preset and writes the file.
func (s *PresetStore) Put(name string, p Preset) error {
	pf, err := s.Read()
	if err != nil {
		return err
	}
	if pf.Presets == nil {
		pf.Presets = make(map[string]Preset)
	}
	pf.Presets[name] = p
	return s.Write(pf)
}

// Delete removes a named preset and writes the file.
func (s *PresetStore) Delete(name string) error {
	pf, err := s.Read()
	if err != nil {
		return err
	}
	if _, ok := pf.Presets[name]; !ok {
		return chanerr.Newf(chanerr.ParaError, "preset %q not found", name)
	}
	delete(pf.Presets, name)
	return s.Write(pf)
}
