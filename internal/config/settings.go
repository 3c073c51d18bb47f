package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoSettingsFile is returned by LoadSettings when the file does not exist
// yet. The returned Settings is still usable and Save creates the file.
var ErrNoSettingsFile = errors.New("config: no settings file")

// line is one line of the settings file. Comments, blank lines and lines
// without '=' keep their raw text so Save writes them back unchanged.
type line struct {
	key   string
	value string
	raw   string
	entry bool
}

// Settings is a flat key=value file. Keys the game does not know about are
// kept and written back on Save.
type Settings struct {
	path  string
	lines []line
	index map[string]int
}

// NewSettings returns an empty store that saves to path.
func NewSettings(path string) *Settings {
	return &Settings{path: path, index: make(map[string]int)}
}

// LoadSettings reads the settings file at path.
func LoadSettings(path string) (*Settings, error) {
	s := NewSettings(path)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, ErrNoSettingsFile
	}
	if err != nil {
		return s, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	if err := s.parse(f); err != nil {
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) parse(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := sc.Text()
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			s.lines = append(s.lines, line{raw: text})
			continue
		}
		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			s.lines = append(s.lines, line{raw: text})
			continue
		}
		s.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return sc.Err()
}

// Path returns the file the settings save to.
func (s *Settings) Path() string { return s.path }

// Get returns the value stored for key.
func (s *Settings) Get(key string) (string, bool) {
	i, ok := s.index[key]
	if !ok {
		return "", false
	}
	return s.lines[i].value, true
}

// Set stores value for key. A key seen twice in the file keeps its first
// position and the last value.
func (s *Settings) Set(key, value string) {
	if i, ok := s.index[key]; ok {
		s.lines[i].value = value
		return
	}
	s.index[key] = len(s.lines)
	s.lines = append(s.lines, line{key: key, value: value, entry: true})
}

// WriteTo writes the file contents to w.
func (s *Settings) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	for _, l := range s.lines {
		text := l.raw
		if l.entry {
			text = l.key + "=" + l.value
		}
		m, err := bw.WriteString(text + "\n")
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Save writes the settings to their path. The file is replaced atomically so
// a crash never leaves it half written.
func (s *Settings) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := s.WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("save settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// UserSettingsPath returns the settings file for a named user under dir.
// Characters outside [A-Za-z0-9_-] are replaced so a username can never
// escape dir.
func UserSettingsPath(dir, username string) string {
	var b strings.Builder
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "anonymous"
	}
	return filepath.Join(dir, name+".conf")
}
