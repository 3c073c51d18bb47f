package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rockfall.conf")

	s, err := LoadSettings(path)
	if !errors.Is(err, ErrNoSettingsFile) {
		t.Fatalf("Expected ErrNoSettingsFile, got %v", err)
	}
	s.Set("difficulty", "hard")
	if err := s.Save(); err != nil {
		t.Fatalf("Expected save to create the file, got %v", err)
	}

	again, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, _ := again.Get("difficulty"); v != "hard" {
		t.Errorf("Expected hard, got %q", v)
	}
}

func TestSettings_PreservesCommentsAndUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rockfall.conf")
	in := "# rockfall settings\n" +
		"difficulty = easy\n" +
		"\n" +
		"favourite_colour=teal\n" +
		"garbage line\n" +
		"sound_volume=0.5\n"
	if err := os.WriteFile(path, []byte(in), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v, ok := s.Get("difficulty"); !ok || v != "easy" {
		t.Errorf("Expected trimmed value easy, got %q", v)
	}
	s.Set("sound_volume", "0.9")
	s.Set("music_volume", "0.1")
	if err := s.Save(); err != nil {
		t.Fatalf("Unexpected save error: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "# rockfall settings\n" +
		"difficulty=easy\n" +
		"\n" +
		"favourite_colour=teal\n" +
		"garbage line\n" +
		"sound_volume=0.9\n" +
		"music_volume=0.1\n"
	if string(out) != want {
		t.Errorf("Unexpected file contents:\n%s\nwant:\n%s", out, want)
	}
}

func TestSettings_DuplicateKeyLastWins(t *testing.T) {
	s := NewSettings("unused")
	if err := s.parse(strings.NewReader("a=1\nb=2\na=3\n")); err != nil {
		t.Fatal(err)
	}
	if v, _ := s.Get("a"); v != "3" {
		t.Errorf("Expected last value 3, got %q", v)
	}
	var b strings.Builder
	if _, err := s.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	if b.String() != "a=3\nb=2\n" {
		t.Errorf("Expected first position kept, got %q", b.String())
	}
}

func TestSettings_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewSettings(filepath.Join(dir, "rockfall.conf"))
	s.Set("k", "v")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the settings file, got %d entries", len(entries))
	}
}

func TestUserSettingsPath(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice.conf"},
		{"../../etc/passwd", "______etc_passwd.conf"},
		{"", "anonymous.conf"},
	}
	for _, tt := range tests {
		got := UserSettingsPath("/srv", tt.user)
		if got != filepath.Join("/srv", tt.want) {
			t.Errorf("UserSettingsPath(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ROCKFALL_TEST_VALUE", "set")
	if got := GetEnv("ROCKFALL_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("Expected set, got %q", got)
	}
	if got := GetEnv("ROCKFALL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ROCKFALL_TEST_INT", "42")
	if n, ok, err := GetEnvInt("ROCKFALL_TEST_INT"); err != nil || !ok || n != 42 {
		t.Errorf("Expected 42, got %d %v %v", n, ok, err)
	}

	t.Setenv("ROCKFALL_TEST_INT", "forty")
	if _, ok, err := GetEnvInt("ROCKFALL_TEST_INT"); err == nil || ok {
		t.Error("Expected a parse error")
	}

	if _, ok, err := GetEnvInt("ROCKFALL_TEST_UNSET"); err != nil || ok {
		t.Errorf("Expected unset, got %v %v", ok, err)
	}
}
