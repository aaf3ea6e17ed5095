package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		in      []string
		wantErr bool
	}{
		{"all known fields", []string{"timestamp", "mood", "emotions", "context", "energy", "notes"}, false},
		{"subset keeps order", []string{"mood", "timestamp"}, false},
		{"unknown field", []string{"mood", "location"}, true},
		{"empty selection", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ParseFields(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(fields) != len(tt.in) {
				t.Errorf("got %d fields, want %d", len(fields), len(tt.in))
			}
		})
	}
}

func TestCSVEscaping(t *testing.T) {
	energy := 7
	entry := &models.MoodEntry{
		Mood:      8,
		Timestamp: time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local).UnixMilli(),
		Note:      "felt \"great\", mostly",
		Energy:    &energy,
		Emotions: []models.Emotion{
			{Name: "happy", Category: models.CategoryPositive},
			{Name: "calm", Category: models.CategoryPositive},
		},
		ContextTags: []string{"work", "exercise"},
	}

	fields := []Field{FieldTimestamp, FieldMood, FieldEmotions, FieldContext, FieldEnergy, FieldNotes}
	got := CSV([]*models.MoodEntry{entry}, fields)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}

	if lines[0] != "timestamp,mood,emotions,context,energy,notes" {
		t.Errorf("header = %q", lines[0])
	}

	want := `2024-03-15 09:30,8,happy; calm,work; exercise,7,"felt ""great"", mostly"`
	if lines[1] != want {
		t.Errorf("row = %q, want %q", lines[1], want)
	}
}

func TestCSVNilEnergyAndEmptyArrays(t *testing.T) {
	entry := &models.MoodEntry{
		Mood:      5,
		Timestamp: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local).UnixMilli(),
	}

	got := CSV([]*models.MoodEntry{entry}, []Field{FieldMood, FieldEnergy, FieldEmotions})

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[1] != "5,," {
		t.Errorf("row = %q, want %q", lines[1], "5,,")
	}
}

func TestCSVNewlineInNote(t *testing.T) {
	entry := &models.MoodEntry{
		Mood:      4,
		Timestamp: time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local).UnixMilli(),
		Note:      "line one\nline two",
	}

	got := CSV([]*models.MoodEntry{entry}, []Field{FieldNotes})

	if !strings.Contains(got, "\"line one\nline two\"") {
		t.Errorf("multiline note should be quoted, got %q", got)
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteFile(dir, "mood\n5\n")
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("file written to %s, want inside %s", path, dir)
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Errorf("file name %s should end in .csv", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "mood\n5\n" {
		t.Errorf("content = %q", string(data))
	}

	// No temp file left behind.
	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}
