// Package export produces CSV extracts of the journal for sharing with a
// therapist or external tools.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/pkg/errors"
)

// Field names one exportable column. The user picks an ordered subset.
type Field string

const (
	FieldTimestamp Field = "timestamp"
	FieldMood      Field = "mood"
	FieldEmotions  Field = "emotions"
	FieldContext   Field = "context"
	FieldEnergy    Field = "energy"
	FieldNotes     Field = "notes"
)

// timestampLayout is the local-time format used in exported rows.
const timestampLayout = "2006-01-02 15:04"

// ParseFields validates an ordered field selection.
func ParseFields(names []string) ([]Field, error) {
	if len(names) == 0 {
		return nil, errors.NewAppError(errors.ErrExportFailed, "no export fields selected", 400)
	}
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		f := Field(name)
		switch f {
		case FieldTimestamp, FieldMood, FieldEmotions, FieldContext, FieldEnergy, FieldNotes:
			fields = append(fields, f)
		default:
			return nil, errors.NewAppError(errors.ErrExportFailed, fmt.Sprintf("unknown export field %q", name), 400)
		}
	}
	return fields, nil
}

// CSV renders one header row plus one row per entry, in the order the
// entries are given (the store's default is timestamp descending).
// Array-valued fields are joined with "; "; values containing a comma,
// quote, or newline are quoted with internal quotes doubled.
func CSV(entries []*models.MoodEntry, fields []Field) string {
	var b strings.Builder

	header := make([]string, len(fields))
	for i, f := range fields {
		header[i] = string(f)
	}
	writeRow(&b, header)

	for _, entry := range entries {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = fieldValue(entry, f)
		}
		writeRow(&b, row)
	}

	return b.String()
}

func fieldValue(entry *models.MoodEntry, field Field) string {
	switch field {
	case FieldTimestamp:
		return entry.Time().Format(timestampLayout)
	case FieldMood:
		return strconv.Itoa(entry.Mood)
	case FieldEmotions:
		names := make([]string, len(entry.Emotions))
		for i, em := range entry.Emotions {
			names[i] = em.Name
		}
		return strings.Join(names, "; ")
	case FieldContext:
		return strings.Join(entry.ContextTags, "; ")
	case FieldEnergy:
		if entry.Energy == nil {
			return ""
		}
		return strconv.Itoa(*entry.Energy)
	case FieldNotes:
		return entry.Note
	}
	return ""
}

func writeRow(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(v))
	}
	b.WriteByte('\n')
}

// escape applies standard CSV quoting: values containing a comma, quote,
// or newline are wrapped in quotes with embedded quotes doubled.
func escape(v string) string {
	if !strings.ContainsAny(v, ",\"\n\r") {
		return v
	}
	return "\"" + strings.ReplaceAll(v, "\"", "\"\"") + "\""
}

// WriteFile writes the CSV to a uniquely named file in dir, going through
// a temporary file so a failed export never leaves a partial file behind.
func WriteFile(dir, csv string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := fmt.Sprintf("mood-export-%s.csv", uuid.NewString()[:8])
	finalPath := filepath.Join(dir, name)
	tmpPath := finalPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(csv), 0600); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to finalize export file: %w", err)
	}

	return finalPath, nil
}
