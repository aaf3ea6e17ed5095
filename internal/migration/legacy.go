package migration

import (
	"encoding/json"
	"strings"

	"github.com/amirk1998/moodlog/internal/models"
)

// Older builds stored an entry's emotions as a bare string array; newer
// builds store {name, category} objects. NormalizeEmotion coerces either
// shape into the canonical record so reads never see a mixed list.

type legacyEmotion struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// NormalizeEmotion coerces one legacy value into an Emotion. categories maps
// folded names to known categories (nil is fine); unknown names default to
// neutral. The second result is false for values that cannot be salvaged,
// which callers drop rather than fail on.
func NormalizeEmotion(raw json.RawMessage, categories map[string]models.EmotionCategory) (models.Emotion, bool) {
	// Bare string form
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		name = strings.TrimSpace(name)
		if name == "" {
			return models.Emotion{}, false
		}
		return models.Emotion{Name: name, Category: lookupCategory(name, categories)}, true
	}

	// Object form
	var obj legacyEmotion
	if err := json.Unmarshal(raw, &obj); err != nil {
		return models.Emotion{}, false
	}
	obj.Name = strings.TrimSpace(obj.Name)
	if obj.Name == "" {
		return models.Emotion{}, false
	}

	category := models.EmotionCategory(strings.ToLower(strings.TrimSpace(obj.Category)))
	if !category.Valid() {
		category = lookupCategory(obj.Name, categories)
	}
	return models.Emotion{Name: obj.Name, Category: category}, true
}

// NormalizeEmotionList coerces a stored emotions JSON array into canonical
// records, dropping unsalvageable elements and truncating to the per-entry
// cap. The second result reports whether the canonical form differs from
// the stored bytes.
func NormalizeEmotionList(raw []byte, categories map[string]models.EmotionCategory) ([]models.Emotion, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}

	normalized := make([]models.Emotion, 0, len(elems))
	changed := false
	for _, elem := range elems {
		em, ok := NormalizeEmotion(elem, categories)
		if !ok {
			changed = true
			continue
		}
		// A bare string element always needs rewriting.
		if len(elem) > 0 && elem[0] == '"' {
			changed = true
		}
		normalized = append(normalized, em)
	}

	if len(normalized) > models.MaxEmotionsPerEntry {
		normalized = normalized[:models.MaxEmotionsPerEntry]
		changed = true
	}

	// Detect object-form rows with a missing or invalid category.
	if !changed {
		var objs []legacyEmotion
		if err := json.Unmarshal(raw, &objs); err == nil {
			for i, obj := range objs {
				if i >= len(normalized) {
					break
				}
				if string(normalized[i].Category) != obj.Category {
					changed = true
					break
				}
			}
		}
	}

	return normalized, changed
}

func lookupCategory(name string, categories map[string]models.EmotionCategory) models.EmotionCategory {
	if categories != nil {
		if c, ok := categories[foldName(name)]; ok && c.Valid() {
			return c
		}
	}
	return models.CategoryNeutral
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
