package migration

import (
	"encoding/json"
	"testing"

	"github.com/amirk1998/moodlog/internal/models"
)

func TestNormalizeEmotion(t *testing.T) {
	categories := map[string]models.EmotionCategory{
		"happy": models.CategoryPositive,
	}

	tests := []struct {
		name   string
		raw    string
		want   models.Emotion
		wantOK bool
	}{
		{
			name:   "bare string with known category",
			raw:    `"happy"`,
			want:   models.Emotion{Name: "happy", Category: models.CategoryPositive},
			wantOK: true,
		},
		{
			name:   "bare string unknown defaults to neutral",
			raw:    `"bewildered"`,
			want:   models.Emotion{Name: "bewildered", Category: models.CategoryNeutral},
			wantOK: true,
		},
		{
			name:   "object form keeps its category",
			raw:    `{"name":"anxious","category":"negative"}`,
			want:   models.Emotion{Name: "anxious", Category: models.CategoryNegative},
			wantOK: true,
		},
		{
			name:   "object with bad category falls back to lookup",
			raw:    `{"name":"happy","category":"wild"}`,
			want:   models.Emotion{Name: "happy", Category: models.CategoryPositive},
			wantOK: true,
		},
		{
			name:   "whitespace name is unsalvageable",
			raw:    `"   "`,
			wantOK: false,
		},
		{
			name:   "garbage is unsalvageable",
			raw:    `42`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeEmotion(json.RawMessage(tt.raw), categories)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmotionListMixedShapes(t *testing.T) {
	raw := []byte(`["happy",{"name":"anxious","category":"negative"}]`)

	got, changed := NormalizeEmotionList(raw, nil)

	if !changed {
		t.Error("a list containing bare strings must report changed")
	}
	want := []models.Emotion{
		{Name: "happy", Category: models.CategoryNeutral},
		{Name: "anxious", Category: models.CategoryNegative},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d emotions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("emotion %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNormalizeEmotionListCanonicalIsNoop(t *testing.T) {
	raw := []byte(`[{"name":"happy","category":"positive"}]`)

	got, changed := NormalizeEmotionList(raw, nil)

	if changed {
		t.Error("an already canonical list must not report changed")
	}
	if len(got) != 1 || got[0].Name != "happy" {
		t.Errorf("got %+v", got)
	}
}

func TestNormalizeEmotionListTruncates(t *testing.T) {
	raw := []byte(`[{"name":"a","category":"neutral"},{"name":"b","category":"neutral"},{"name":"c","category":"neutral"},{"name":"d","category":"neutral"}]`)

	got, changed := NormalizeEmotionList(raw, nil)

	if len(got) != models.MaxEmotionsPerEntry {
		t.Errorf("got %d emotions, want cap of %d", len(got), models.MaxEmotionsPerEntry)
	}
	if !changed {
		t.Error("truncation must report changed")
	}
}

func TestNormalizeEmotionListBadJSON(t *testing.T) {
	got, changed := NormalizeEmotionList([]byte(`not json`), nil)

	if got != nil || changed {
		t.Errorf("unreadable column should yield (nil, false), got (%v, %v)", got, changed)
	}
}
