package repository

import (
	"testing"

	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/pkg/errors"
)

func TestEmotionRepositoryAddDuplicate(t *testing.T) {
	repo := NewEmotionRepository(newTestDB(t))

	if err := repo.Add(models.Emotion{Name: "Hopeful", Category: models.CategoryPositive}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	// Uniqueness is case-insensitive.
	err := repo.Add(models.Emotion{Name: "hopeful", Category: models.CategoryNeutral})
	if err != errors.ErrDuplicateEmotion {
		t.Errorf("got %v, want ErrDuplicateEmotion", err)
	}
}

func TestEmotionRepositoryGetAllSorted(t *testing.T) {
	repo := NewEmotionRepository(newTestDB(t))

	for _, em := range []models.Emotion{
		{Name: "zesty", Category: models.CategoryPositive},
		{Name: "Anxious", Category: models.CategoryNegative},
		{Name: "mellow", Category: models.CategoryNeutral},
	} {
		if err := repo.Add(em); err != nil {
			t.Fatal(err)
		}
	}

	emotions, err := repo.GetAll()
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}

	want := []string{"Anxious", "mellow", "zesty"}
	if len(emotions) != len(want) {
		t.Fatalf("got %d emotions", len(emotions))
	}
	for i, name := range want {
		if emotions[i].Name != name {
			t.Errorf("emotions[%d].Name = %q, want %q", i, emotions[i].Name, name)
		}
	}
}

func TestEmotionRepositoryUpdate(t *testing.T) {
	repo := NewEmotionRepository(newTestDB(t))

	if err := repo.Add(models.Emotion{Name: "Tense", Category: models.CategoryNegative}); err != nil {
		t.Fatal(err)
	}
	if err := repo.Add(models.Emotion{Name: "Calm", Category: models.CategoryPositive}); err != nil {
		t.Fatal(err)
	}

	// Recategorize without rename.
	if err := repo.Update("tense", models.Emotion{Name: "Tense", Category: models.CategoryNeutral}); err != nil {
		t.Errorf("recategorize: %v", err)
	}

	// Rename onto an existing name collides.
	err := repo.Update("Tense", models.Emotion{Name: "calm", Category: models.CategoryNeutral})
	if err != errors.ErrDuplicateEmotion {
		t.Errorf("got %v, want ErrDuplicateEmotion", err)
	}

	// Updating an absent preset fails.
	err = repo.Update("Missing", models.Emotion{Name: "Missing", Category: models.CategoryNeutral})
	if err != errors.ErrRecordNotFound {
		t.Errorf("got %v, want ErrRecordNotFound", err)
	}
}

func TestEmotionRepositoryDeleteAbsentIsNoop(t *testing.T) {
	repo := NewEmotionRepository(newTestDB(t))

	if err := repo.Delete("never-existed"); err != nil {
		t.Errorf("deleting an absent preset should be a no-op, got %v", err)
	}
}

func TestEmotionRepositoryEnsureDefaults(t *testing.T) {
	repo := NewEmotionRepository(newTestDB(t))

	seeded, err := repo.EnsureDefaults()
	if err != nil {
		t.Fatalf("EnsureDefaults: %v", err)
	}
	if seeded != len(defaultEmotions) {
		t.Errorf("seeded %d, want %d", seeded, len(defaultEmotions))
	}

	// Second call on a populated table seeds nothing.
	seeded, err = repo.EnsureDefaults()
	if err != nil {
		t.Fatal(err)
	}
	if seeded != 0 {
		t.Errorf("second call seeded %d, want 0", seeded)
	}
}

func TestEmotionRepositoryUpsertCategory(t *testing.T) {
	repo := NewEmotionRepository(newTestDB(t))

	if err := repo.UpsertCategory("Wistful", models.CategoryNeutral); err != nil {
		t.Fatalf("insert upsert: %v", err)
	}
	if err := repo.UpsertCategory("wistful", models.CategoryNegative); err != nil {
		t.Fatalf("update upsert: %v", err)
	}

	emotions, err := repo.GetAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(emotions) != 1 {
		t.Fatalf("got %d presets, want 1", len(emotions))
	}
	if emotions[0].Category != models.CategoryNegative {
		t.Errorf("category = %s, want negative", emotions[0].Category)
	}
}
