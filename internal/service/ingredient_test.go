package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/culina/backend/internal/models"
	"github.com/culina/backend/internal/testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientService(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")

		stored, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "i1", Name: "Egg", Quantity: "6", Unit: "pcs"})
		require.NoError(t, err)
		assert.Equal(t, "i1", stored.ID)

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Egg", list[0].Name)
		assert.Equal(t, "6", list[0].Quantity)
		assert.Equal(t, "pcs", list[0].Unit)
	})

	t.Run("generates an id when empty", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")

		stored, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{Name: "Salt"})
		require.NoError(t, err)
		_, err = uuid.Parse(stored.ID)
		assert.NoError(t, err)
	})

	t.Run("upsert replaces in place", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")

		_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "a", Name: "Egg", Quantity: "6"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		_, err = s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "b", Name: "Milk", Quantity: "1"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		first, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "a", Name: "Egg", Quantity: "12"})
		require.NoError(t, err)
		assert.True(t, first.UpdatedAt.After(first.CreatedAt))

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].ID)
		assert.Equal(t, "12", list[0].Quantity)
		assert.Equal(t, "b", list[1].ID)
	})

	t.Run("upsert is idempotent", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")
		ing := &models.Ingredient{ID: "a", Name: "Egg", Quantity: "6"}

		_, err := s.ingredients.UpsertIngredient(ctx, u1, ing)
		require.NoError(t, err)
		_, err = s.ingredients.UpsertIngredient(ctx, u1, ing)
		require.NoError(t, err)

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("delete removes only the target", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")
		for _, id := range []string{"a", "b", "c"} {
			_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: id, Name: id})
			require.NoError(t, err)
		}

		require.NoError(t, s.ingredients.DeleteIngredient(ctx, u1, "b"))
		require.NoError(t, s.ingredients.DeleteIngredient(ctx, u1, "missing"))

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		ids := []string{}
		for _, ing := range list {
			ids = append(ids, ing.ID)
		}
		assert.ElementsMatch(t, []string{"a", "c"}, ids)
	})

	t.Run("users are isolated", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")
		u2 := testhelpers.CreateTestUser(t, s.db, "u2")

		_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "egg", Name: "Egg"})
		require.NoError(t, err)
		_, err = s.ingredients.UpsertIngredient(ctx, u2, &models.Ingredient{ID: "egg", Name: "Duck egg"})
		require.NoError(t, err)

		require.NoError(t, s.ingredients.DeleteIngredient(ctx, u2, "egg"))

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Egg", list[0].Name)
	})

	t.Run("missing profile", func(t *testing.T) {
		s := newTestStores(t)
		ghost := uuid.New()

		list, err := s.ingredients.ListIngredients(ctx, ghost)
		require.NoError(t, err)
		assert.Empty(t, list)

		_, err = s.ingredients.UpsertIngredient(ctx, ghost, &models.Ingredient{ID: "a", Name: "Egg"})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, s.ingredients.DeleteIngredient(ctx, ghost, "a"), ErrNotFound)
	})

	t.Run("name is required", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")

		_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "a", Name: "  "})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("id longer than the column is rejected", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")

		_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: strings.Repeat("x", 129), Name: "Egg"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		stored, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: strings.Repeat("x", 128), Name: "Egg"})
		require.NoError(t, err)
		assert.Len(t, stored.ID, 128)
	})

	t.Run("get", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")
		u2 := testhelpers.CreateTestUser(t, s.db, "u2")
		_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "a", Name: "Egg"})
		require.NoError(t, err)

		got, err := s.ingredients.GetIngredient(ctx, u1, "a")
		require.NoError(t, err)
		assert.Equal(t, "Egg", got.Name)

		_, err = s.ingredients.GetIngredient(ctx, u1, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.ingredients.GetIngredient(ctx, u2, "a")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set image", func(t *testing.T) {
		s := newTestStores(t)
		u1 := testhelpers.CreateTestUser(t, s.db, "u1")
		_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "a", Name: "Egg"})
		require.NoError(t, err)

		require.NoError(t, s.ingredients.SetIngredientImage(ctx, u1, "a", "ingredients/x"))
		assert.ErrorIs(t, s.ingredients.SetIngredientImage(ctx, u1, "missing", "ingredients/y"), ErrNotFound)

		list, err := s.ingredients.ListIngredients(ctx, u1)
		require.NoError(t, err)
		assert.Equal(t, "ingredients/x", list[0].Image)
	})
}

// The pantry scenario: add an egg, replace it, remove it.
func TestIngredientScenario(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)
	u1 := testhelpers.CreateTestUser(t, s.db, "u1")

	_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "1", Name: "Egg", Quantity: "6", Unit: "pcs"})
	require.NoError(t, err)
	list, err := s.ingredients.ListIngredients(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "6", list[0].Quantity)

	_, err = s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{ID: "1", Name: "Egg", Quantity: "12", Unit: "pcs"})
	require.NoError(t, err)
	list, err = s.ingredients.ListIngredients(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "12", list[0].Quantity)

	require.NoError(t, s.ingredients.DeleteIngredient(ctx, u1, "1"))
	list, err = s.ingredients.ListIngredients(ctx, u1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestConcurrentIngredientUpserts(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(t)
	u1 := testhelpers.CreateTestUser(t, s.db, "u1")

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.ingredients.UpsertIngredient(ctx, u1, &models.Ingredient{
				ID:   fmt.Sprintf("ing-%d", i),
				Name: fmt.Sprintf("Ingredient %d", i),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := s.ingredients.ListIngredients(ctx, u1)
	require.NoError(t, err)
	assert.Len(t, list, n)
}
