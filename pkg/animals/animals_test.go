package animals

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runtimeexceptions/server/pkg/testing/mocks"
	"github.com/runtimeexceptions/server/pkg/types"
)

var referenceAnimals = []*types.Animal{
	{Name: "sloth", MaxSpeed: 0.5},
	{Name: "chicken", MaxSpeed: 14},
	{Name: "cheetah", MaxSpeed: 120},
	{Name: "peregrine falcon", MaxSpeed: 390},
}

func storeWith(animals []*types.Animal) *Store {
	return NewStore(&mocks.MockDatabase{
		ListAnimalsFunc: func(ctx context.Context) ([]*types.Animal, error) {
			return animals, nil
		},
	})
}

func TestFasterPicksFromQualifyingSet(t *testing.T) {
	store := storeWith(referenceAnimals)

	// Selection is intentionally nondeterministic, so assert membership in
	// the qualifying set rather than a specific animal.
	for i := 0; i < 20; i++ {
		animal, err := store.Faster(context.Background(), 15)
		require.NoError(t, err)
		require.NotNil(t, animal)
		assert.Contains(t, []string{"cheetah", "peregrine falcon"}, animal.Name)
	}
}

func TestSlowerPicksFromQualifyingSet(t *testing.T) {
	store := storeWith(referenceAnimals)

	for i := 0; i < 20; i++ {
		animal, err := store.Slower(context.Background(), 15)
		require.NoError(t, err)
		require.NotNil(t, animal)
		assert.Contains(t, []string{"sloth", "chicken"}, animal.Name)
	}
}

func TestNoQualifyingAnimalReturnsNil(t *testing.T) {
	store := storeWith(referenceAnimals)

	faster, err := store.Faster(context.Background(), 500)
	require.NoError(t, err)
	assert.Nil(t, faster)

	slower, err := store.Slower(context.Background(), 0.1)
	require.NoError(t, err)
	assert.Nil(t, slower)
}

func TestImportCSV(t *testing.T) {
	var stored []*types.Animal
	store := NewStore(&mocks.MockDatabase{
		SetAnimalFunc: func(ctx context.Context, animal *types.Animal) error {
			stored = append(stored, animal)
			return nil
		},
	})

	csvData := "name,max_speed\nsloth,0.5\ncheetah,120\n"
	count, err := store.ImportCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, stored, 2)
	assert.Equal(t, "sloth", stored[0].Name)
	assert.Equal(t, 120.0, stored[1].MaxSpeed)
}

func TestImportCSVBadHeader(t *testing.T) {
	store := NewStore(&mocks.MockDatabase{})

	_, err := store.ImportCSV(context.Background(), strings.NewReader("animal,speed\nsloth,0.5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_speed")
}
