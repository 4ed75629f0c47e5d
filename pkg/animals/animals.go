// Package animals holds the reference table of animal top speeds used by the
// comparison command.
package animals

import (
	"context"
	"math/rand"

	shared "github.com/runtimeexceptions/server/pkg"
	"github.com/runtimeexceptions/server/pkg/types"
)

// Store picks comparison animals from the reference table. Selection is
// uniformly random and unseeded on purpose: the "fun fact" output is meant
// to vary between runs.
type Store struct {
	DB shared.Database
}

func NewStore(db shared.Database) *Store {
	return &Store{DB: db}
}

// Faster returns a random animal whose max speed is strictly greater than
// kph, or nil when none qualifies.
func (s *Store) Faster(ctx context.Context, kph float64) (*types.Animal, error) {
	return s.pick(ctx, func(a *types.Animal) bool { return a.MaxSpeed > kph })
}

// Slower returns a random animal whose max speed is strictly less than kph,
// or nil when none qualifies.
func (s *Store) Slower(ctx context.Context, kph float64) (*types.Animal, error) {
	return s.pick(ctx, func(a *types.Animal) bool { return a.MaxSpeed < kph })
}

func (s *Store) pick(ctx context.Context, qualifies func(*types.Animal) bool) (*types.Animal, error) {
	all, err := s.DB.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*types.Animal
	for _, a := range all {
		if qualifies(a) {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[rand.Intn(len(candidates))], nil
}
