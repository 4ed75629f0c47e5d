package animals

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/runtimeexceptions/server/pkg/types"
)

// ImportCSV loads animal rows from CSV data with a "name,max_speed" header.
// Existing animals with the same name are overwritten. Returns the number of
// rows imported.
func (s *Store) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	nameIdx, speedIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			nameIdx = i
		case "max_speed":
			speedIdx = i
		}
	}
	if nameIdx == -1 || speedIdx == -1 {
		return 0, fmt.Errorf("CSV header must contain name and max_speed columns, got %v", header)
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read CSV row: %w", err)
		}

		name := strings.TrimSpace(record[nameIdx])
		if name == "" {
			continue
		}
		speed, err := strconv.ParseFloat(strings.TrimSpace(record[speedIdx]), 64)
		if err != nil {
			return count, fmt.Errorf("invalid max_speed for %q: %w", name, err)
		}

		if err := s.DB.SetAnimal(ctx, &types.Animal{Name: name, MaxSpeed: speed}); err != nil {
			return count, fmt.Errorf("failed to store animal %q: %w", name, err)
		}
		count++
	}

	return count, nil
}
