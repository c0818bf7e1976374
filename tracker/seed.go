package tracker

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
)

// Dataset holds payloads to seed, keyed by resource name.
type Dataset map[string][]map[string]interface{}

// LoadDataset decodes a JSON dataset: an object mapping resource names to
// lists of payloads.
func LoadDataset(r io.Reader) (Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("tracker: invalid dataset: %w", err)
	}
	for name := range d {
		if Schema(name) == nil {
			return nil, fmt.Errorf("tracker: invalid dataset: unknown resource %s", name)
		}
	}
	return d, nil
}

// Seed inserts the payloads of d through the storers of their resource.
// Storers must implement resource.Inserter.
func Seed(ctx context.Context, storers map[string]resource.Storer, d Dataset) error {
	for _, name := range Names {
		payloads := d[name]
		if len(payloads) == 0 {
			continue
		}
		ins, ok := storers[name].(resource.Inserter)
		if !ok {
			return fmt.Errorf("tracker: %s: storage does not support inserts", name)
		}
		items := make([]*resource.Item, 0, len(payloads))
		for _, p := range payloads {
			item, err := resource.NewItem(p)
			if err != nil {
				return fmt.Errorf("tracker: %s: %w", name, err)
			}
			items = append(items, item)
		}
		if err := ins.Insert(ctx, items); err != nil {
			return fmt.Errorf("tracker: %s: %w", name, err)
		}
	}
	return nil
}
