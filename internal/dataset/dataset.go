package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TicketsBot/supporters-page/pkg/model"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDataset []byte

var ErrDuplicateTier = errors.New("duplicate tier name")

// Default returns the dataset compiled into the binary.
func Default() (model.DataTable, error) {
	return Load(bytes.NewReader(defaultDataset))
}

func LoadFile(path string) (model.DataTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.DataTable{}, err
	}

	defer f.Close()

	table, err := Load(f)
	if err != nil {
		return model.DataTable{}, fmt.Errorf("%s: %w", path, err)
	}

	return table, nil
}

// Load decodes a dataset and checks that tier names are unique. Unknown keys
// are rejected so a misspelt field doesn't silently drop out of the page.
func Load(r io.Reader) (model.DataTable, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var table model.DataTable
	if err := decoder.Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return model.DataTable{}, nil
		}

		return model.DataTable{}, fmt.Errorf("decode dataset: %w", err)
	}

	if err := validate(table); err != nil {
		return model.DataTable{}, err
	}

	return table, nil
}

func validate(table model.DataTable) error {
	seen := make(map[string]struct{}, len(table.Tiers))
	for _, tier := range table.Tiers {
		if _, ok := seen[tier.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateTier, tier.Name)
		}

		seen[tier.Name] = struct{}{}
	}

	return nil
}
