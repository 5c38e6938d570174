package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type (
	DataTable struct {
		Tiers      []Tier            `yaml:"tiers" json:"tiers"`
		HallOfFame []HallOfFameEntry `yaml:"hall_of_fame" json:"hall_of_fame"`
	}

	Tier struct {
		Name       string      `yaml:"name" json:"name"`
		Price      string      `yaml:"price,omitempty" json:"price,omitempty"`
		Supporters []Supporter `yaml:"supporters,omitempty" json:"supporters,omitempty"`
		Perks      []string    `yaml:"perks,omitempty" json:"perks,omitempty"`
	}

	Supporter struct {
		Name           string `yaml:"name" json:"name"`
		Email          string `yaml:"email,omitempty" json:"email,omitempty"`
		JoinDate       string `yaml:"join_date,omitempty" json:"join_date,omitempty"`
		TotalSupported string `yaml:"total_supported,omitempty" json:"total_supported,omitempty"`
	}

	HallOfFameEntry struct {
		Name           string `yaml:"name" json:"name"`
		Contribution   string `yaml:"contribution,omitempty" json:"contribution,omitempty"`
		Tier           string `yaml:"tier,omitempty" json:"tier,omitempty"`
		JoinDate       string `yaml:"join_date,omitempty" json:"join_date,omitempty"`
		TotalSupported string `yaml:"total_supported,omitempty" json:"total_supported,omitempty"`
	}
)

// Detailed reports whether the supporter carries anything beyond a name.
func (s Supporter) Detailed() bool {
	return s.Email != "" || s.JoinDate != "" || s.TotalSupported != ""
}

// Node.Decode doesn't inherit the outer decoder's KnownFields setting, so
// supporter mappings check their own keys.
var supporterFields = map[string]struct{}{
	"name":            {},
	"email":           {},
	"join_date":       {},
	"total_supported": {},
}

// UnmarshalYAML accepts both a bare name and a full mapping.
func (s *Supporter) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = Supporter{Name: value.Value}
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			key := value.Content[i]
			if _, ok := supporterFields[key.Value]; !ok {
				return fmt.Errorf("line %d: unknown field %q in supporter", key.Line, key.Value)
			}
		}

		type plain Supporter
		var decoded plain
		if err := value.Decode(&decoded); err != nil {
			return err
		}

		*s = Supporter(decoded)
		return nil
	default:
		return fmt.Errorf("line %d: supporter must be a name or a mapping", value.Line)
	}
}

func (t Tier) SupporterNames() []string {
	names := make([]string, len(t.Supporters))
	for i, supporter := range t.Supporters {
		names[i] = supporter.Name
	}

	return names
}

func (t Tier) HasDetailedSupporters() bool {
	for _, supporter := range t.Supporters {
		if supporter.Detailed() {
			return true
		}
	}

	return false
}
