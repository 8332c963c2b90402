package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/wayfinder-support/wayfinder/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type catalogFile struct {
	Version   int                    `yaml:"version"`
	Resources []model.Resource       `yaml:"resources"`
	Knowledge []model.KnowledgeEntry `yaml:"knowledge"`
}

// Load parses a YAML catalogue and validates it
func Load(data []byte) (*Store, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	if file.Version <= 0 {
		return nil, fmt.Errorf("catalogue missing version")
	}

	store := &Store{
		version:   file.Version,
		resources: file.Resources,
		knowledge: file.Knowledge,
	}
	if problems := store.Validate(); len(problems) > 0 {
		return nil, fmt.Errorf("invalid catalogue: %s (and %d more)", problems[0], len(problems)-1)
	}
	return store, nil
}

// LoadUnchecked parses a catalogue without validating it, for tooling
// that wants to report every problem itself
func LoadUnchecked(data []byte) (*Store, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	return &Store{
		version:   file.Version,
		resources: file.Resources,
		knowledge: file.Knowledge,
	}, nil
}

// LoadFile loads a catalogue from an external YAML file
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return Load(data)
}

// Default returns the embedded seed catalogue. The seed is covered by
// tests, so a load failure here is a programmer error.
func Default() *Store {
	store, err := Load(seedYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalogue invalid: %v", err))
	}
	return store
}

// Validate checks referential integrity of the catalogue: known stages and
// locations, non-empty identities, and sane enum values. Returns one
// message per problem.
func (s *Store) Validate() []string {
	var problems []string
	seen := make(map[string]bool)

	knownLocation := make(map[string]bool, len(model.KnownLocations))
	for _, l := range model.KnownLocations {
		knownLocation[l] = true
	}

	for _, r := range s.resources {
		where := fmt.Sprintf("resource %q", r.ID)
		if r.ID == "" || r.Title == "" {
			problems = append(problems, where+": missing id or title")
		}
		if seen["r:"+r.ID] {
			problems = append(problems, where+": duplicate id")
		}
		seen["r:"+r.ID] = true
		if len(r.Stages) == 0 {
			problems = append(problems, where+": no stages")
		}
		for _, st := range r.Stages {
			if !st.Valid() {
				problems = append(problems, fmt.Sprintf("%s: unknown stage %q", where, st))
			}
		}
		if len(r.Locations) == 0 {
			problems = append(problems, where+": no locations")
		}
		for _, l := range r.Locations {
			if !knownLocation[l] {
				problems = append(problems, fmt.Sprintf("%s: unknown location %q", where, l))
			}
		}
		switch r.Cost {
		case model.CostFree, model.CostNHSFunded, model.CostSlidingScale, model.CostPaid:
		default:
			problems = append(problems, fmt.Sprintf("%s: unknown cost tier %q", where, r.Cost))
		}
	}

	for _, k := range s.knowledge {
		where := fmt.Sprintf("knowledge %q", k.ID)
		if k.ID == "" || k.Title == "" || k.Body == "" {
			problems = append(problems, where+": missing id, title or body")
		}
		if seen["k:"+k.ID] {
			problems = append(problems, where+": duplicate id")
		}
		seen["k:"+k.ID] = true
		if len(k.Stages) == 0 {
			problems = append(problems, where+": no stages")
		}
		for _, st := range k.Stages {
			if !st.Valid() {
				problems = append(problems, fmt.Sprintf("%s: unknown stage %q", where, st))
			}
		}
		for _, l := range k.Locations {
			if !knownLocation[l] {
				problems = append(problems, fmt.Sprintf("%s: unknown location %q", where, l))
			}
		}
		switch k.Verification {
		case model.VerificationVerified, model.VerificationPending, model.VerificationOutdated:
		default:
			problems = append(problems, fmt.Sprintf("%s: unknown verification status %q", where, k.Verification))
		}
		if k.LastUpdated.IsZero() {
			problems = append(problems, where+": missing last_updated")
		}
	}

	return problems
}
