package qcmp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile bundles the comparison tolerances and optional extra noise
// patterns. The zero value stands for the default thresholds, so
// profile files only need to name what they change.
type Profile struct {
	// Numeric replaces NumericThreshold when > 0.
	Numeric float64 `yaml:"numeric,omitempty"`
	// Heat replaces HeatThreshold when > 0.
	Heat float64 `yaml:"heat,omitempty"`
	// Degeneracy replaces DegeneracyThreshold when > 0.
	Degeneracy float64 `yaml:"degeneracy,omitempty"`
	// Eigvec replaces EigvecThreshold when > 0.
	Eigvec float64 `yaml:"eigvec,omitempty"`
	// Skip lists additional regexps for lines to discard.
	Skip []string `yaml:"skip,omitempty"`
}

// LoadProfile reads a profile from a YAML file. Thresholds not named in
// the file keep their defaults.
func LoadProfile(path string) (p Profile, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err = yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

func (p Profile) numeric() float64 {
	if p.Numeric > 0 {
		return p.Numeric
	}
	return NumericThreshold
}

func (p Profile) heat() float64 {
	if p.Heat > 0 {
		return p.Heat
	}
	return HeatThreshold
}

func (p Profile) degeneracy() float64 {
	if p.Degeneracy > 0 {
		return p.Degeneracy
	}
	return DegeneracyThreshold
}

func (p Profile) eigvec() float64 {
	if p.Eigvec > 0 {
		return p.Eigvec
	}
	return EigvecThreshold
}
