// Package suite runs batches of reference-versus-candidate comparisons
// described by a YAML or JSON suite file.
package suite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Default locations used when the checker runs without arguments: the
// reference is checked into the repository, the candidate is written by the
// simulation run.
const (
	DefaultReference = "tests/ref_rst/ref_ode_msd_model.csv"
	DefaultCandidate = "tests/rst/ode_msd_model.csv"
)

// Case is one reference/candidate pair.
type Case struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Reference string `json:"reference" yaml:"reference"`
	Candidate string `json:"candidate" yaml:"candidate"`
}

// Suite is an ordered list of cases. Parallel bounds how many cases are
// compared at once; zero or one means serial.
type Suite struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
	Parallel int    `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Cases    []Case `json:"cases" yaml:"cases"`
}

// Default returns the single-case suite for the default paths.
func Default() *Suite {
	return &Suite{
		Name: "default",
		Cases: []Case{{
			Name:      "ode_msd_model",
			Reference: DefaultReference,
			Candidate: DefaultCandidate,
		}},
	}
}

// Validate fills in missing case names and rejects unusable suites.
func (s *Suite) Validate() error {
	if len(s.Cases) == 0 {
		return errors.New("suite has no cases")
	}
	if s.Parallel < 0 {
		return fmt.Errorf("parallel must be >= 0, got %d", s.Parallel)
	}
	seen := make(map[string]int, len(s.Cases))
	for i := range s.Cases {
		c := &s.Cases[i]
		if strings.TrimSpace(c.Reference) == "" || strings.TrimSpace(c.Candidate) == "" {
			return fmt.Errorf("case %d: reference and candidate are required", i)
		}
		if c.Name == "" {
			c.Name = strings.TrimSuffix(filepath.Base(c.Candidate), filepath.Ext(c.Candidate))
		}
		if j, dup := seen[c.Name]; dup {
			return fmt.Errorf("case %d: name %q already used by case %d", i, c.Name, j)
		}
		seen[c.Name] = i
	}
	return nil
}

// resolve makes relative case paths relative to dir.
func (s *Suite) resolve(dir string) {
	for i := range s.Cases {
		s.Cases[i].Reference = join(dir, s.Cases[i].Reference)
		s.Cases[i].Candidate = join(dir, s.Cases[i].Candidate)
	}
}

func join(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
