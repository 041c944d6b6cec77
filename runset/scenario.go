// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package runset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/j0nem/multicast-performance/analysisfmt"
	"github.com/j0nem/multicast-performance/runstat"
)

// The test runner names run directories
// <scenario>_iter<N>_<timestamp>.
var iterRE = regexp.MustCompile(`^(.+?)_iter\d+_`)

// ScenarioName returns the scenario of a run directory name, or the
// whole name if it does not follow the runner's naming scheme.
func ScenarioName(dir string) string {
	if m := iterRE.FindStringSubmatch(dir); m != nil {
		return m[1]
	}
	return dir
}

// A Scenario is a group of runs of the same test configuration.
type Scenario struct {
	Name string
	Runs []*runstat.Run
}

// Aggregate aggregates the scalars of s's runs.
func (s *Scenario) Aggregate() runstat.Aggregates {
	return runstat.AggregateAll(s.Runs)
}

// Group reads the analysis report of every run directory directly
// under base and groups the runs by scenario. Directories without a
// report are skipped, as are reports that can't be parsed. Scenarios
// are sorted by name and runs by label.
func (l *Loader) Group(base string) ([]*Scenario, error) {
	ents, err := os.ReadDir(base)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*Scenario)
	for _, ent := range ents {
		if !ent.IsDir() {
			continue
		}
		run, err := l.LoadAnalysis(filepath.Join(base, ent.Name()))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				l.warn("%v", err)
			}
			continue
		}
		name := ScenarioName(ent.Name())
		s := byName[name]
		if s == nil {
			s = &Scenario{Name: name}
			byName[name] = s
		}
		s.Runs = append(s.Runs, run)
	}
	return sortScenarios(byName), nil
}

// GroupRuns groups already loaded runs by the scenario of their
// labels.
func GroupRuns(runs []*runstat.Run) []*Scenario {
	byName := make(map[string]*Scenario)
	for _, run := range runs {
		name := ScenarioName(filepath.Base(run.Label))
		s := byName[name]
		if s == nil {
			s = &Scenario{Name: name}
			byName[name] = s
		}
		s.Runs = append(s.Runs, run)
	}
	return sortScenarios(byName)
}

func sortScenarios(byName map[string]*Scenario) []*Scenario {
	out := make([]*Scenario, 0, len(byName))
	for _, s := range byName {
		sort.Slice(s.Runs, func(i, j int) bool {
			return s.Runs[i].Label < s.Runs[j].Label
		})
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// LoadAnalysis reads the analysis report of run directory dir.
func (l *Loader) LoadAnalysis(dir string) (*runstat.Run, error) {
	data, err := os.ReadFile(filepath.Join(dir, AnalysisFile))
	if err != nil {
		return nil, err
	}
	return analysisfmt.Parse(data, dir)
}
