// internal/samples/samples.go

// Package samples turns a Google Benchmark JSON document into per-case sample lists.
//
// Only records tagged run_type "iteration" become samples. Aggregate rows written by
// --benchmark_repetitions (mean, median, stddev, cv) and any other record kinds are dropped.
package samples

// RunTypeIteration marks a genuine timed iteration record.
const RunTypeIteration = "iteration"

// Sample is one iteration record of a benchmark case.
type Sample struct {
	// Case is the benchmark name, e.g. "femtolog_info_literal".
	Case string
	// Metrics holds every numeric field of the record keyed by its JSON name
	// ("real_time", "cpu_time", "iterations", ...).
	Metrics map[string]float64
}

// Metric returns the named numeric field and whether the record carried it.
func (s Sample) Metric(field string) (float64, bool) {
	v, ok := s.Metrics[field]
	return v, ok
}

// Context mirrors the "context" block Google Benchmark writes ahead of the results.
type Context struct {
	Date             string `json:"date"`
	HostName         string `json:"host_name"`
	Executable       string `json:"executable"`
	NumCPUs          int    `json:"num_cpus"`
	MHzPerCPU        int    `json:"mhz_per_cpu"`
	LibraryBuildType string `json:"library_build_type"`
}

// SampleSet maps each case name to its samples in input order and remembers
// the order in which case names first appeared.
type SampleSet struct {
	Context Context

	cases   []string
	samples map[string][]Sample
}

// FromSamples builds a SampleSet from samples in the given order.
func FromSamples(list ...Sample) *SampleSet {
	set := newSampleSet()
	for _, s := range list {
		set.add(s)
	}
	return set
}

func newSampleSet() *SampleSet {
	return &SampleSet{samples: map[string][]Sample{}}
}

func (s *SampleSet) add(sample Sample) {
	if _, ok := s.samples[sample.Case]; !ok {
		s.cases = append(s.cases, sample.Case)
	}
	s.samples[sample.Case] = append(s.samples[sample.Case], sample)
}

// Cases returns the distinct case names in first-appearance order.
func (s *SampleSet) Cases() []string {
	out := make([]string, len(s.cases))
	copy(out, s.cases)
	return out
}

// Samples returns the samples recorded for name.
func (s *SampleSet) Samples(name string) []Sample {
	return s.samples[name]
}

// Len is the number of distinct cases.
func (s *SampleSet) Len() int {
	return len(s.cases)
}

// Total is the number of samples across all cases.
func (s *SampleSet) Total() int {
	n := 0
	for _, list := range s.samples {
		n += len(list)
	}
	return n
}
