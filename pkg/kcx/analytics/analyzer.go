// Package analytics aggregates knowledge components across stored runs:
// which concepts tutorials cover, when they introduce them, and which
// concepts are taught together.
package analytics

import (
	"math"
	"sort"

	"github.com/cognicore/kcx/pkg/kcx/metadata"
	"github.com/cognicore/kcx/pkg/kcx/taxonomy"
)

// Analyzer aggregates run-level concept stats.
type Analyzer struct {
	totalRuns      int64
	conceptDF      map[string]int64
	conceptRoot    map[string]string
	conceptLangs   map[string]map[string]int64
	offsetSums     map[string]int64
	rootCounts     map[string]int64
	languages      map[string]int64
	pairCounts     map[pair]int64 // run-level co-occurrence
	sequenceCounts map[pair]int64 // A introduced immediately before B
}

// NewAnalyzer creates an empty analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		conceptDF:      make(map[string]int64),
		conceptRoot:    make(map[string]string),
		conceptLangs:   make(map[string]map[string]int64),
		offsetSums:     make(map[string]int64),
		rootCounts:     make(map[string]int64),
		languages:      make(map[string]int64),
		pairCounts:     make(map[pair]int64),
		sequenceCounts: make(map[pair]int64),
	}
}

// Process consumes one run's components, in first-seen order.
// An empty language counts as unresolved.
func (a *Analyzer) Process(language string, components []taxonomy.Component) {
	a.totalRuns++
	if language == "" {
		language = "unresolved"
	}
	a.languages[language]++

	seen := make(map[string]struct{}, len(components))
	ordered := make([]string, 0, len(components))
	for _, c := range components {
		tok := c.Token
		if tok == "" {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		ordered = append(ordered, tok)

		a.conceptDF[tok]++
		root := c.Classification.Root()
		a.conceptRoot[tok] = root
		a.rootCounts[root]++
		if a.conceptLangs[tok] == nil {
			a.conceptLangs[tok] = make(map[string]int64)
		}
		a.conceptLangs[tok][language]++
		offset, _ := metadata.OffsetFromTimestamp(c.TimeStamp)
		a.offsetSums[tok] += int64(offset)
	}

	unique := append([]string(nil), ordered...)
	sort.Strings(unique)
	for i := 0; i < len(unique); i++ {
		for j := i + 1; j < len(unique); j++ {
			a.pairCounts[newPair(unique[i], unique[j])]++
		}
	}

	// ordered pairs; the registry order is the teaching order
	for i := 0; i < len(ordered)-1; i++ {
		a.sequenceCounts[pair{A: ordered[i], B: ordered[i+1]}]++
	}
}

// Stats is an immutable copy of analyzer state.
type Stats struct {
	TotalRuns      int64
	ConceptDF      map[string]int64
	ConceptRoot    map[string]string
	ConceptLangs   map[string]map[string]int64
	OffsetSums     map[string]int64
	RootCounts     map[string]int64
	Languages      map[string]int64
	PairCounts     map[pair]int64
	SequenceCounts map[pair]int64
}

// Snapshot returns a copy of the accumulated statistics.
func (a *Analyzer) Snapshot() Stats {
	copyLangs := make(map[string]map[string]int64, len(a.conceptLangs))
	for tok, langs := range a.conceptLangs {
		copyLangs[tok] = copyCounts(langs)
	}
	copyRoot := make(map[string]string, len(a.conceptRoot))
	for tok, root := range a.conceptRoot {
		copyRoot[tok] = root
	}
	return Stats{
		TotalRuns:      a.totalRuns,
		ConceptDF:      copyCounts(a.conceptDF),
		ConceptRoot:    copyRoot,
		ConceptLangs:   copyLangs,
		OffsetSums:     copyCounts(a.offsetSums),
		RootCounts:     copyCounts(a.rootCounts),
		Languages:      copyCounts(a.languages),
		PairCounts:     copyPairs(a.pairCounts),
		SequenceCounts: copyPairs(a.sequenceCounts),
	}
}

// ConceptStat summarizes one concept across runs.
type ConceptStat struct {
	Token       string
	Root        string
	Runs        int64
	RunPercent  float64
	MeanOffset  float64 // seconds into the video it was first shown
	LangEntropy float64 // 0 when taught in one language only
}

// Concepts returns every concept, most widely covered first.
func (s Stats) Concepts() []ConceptStat {
	var out []ConceptStat
	if s.TotalRuns == 0 {
		return out
	}
	for tok, df := range s.ConceptDF {
		out = append(out, ConceptStat{
			Token:       tok,
			Root:        s.ConceptRoot[tok],
			Runs:        df,
			RunPercent:  100 * float64(df) / float64(s.TotalRuns),
			MeanOffset:  float64(s.OffsetSums[tok]) / float64(df),
			LangEntropy: entropy(s.ConceptLangs[tok]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Runs != out[j].Runs {
			return out[i].Runs > out[j].Runs
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Curriculum orders concepts seen in at least minRuns runs by how early
// tutorials show them.
func (s Stats) Curriculum(minRuns int64) []ConceptStat {
	var out []ConceptStat
	for _, c := range s.Concepts() {
		if c.Runs >= minRuns {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MeanOffset < out[j].MeanOffset })
	return out
}

// RootStat counts components under one root category.
type RootStat struct {
	Root  string
	Count int64
}

// Roots returns the root-category histogram, largest first.
func (s Stats) Roots() []RootStat {
	out := make([]RootStat, 0, len(s.RootCounts))
	for root, n := range s.RootCounts {
		out = append(out, RootStat{Root: root, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Root < out[j].Root
	})
	return out
}

// PairStat describes how two concepts relate across runs.
type PairStat struct {
	A             string // introduced first
	B             string
	PMI           float64 // run-level association
	SequenceFreq  int64   // runs where B directly followed A
	Support       int64   // runs containing both
	SequenceScore float64 // SequenceFreq * PMI
}

// TopPairs returns concept transitions ranked by sequence frequency
// weighted by run-level PMI. Pairs below minPMI are dropped.
func (s Stats) TopPairs(limit int, minPMI float64) []PairStat {
	if s.TotalRuns == 0 {
		return nil
	}
	var stats []PairStat

	for p, seqCount := range s.SequenceCounts {
		if seqCount == 0 {
			continue
		}
		dfA := s.ConceptDF[p.A]
		dfB := s.ConceptDF[p.B]
		if dfA == 0 || dfB == 0 {
			continue
		}

		support := s.PairCounts[newPair(p.A, p.B)]
		if support == 0 {
			continue
		}
		pmi := computePMI(support, dfA, dfB, s.TotalRuns)
		if pmi < minPMI {
			continue
		}

		stats = append(stats, PairStat{
			A:             p.A,
			B:             p.B,
			PMI:           pmi,
			SequenceFreq:  seqCount,
			Support:       support,
			SequenceScore: float64(seqCount) * pmi,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].SequenceScore != stats[j].SequenceScore {
			return stats[i].SequenceScore > stats[j].SequenceScore
		}
		if stats[i].SequenceFreq != stats[j].SequenceFreq {
			return stats[i].SequenceFreq > stats[j].SequenceFreq
		}
		if stats[i].A != stats[j].A {
			return stats[i].A < stats[j].A
		}
		return stats[i].B < stats[j].B
	})

	if limit > 0 && len(stats) > limit {
		stats = stats[:limit]
	}
	return stats
}

func computePMI(pairCount, dfA, dfB, totalRuns int64) float64 {
	if dfA == 0 || dfB == 0 || totalRuns == 0 {
		return 0
	}
	smooth := 1.0
	numerator := (float64(pairCount) + smooth) / float64(totalRuns)
	denominator := ((float64(dfA) + smooth) / float64(totalRuns)) * ((float64(dfB) + smooth) / float64(totalRuns))
	return math.Log(numerator / denominator)
}

func entropy(counts map[string]int64) float64 {
	if len(counts) == 0 {
		return 0
	}
	var total float64
	for _, c := range counts {
		total += float64(c)
	}
	if total == 0 {
		return 0
	}
	var h float64
	for _, c := range counts {
		p := float64(c) / total
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h / math.Log2(float64(len(counts))+1)
}

type pair struct {
	A string
	B string
}

func newPair(a, b string) pair {
	if a > b {
		a, b = b, a
	}
	return pair{A: a, B: b}
}

func copyCounts(in map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyPairs(in map[pair]int64) map[pair]int64 {
	out := make(map[pair]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
