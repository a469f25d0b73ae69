package parser

// StreamNames are identifiers treated as I/O streams: "<<" after an output
// stream and ">>" after an input stream are stream operators, not shifts.
type StreamNames struct {
	Output []string `yaml:"output"`
	Input  []string `yaml:"input"`
}

// DefaultStreamNames are the standard C++ streams.
func DefaultStreamNames() StreamNames {
	return StreamNames{
		Output: []string{"cout", "cerr", "clog"},
		Input:  []string{"cin"},
	}
}

type streamSet struct {
	output map[string]struct{}
	input  map[string]struct{}
}

func newStreamSet(n StreamNames) streamSet {
	s := streamSet{
		output: make(map[string]struct{}, len(n.Output)),
		input:  make(map[string]struct{}, len(n.Input)),
	}
	for _, name := range n.Output {
		s.output[name] = struct{}{}
	}
	for _, name := range n.Input {
		s.input[name] = struct{}{}
	}
	return s
}

func (s streamSet) isOutput(name string) bool {
	_, ok := s.output[name]
	return ok
}

func (s streamSet) isInput(name string) bool {
	_, ok := s.input[name]
	return ok
}
