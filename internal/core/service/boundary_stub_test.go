package service

import (
	"context"
	"encoding/json"
)

type call struct {
	name string
	args any
}

// stubBoundary records every command and answers from a table of canned
// JSON results or errors keyed by command name.
type stubBoundary struct {
	calls   []call
	results map[string]string
	errs    map[string]error
}

func newStubBoundary() *stubBoundary {
	return &stubBoundary{results: map[string]string{}, errs: map[string]error{}}
}

func (s *stubBoundary) Invoke(_ context.Context, name string, args any, out any) error {
	s.calls = append(s.calls, call{name: name, args: args})
	if err := s.errs[name]; err != nil {
		return err
	}
	if raw, ok := s.results[name]; ok && out != nil {
		return json.Unmarshal([]byte(raw), out)
	}
	return nil
}

func (s *stubBoundary) count(name string) int {
	n := 0
	for _, c := range s.calls {
		if c.name == name {
			n++
		}
	}
	return n
}
