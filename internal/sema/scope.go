package sema

import "jsxstream/internal/types"

// scopeStack maps binding names to types, innermost scope last.
type scopeStack struct {
	frames []map[string]types.ExportType
}

func newScopeStack() scopeStack {
	return scopeStack{frames: []map[string]types.ExportType{make(map[string]types.ExportType)}}
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, make(map[string]types.ExportType))
}

func (s *scopeStack) pop() {
	if len(s.frames) <= 1 {
		panic("sema: module scope popped")
	}
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// define records name in the innermost scope.
func (s *scopeStack) define(name string, t types.ExportType) {
	s.frames[len(s.frames)-1][name] = t
}

// resolve walks from the innermost scope outwards.
func (s *scopeStack) resolve(name string) (types.ExportType, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i][name]; ok {
			return t, true
		}
	}
	return types.Other, false
}

// lookup is resolve with unresolved names typed as Other.
func (s *scopeStack) lookup(name string) types.ExportType {
	t, _ := s.resolve(name)
	return t
}

func (s *scopeStack) depth() int {
	return len(s.frames)
}

func (s *scopeStack) root() types.Exports {
	return types.Exports(s.frames[0])
}
