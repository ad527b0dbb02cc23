package searcher

import (
	"errors"
	"slices"
)

var errBoom = errors.New("boom")

// mockEvaluator describes a tree where a state is the list of actions taken
// from the root. Every hook is optional.
type mockEvaluator struct {
	branching int
	actions   func(path []int) int
	value     func(path []int) float64
	policy    func(path []int) []float64
	terminal  func(path []int) bool
	fail      func(path []int) error // Returned by Value for the parent path

	rootCalls, newStateCalls, valueCalls, policyCalls int
}

func (m *mockEvaluator) Root() []int {
	m.rootCalls++
	return []int{}
}

func (m *mockEvaluator) NumActions(path []int) int {
	if m.actions != nil {
		return m.actions(path)
	}
	return m.branching
}

func (m *mockEvaluator) NextPossibleStates(path []int) ([][]int, error) {
	next := make([][]int, m.NumActions(path))
	for a := range next {
		next[a] = append(slices.Clone(path), a)
	}
	return next, nil
}

func (m *mockEvaluator) NewState(action int, path []int) ([]int, error) {
	m.newStateCalls++
	return append(slices.Clone(path), action), nil
}

func (m *mockEvaluator) Value(states [][]int) ([]float64, error) {
	m.valueCalls++
	values := make([]float64, len(states))
	for i, state := range states {
		if m.fail != nil {
			if err := m.fail(state[:len(state)-1]); err != nil {
				return nil, err
			}
		}
		values[i] = 0.5
		if m.value != nil {
			values[i] = m.value(state)
		}
	}
	return values, nil
}

func (m *mockEvaluator) Policy(path []int) ([]float64, error) {
	m.policyCalls++
	if m.policy != nil {
		return m.policy(path), nil
	}
	n := m.NumActions(path)
	policy := make([]float64, n)
	for i := range policy {
		policy[i] = 1 / float64(n)
	}
	return policy, nil
}

func (m *mockEvaluator) IsSolution(path []int) bool {
	if m.terminal != nil {
		return m.terminal(path)
	}
	return false
}
