package game

// Evaluator is everything the searcher needs to know about a problem. The
// searcher never looks inside a state, it only hands states back to the
// Evaluator that produced them.
//
// Actions are numbered 0..NumActions(state)-1 and every per-action slice
// (NextPossibleStates, Value output, Policy) uses that same order.
// Transitions must be deterministic.
type Evaluator[S any] interface {
	// Root returns the state the search starts from
	Root() S
	// NumActions returns the number of legal actions at state
	NumActions(state S) int
	// NextPossibleStates returns the successor of state for every legal action, in action order
	NextPossibleStates(state S) ([]S, error)
	// NewState applies action to state
	NewState(action int, state S) (S, error)
	// Value estimates every state in one call. Implementations backed by a
	// model should batch here, it is the only bulk call the searcher makes.
	Value(states []S) ([]float64, error)
	// Policy returns the prior over the legal actions of state
	Policy(state S) ([]float64, error)
	// IsSolution reports whether state is terminal. Problems without a clear
	// solution can always return false.
	IsSolution(state S) bool
}

// Game is a problem that can be played out move by move. For two-player
// games the evaluator it returns scores states from the point of view of
// the player to move at the given state, at every depth. The searcher does
// not flip values between players, so below the root the opponent is
// modelled as picking replies that favour the root player. Play strength
// against a real opponent is weaker than a minimax-style search.
type Game[S any] interface {
	Evaluator(state S) Evaluator[S]
	// Player returns the ID of the player to move, 0 for single-agent problems
	Player(state S) int
	// Winner returns the winner's name, "draw", or "" while undecided
	Winner(state S) string
}

const Draw = "draw"

// UniformPolicy is a prior that spreads probability evenly over n actions.
func UniformPolicy(n int) []float64 {
	policy := make([]float64, n)
	for i := range policy {
		policy[i] = 1 / float64(n)
	}
	return policy
}
