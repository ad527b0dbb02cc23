package searcher

// backup folds one simulation into every ancestor of leaf. Each node hands
// its total visits and total value mass to the action that led to it, and
// the parent updates that action's count and running mean.
func (t *Tree[S]) backup(leaf int) {
	visitsBelow := 0.0
	valuesBelow := 0.0
	action := noAction

	for index := leaf; index != noParent; {
		node := &t.nodes[index]

		if action != noAction {
			node.Visits[action] += visitsBelow
			node.Values[action] += valuesBelow / node.Visits[action]
		}

		visitsBelow = 0
		valuesBelow = 0
		for a, visits := range node.Visits {
			visitsBelow += visits
			valuesBelow += node.Values[a] * visits
		}

		action = node.action
		index = node.parent
	}
}

// addTerminalBonus spreads extra visit mass over every action of a terminal
// node so later selections steer away from a resolved branch.
func (t *Tree[S]) addTerminalBonus(index int, bonus float64) {
	node := &t.nodes[index]
	for a := range node.Visits {
		node.Visits[a] += bonus
	}
}
