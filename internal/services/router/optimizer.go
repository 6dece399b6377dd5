package router

import (
	"math/big"
	"sync"
)

// Distribution is the DP result: the optimal aggregate value and the parent
// table needed to reconstruct the winning allocation. Tables are sized
// V x (steps+1); column 0 is the true zero-allocation identity and the final
// answer lives at answer[V-1][steps], so "all steps allocated" is never
// conflated with "steps-1 allocated".
type Distribution struct {
	Value   *big.Int
	parents [][]int
	steps   int
}

// dpWorkspace recycles the answer table across requests. Tables grow to the
// largest (venues, steps) seen; each invocation owns the workspace
// exclusively for its duration.
type dpWorkspace struct {
	answer [][]big.Int
	tmp    big.Int
}

var dpWorkspacePool = sync.Pool{
	New: func() interface{} {
		return &dpWorkspace{}
	},
}

func (ws *dpWorkspace) ensure(venues, cols int) {
	if cap(ws.answer) < venues {
		ws.answer = make([][]big.Int, venues)
	}
	ws.answer = ws.answer[:venues]
	for v := range ws.answer {
		if cap(ws.answer[v]) < cols {
			ws.answer[v] = make([]big.Int, cols)
		}
		ws.answer[v] = ws.answer[v][:cols]
	}
}

// FindDistribution runs the single-item-per-group knapsack over the value
// matrix:
//
//	answer[0][j] = M[0][j]
//	answer[v][j] = max over k in [0,j] of answer[v-1][j-k] + M[v][k]
//
// k is scanned ascending and a candidate overwrites only on strict
// improvement, so among equal-value splits the smallest allocation to venue v
// wins (equivalently, the largest allocation to earlier venues). O(V*P^2)
// time, O(V*P) space, fully deterministic.
func FindDistribution(matrix *ValueMatrix, steps uint8) (*Distribution, error) {
	if steps == 0 {
		return nil, ErrInvalidStepCount
	}
	venues := len(matrix.Rows)
	if venues == 0 {
		return nil, ErrNoRoute
	}
	cols := int(steps) + 1

	ws := dpWorkspacePool.Get().(*dpWorkspace)
	defer dpWorkspacePool.Put(ws)
	ws.ensure(venues, cols)

	answer := ws.answer
	parents := make([][]int, venues)

	parents[0] = make([]int, cols)
	for j := 0; j < cols; j++ {
		answer[0][j].Set(matrix.Value(0, j))
		parents[0][j] = 0
	}

	for v := 1; v < venues; v++ {
		parents[v] = make([]int, cols)
		for j := 0; j < cols; j++ {
			// k = 0: give this venue nothing, M[v][0] is the zero identity.
			answer[v][j].Set(&answer[v-1][j])
			parents[v][j] = j
			for k := 1; k <= j; k++ {
				ws.tmp.Add(&answer[v-1][j-k], matrix.Value(v, k))
				if ws.tmp.Cmp(&answer[v][j]) > 0 {
					answer[v][j].Set(&ws.tmp)
					parents[v][j] = j - k
				}
			}
		}
	}

	best := answer[venues-1][int(steps)]
	// Quotes are unsigned, so a negative winner means at least one sentinel
	// cell is on every path: nothing is executable.
	if best.Sign() < 0 {
		return nil, ErrNoViableRoute
	}

	return &Distribution{
		Value:   new(big.Int).Set(&best),
		parents: parents,
		steps:   int(steps),
	}, nil
}
