package accumulator

import "fmt"

// Restore rebuilds an accumulator from a persisted leaf sequence and root
// history. The two must be restored together: the history is checked against
// the roots produced by replaying the leaves, and ErrHistoryInconsistent is
// returned if they differ in any way.
//
// Any leaf store provided by the options must be empty.
func Restore(leaves []Hash, roots []Hash, opts ...Option) (*Accumulator, error) {

	if len(roots) == 0 {
		return nil, ErrRootsMissing
	}

	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if a.LeafCount() != 0 {
		return nil, fmt.Errorf("%w: restore requires an empty leaf store", ErrHistoryInconsistent)
	}

	for _, leaf := range leaves {
		if _, err = a.AddLeaf(leaf); err != nil {
			return nil, err
		}
	}

	replayed := a.Roots()
	if len(replayed) != len(roots) {
		return nil, fmt.Errorf(
			"%w: %d roots recorded, %d produced by the leaves", ErrHistoryInconsistent, len(roots), len(replayed))
	}
	for i := range roots {
		if roots[i] != replayed[i] {
			return nil, fmt.Errorf(
				"%w: root %d is %s, the leaves produce %s", ErrHistoryInconsistent, i, roots[i], replayed[i])
		}
	}
	if a.log != nil {
		a.log.Infof("restored log %s: %d leaves, %d roots", a.logID, len(leaves), len(roots))
	}
	return a, nil
}
