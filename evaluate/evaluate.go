package evaluate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/learn"
)

// ErrInvalidSplit indicates a test fraction outside (0, 1) or a split that
// leaves one side empty.
var ErrInvalidSplit = errors.New("evaluate: invalid split")

// ShuffleSplit returns a random partition of the rows 0..n-1 into train and
// test indices. The test side holds ceil(testSize*n) rows. The same seed
// always yields the same partition.
func ShuffleSplit(n int, testSize float64, seed uint64) (train, test []int, err error) {
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("%w: test size %v", ErrInvalidSplit, testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest == 0 || nTest >= n {
		return nil, nil, fmt.Errorf("%w: %d test rows of %d", ErrInvalidSplit, nTest, n)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := rng.Perm(n)

	return perm[nTest:], perm[:nTest], nil
}

// Results holds the class probabilities every learner predicted for the
// test rows.
type Results struct {
	// Learners names the learners in the order they were given.
	Learners []string
	// Actual holds the class index of every test row; NaN when unknown.
	Actual []float64
	// Probabilities is indexed by learner, row and class value.
	Probabilities [][][]float64
	// Models holds the fitted models.
	Models []learn.Model
}

// TestOnTestData fits every learner on train and predicts test. Learners are
// fitted concurrently; the first failure cancels the others.
func TestOnTestData(ctx context.Context, train, test *data.Table, learners ...learn.Learner) (*Results, error) {
	classVar := train.Domain.ClassVar()
	if classVar == nil {
		return nil, learn.ErrNoClass
	}

	actual, ok := test.Column(classVar)
	if !ok {
		return nil, fmt.Errorf("%w: test rows lack %q", learn.ErrNoClass, classVar.Name())
	}

	res := &Results{
		Learners:      make([]string, len(learners)),
		Actual:        actual,
		Probabilities: make([][][]float64, len(learners)),
		Models:        make([]learn.Model, len(learners)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, l := range learners {
		res.Learners[i] = l.Name()

		g.Go(func() error {
			m, err := l.Fit(ctx, train)
			if err != nil {
				return fmt.Errorf("evaluate: %s: %w", l.Name(), err)
			}

			p, err := m.PredictProba(test)
			if err != nil {
				return fmt.Errorf("evaluate: %s: %w", l.Name(), err)
			}

			res.Models[i] = m
			res.Probabilities[i] = p

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}
