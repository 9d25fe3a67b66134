package learn

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/cwbudde/algo-spectro/data"
	"github.com/cwbudde/algo-spectro/preprocess"
)

// Option configures a [LogisticRegressionLearner].
type Option func(*config)

type config struct {
	c             float64
	maxIter       int
	preprocessors []preprocess.Preprocessor
	logger        *slog.Logger
	name          string
}

func defaultConfig() config {
	return config{
		c:       1,
		maxIter: 100,
		logger:  slog.New(slog.DiscardHandler),
		name:    "logistic regression",
	}
}

// WithC sets the inverse L2 regularization strength. Non-positive values
// are ignored.
func WithC(c float64) Option {
	return func(cfg *config) {
		if c > 0 {
			cfg.c = c
		}
	}
}

// WithMaxIter caps the L-BFGS iterations per binary model.
func WithMaxIter(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxIter = n
		}
	}
}

// WithPreprocessors sets preprocessors applied to the training table before
// fitting. The model's domain is the one they produce.
func WithPreprocessors(pps ...preprocess.Preprocessor) Option {
	return func(cfg *config) {
		cfg.preprocessors = append([]preprocess.Preprocessor(nil), pps...)
	}
}

// WithLogger sets the logger fits report to. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithName overrides the learner name used in evaluation results.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.name = name
	}
}

// LogisticRegressionLearner fits L2-regularized logistic regression with an
// unpenalized intercept. Problems with more than two classes are fitted one
// class against the rest.
type LogisticRegressionLearner struct {
	cfg config
}

// NewLogisticRegression returns a learner configured by opts.
func NewLogisticRegression(opts ...Option) *LogisticRegressionLearner {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &LogisticRegressionLearner{cfg: cfg}
}

// Name implements [Learner].
func (l *LogisticRegressionLearner) Name() string { return l.cfg.name }

// Fit implements [Learner]. Rows without a class value are ignored, feature
// columns without any defined value are dropped, and remaining NaN values
// are replaced by the column means.
func (l *LogisticRegressionLearner) Fit(ctx context.Context, t *data.Table) (Model, error) {
	classVar := t.Domain.ClassVar()
	if classVar == nil || classVar.Kind() != data.Discrete {
		return nil, ErrNoClass
	}

	t, err := preprocess.Chain(l.cfg.preprocessors).Apply(withClass(t))
	if err != nil {
		return nil, fmt.Errorf("learn: preprocessing: %w", err)
	}

	if t.Len() == 0 {
		return nil, ErrNoRows
	}

	y, _ := t.Target()

	m := &LogisticRegression{
		domain:   t.Domain,
		nClasses: len(classVar.Values()),
	}

	m.columns, m.means = columnMeans(t.X)
	x := m.design(t.X)

	present := roaring.New()
	for _, v := range y {
		present.Add(uint32(v))
	}

	l.cfg.logger.Debug("fitting logistic regression",
		slog.Int("rows", t.Len()),
		slog.Int("features", len(m.columns)),
		slog.Int("dropped", len(t.Domain.Attributes)-len(m.columns)),
		slog.Uint64("classes", present.GetCardinality()))

	switch {
	case present.GetCardinality() == 1:
		m.constant = int(present.Minimum())
		return m, nil
	case m.nClasses == 2:
		w, err := l.fitBinary(ctx, x, y, 1)
		if err != nil {
			return nil, err
		}

		m.weights = [][]float64{w}

		return m, nil
	}

	m.weights = make([][]float64, m.nClasses)

	g, ctx := errgroup.WithContext(ctx)
	for k := range m.nClasses {
		if !present.Contains(uint32(k)) {
			continue
		}

		g.Go(func() error {
			w, err := l.fitBinary(ctx, x, y, k)
			if err != nil {
				return fmt.Errorf("class %q: %w", classVar.Values()[k], err)
			}

			m.weights[k] = w

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return m, nil
}

// fitBinary fits class positive against the rest and returns the weights
// followed by the intercept.
func (l *LogisticRegressionLearner) fitBinary(ctx context.Context, x [][]float64, y []float64, positive int) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nf := len(x[0]) - 1
	sign := make([]float64, len(y))

	for i, v := range y {
		sign[i] = -1
		if int(v) == positive {
			sign[i] = 1
		}
	}

	c := l.cfg.c

	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			loss := 0.5 * floats.Dot(w[:nf], w[:nf])
			for i, row := range x {
				loss += c * logLoss(sign[i]*floats.Dot(w, row))
			}

			return loss
		},
		Grad: func(grad, w []float64) {
			copy(grad, w)
			grad[nf] = 0

			for i, row := range x {
				m := sign[i] * floats.Dot(w, row)
				floats.AddScaled(grad, -c*sign[i]*sigmoid(-m), row)
			}
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   l.cfg.maxIter,
		GradientThreshold: 1e-6,
	}

	result, err := optimize.Minimize(problem, make([]float64, nf+1), settings, &optimize.LBFGS{})
	if result == nil {
		return nil, fmt.Errorf("learn: optimization: %w", err)
	}

	if err != nil {
		l.cfg.logger.Warn("optimization stopped early", slog.String("status", result.Status.String()), slog.Any("err", err))
	}

	return result.X, nil
}

// LogisticRegression is a fitted logistic regression model.
type LogisticRegression struct {
	domain   *data.Domain
	nClasses int
	columns  []int
	means    []float64
	// weights holds one weight vector (intercept last) for binary problems
	// and one per class value otherwise; classes absent in training are nil.
	weights  [][]float64
	constant int
}

// Domain implements [Model].
func (m *LogisticRegression) Domain() *data.Domain { return m.domain }

// PredictProba implements [Model].
func (m *LogisticRegression) PredictProba(t *data.Table) ([][]float64, error) {
	t, err := data.Convert(m.domain, t)
	if err != nil {
		return nil, err
	}

	if undefined(t.X) {
		return nil, fmt.Errorf("%w: no defined feature values", data.ErrDomainTransformation)
	}

	x := m.design(t.X)
	out := make([][]float64, len(x))

	for i, row := range x {
		p := make([]float64, m.nClasses)
		out[i] = p

		switch {
		case m.weights == nil:
			p[m.constant] = 1
		case len(m.weights) == 1 && m.nClasses == 2:
			p[1] = sigmoid(floats.Dot(m.weights[0], row))
			p[0] = 1 - p[1]
		default:
			for k, w := range m.weights {
				if w != nil {
					p[k] = sigmoid(floats.Dot(w, row))
				}
			}

			if sum := floats.Sum(p); sum > 0 {
				floats.Scale(1/sum, p)
			}
		}
	}

	return out, nil
}

// design returns the kept columns of x with NaN imputed and a trailing 1 for
// the intercept.
func (m *LogisticRegression) design(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))

	for i, row := range x {
		r := make([]float64, len(m.columns)+1)
		for j, c := range m.columns {
			v := row[c]
			if math.IsNaN(v) {
				v = m.means[j]
			}

			r[j] = v
		}

		r[len(m.columns)] = 1
		out[i] = r
	}

	return out
}

// columnMeans returns the indices of the columns with at least one defined
// value and their means over the defined values.
func columnMeans(x [][]float64) ([]int, []float64) {
	if len(x) == 0 {
		return nil, nil
	}

	var (
		cols  []int
		means []float64
	)

	for j := range x[0] {
		sum, n := 0.0, 0

		for _, row := range x {
			if !math.IsNaN(row[j]) {
				sum += row[j]
				n++
			}
		}

		if n > 0 {
			cols = append(cols, j)
			means = append(means, sum/float64(n))
		}
	}

	return cols, means
}

// withClass drops the rows whose class value is unknown.
func withClass(t *data.Table) *data.Table {
	y, _ := t.Target()
	unknown := roaring.New()

	for i, v := range y {
		if math.IsNaN(v) {
			unknown.Add(uint32(i))
		}
	}

	if unknown.IsEmpty() {
		return t
	}

	return t.Select(keptRows(t.Len(), unknown))
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}

	e := math.Exp(z)

	return e / (1 + e)
}

// logLoss returns log(1 + exp(-m)) without overflow.
func logLoss(m float64) float64 {
	if m > 0 {
		return math.Log1p(math.Exp(-m))
	}

	return -m + math.Log1p(math.Exp(m))
}
