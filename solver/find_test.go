// SPDX-License-Identifier: MIT

package solver_test

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rootbox/autodiff"
	"github.com/katalvlaran/rootbox/interval"
	"github.com/katalvlaran/rootbox/problems"
	"github.com/katalvlaran/rootbox/solver"
)

const rootTol = 1e-9

func lookup(t *testing.T, name string) problems.Problem {
	t.Helper()
	p, err := problems.Lookup(name)
	require.NoError(t, err)

	return p
}

// requireSound checks the invariants every result must satisfy:
// F(enclosure) ∋ 0, Enclosure ⊆ Image ⊂ int(Origin), enclosures disjoint.
func requireSound(t *testing.T, sys solver.System, res *solver.Result) {
	t.Helper()
	for i, s := range res.Solutions {
		vals, err := sys.F(s.Enclosure)
		require.NoError(t, err)
		for k, v := range vals {
			require.Truef(t, v.ContainsZero(), "solution %d: F_%d = %v", i, k, v)
		}
		require.True(t, s.Enclosure.Subset(s.Image), "enclosure ⊄ image")
		require.True(t, s.Image.Interior(s.Origin), "image ⊄ int(origin)")
		for j := i + 1; j < len(res.Solutions); j++ {
			require.Falsef(t, s.Enclosure.Intersects(res.Solutions[j].Enclosure),
				"solutions %d and %d overlap", i, j)
		}
	}
}

// requireRoots matches each known root to exactly one enclosure.
func requireRoots(t *testing.T, roots [][]float64, res *solver.Result) {
	t.Helper()
	require.Len(t, res.Solutions, len(roots))
	for _, r := range roots {
		hits := 0
		for _, s := range res.Solutions {
			m := s.Enclosure.Mid()
			near := true
			for i := range r {
				if math.Abs(m[i]-r[i]) > rootTol {
					near = false
				}
			}
			if near {
				hits++
				assert.Less(t, s.Enclosure.MaxWidth(), rootTol)
			}
		}
		assert.Equalf(t, 1, hits, "root %v", r)
	}
}

func TestFindAll_KnownRoots(t *testing.T) {
	for _, name := range []string{"circle-line", "four-roots", "sine", "broyden3", "no-root"} {
		t.Run(name, func(t *testing.T) {
			p := lookup(t, name)
			res, err := solver.FindAll(p.System, p.Box(), solver.WithRest())
			require.NoError(t, err)
			requireSound(t, p.System, res)
			requireRoots(t, p.Roots, res)
			assert.Empty(t, res.Rest)
			assert.Empty(t, res.Violations)
			assert.False(t, res.Interrupted)
			assert.Equal(t, int64(len(p.Roots)), res.Stats.Existent-res.Stats.Duplicates)
		})
	}
}

func TestFindAllSolutions_CircleLine(t *testing.T) {
	p := lookup(t, "circle-line")
	var rest []interval.Box
	boxes, err := solver.FindAllSolutions(p.System, p.Box(), 0, 0, &rest)
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	assert.Empty(t, rest)

	s := 1 / math.Sqrt2
	assert.InDelta(t, -s, boxes[0][0].Mid(), rootTol)
	assert.InDelta(t, s, boxes[1][1].Mid(), rootTol)
}

func TestFindAll_UnboundedBox(t *testing.T) {
	p := lookup(t, "circle-line")
	res, err := solver.FindAll(p.System, interval.Box{interval.Entire(), interval.Entire()})
	require.NoError(t, err)
	requireSound(t, p.System, res)
	requireRoots(t, p.Roots, res)
}

func square[T interval.Numeric[T]](x []T) ([]T, error) {
	return []T{x[0].Sqr()}, nil
}

func shiftedSquare[T interval.Numeric[T]](x []T) ([]T, error) {
	return []T{x[0].AddConst(-1).Sqr()}, nil
}

// requireRestCovers asserts that some rest box holds root.
func requireRestCovers(t *testing.T, res *solver.Result, root []float64) {
	t.Helper()
	for _, b := range res.Rest {
		if b.Contains(root) {
			return
		}
	}
	require.Failf(t, "root lost", "%v is in no rest box of %v", root, res.Rest)
}

// A double root can never be certified; the search must exhaust the
// floating-point grid around it and hand the last box to rest.
func TestFindAll_DegenerateRootGoesToRest(t *testing.T) {
	sys := solver.NewSystem(1, shiftedSquare[interval.Interval], shiftedSquare[autodiff.Dual])
	res, err := solver.FindAll(sys, interval.Cube(1, 0, 3), solver.WithRest())
	require.NoError(t, err)
	assert.Empty(t, res.Solutions)
	assert.False(t, res.Interrupted)
	assert.Positive(t, res.Stats.GaveUp)
	require.NotEmpty(t, res.Rest)
	requireRestCovers(t, res, []float64{1})
	for _, b := range res.Rest {
		assert.Less(t, b.MaxWidth(), 1e-9)
	}
}

// At the origin x² drops below the normal range long before the boxes stop
// splitting; those boxes are given up instead of bisected through the
// subnormals.
func TestFindAll_UnderflowAtOriginGoesToRest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sys := solver.NewSystem(1, square[interval.Interval], square[autodiff.Dual])
	res, err := solver.FindAll(sys, interval.Cube(1, -1, 1), solver.WithRest(), solver.WithContext(ctx))
	require.NoError(t, err)
	require.False(t, res.Interrupted, "search did not terminate")
	assert.Empty(t, res.Solutions)
	assert.Positive(t, res.Stats.GaveUp)
	assert.Less(t, res.Stats.Processed, int64(100000))
	requireRestCovers(t, res, []float64{0})
	for _, b := range res.Rest {
		assert.Less(t, b.MaxWidth(), 1e-100)
	}
}

// math.Pi lies just below π, so the root π sits outside [0, math.Pi] while
// its Krawczyk images still touch the box. Only roots inside the search box
// may be reported.
func TestFindAll_RootsStayInsideBox(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p := lookup(t, "sine")
	box := interval.Box{interval.New(0, math.Pi)}
	res, err := solver.FindAll(p.System, box, solver.WithRest(), solver.WithContext(ctx))
	require.NoError(t, err)
	require.False(t, res.Interrupted)
	requireSound(t, p.System, res)
	assert.LessOrEqual(t, len(res.Solutions), 1)
	for _, s := range res.Solutions {
		assert.Truef(t, s.Enclosure.Subset(box), "%v escapes %v", s.Enclosure, box)
	}
}

func TestFindAll_SingularPowell(t *testing.T) {
	p := lookup(t, "powell")
	res, err := solver.FindAll(p.System, p.Box(), solver.WithRest(), solver.WithGiveUpWidth(p.GiveUpWidth))
	require.NoError(t, err)
	assert.Empty(t, res.Solutions)
	require.NotEmpty(t, res.Rest)
	requireRestCovers(t, res, p.Roots[0])
	for _, b := range res.Rest {
		assert.Less(t, b.MaxWidth(), 1.0)
	}
}

func TestFindAll_SingularPowell_Exhaustive(t *testing.T) {
	if testing.Short() {
		t.Skip("splits down to floating-point resolution")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	p := lookup(t, "powell")
	res, err := solver.FindAll(p.System, p.Box(), solver.WithRest(), solver.WithContext(ctx))
	require.NoError(t, err)
	require.False(t, res.Interrupted, "search did not terminate")
	assert.Empty(t, res.Solutions)
	assert.Positive(t, res.Stats.GaveUp)
	requireRestCovers(t, res, p.Roots[0])
}

func TestFindAll_DomainErrorsStayInside(t *testing.T) {
	p := lookup(t, "sqrt-shift")
	res, err := solver.FindAll(p.System, p.Box(),
		solver.WithGiveUpWidth(p.GiveUpWidth), solver.WithRest())
	require.NoError(t, err)
	requireSound(t, p.System, res)
	requireRoots(t, p.Roots, res)

	// Only boxes hugging the domain boundary may be left over.
	for _, b := range res.Rest {
		assert.True(t, b[0].Contains(0) || b[0].Hi < 1e-6, "rest box %v", b)
	}
}

func TestFindAll_WorkerCountDoesNotChangeResult(t *testing.T) {
	p := lookup(t, "four-roots")
	one, err := solver.FindAll(p.System, p.Box(), solver.WithWorkers(1))
	require.NoError(t, err)
	many, err := solver.FindAll(p.System, p.Box(), solver.WithWorkers(8))
	require.NoError(t, err)

	require.Len(t, many.Solutions, len(one.Solutions))
	for i := range one.Solutions {
		assert.True(t, one.Solutions[i].Enclosure.Intersects(many.Solutions[i].Enclosure))
	}
	requireSound(t, p.System, many)
}

func TestFindAll_Preconditions(t *testing.T) {
	p := lookup(t, "circle-line")

	_, err := solver.FindAll(solver.System{}, p.Box())
	assert.ErrorIs(t, err, solver.ErrNilSystem)

	_, err = solver.FindAll(p.System, interval.Box{})
	assert.ErrorIs(t, err, solver.ErrEmptyBox)

	_, err = solver.FindAll(p.System, interval.Box{interval.New(0, 1), interval.Empty()})
	assert.ErrorIs(t, err, solver.ErrEmptyBox)

	_, err = solver.FindAll(p.System, interval.Cube(3, -1, 1))
	assert.ErrorIs(t, err, solver.ErrDimensionMismatch)

	_, err = solver.FindAll(p.System, interval.Box{interval.New(0, 1), {Lo: math.NaN(), Hi: 1}})
	assert.ErrorIs(t, err, solver.ErrMalformedBox)

	for _, inf := range []float64{math.Inf(1), math.Inf(-1)} {
		_, err = solver.FindAll(p.System, interval.Box{interval.New(0, 1), {Lo: inf, Hi: inf}})
		assert.ErrorIs(t, err, solver.ErrMalformedBox)
	}

	short := func(x []interval.Interval) ([]interval.Interval, error) { return x[:1], nil }
	bad := solver.NewSystem(2, short, p.System.DF)
	_, err = solver.FindAll(bad, p.Box())
	assert.ErrorIs(t, err, solver.ErrBadSystem)
}

func TestFindAll_OptionViolations(t *testing.T) {
	p := lookup(t, "circle-line")
	for name, opt := range map[string]solver.Option{
		"workers":   solver.WithWorkers(0),
		"giveup":    solver.WithGiveUpWidth(-1),
		"giveupNaN": solver.WithGiveUpWidth(math.NaN()),
		"verbosity": solver.WithVerbosity(-1),
		"edge":      solver.WithEdgeRatio(1.5),
		"recover":   solver.WithRecoverRatio(0),
		"trim":      solver.WithTrimShrink(1),
		"refine":    solver.WithRefineStopRatio(-0.1),
		"maxRefine": solver.WithMaxRefine(0),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := solver.FindAll(p.System, p.Box(), opt)
			assert.ErrorIs(t, err, solver.ErrOptionViolation)
		})
	}
}

func TestFindAll_Cancelled(t *testing.T) {
	p := lookup(t, "four-roots")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := solver.FindAll(p.System, p.Box(), solver.WithContext(ctx))
	require.NoError(t, err)
	assert.True(t, res.Interrupted)
	assert.Empty(t, res.Solutions)
	require.Len(t, res.Rest, 1)
	assert.Equal(t, p.Box(), res.Rest[0])
}

func TestFindAll_Metrics(t *testing.T) {
	p := lookup(t, "four-roots")
	reg := prometheus.NewRegistry()
	m := solver.NewMetrics(reg)

	res, err := solver.FindAll(p.System, p.Box(), solver.WithMetrics(m))
	require.NoError(t, err)

	assert.Equal(t, float64(res.Stats.Existent), testutil.ToFloat64(m.Boxes.WithLabelValues("existent")))
	assert.Equal(t, float64(res.Stats.NonExistent), testutil.ToFloat64(m.Boxes.WithLabelValues("nonexistent")))
	assert.Equal(t, float64(res.Stats.Inconclusive), testutil.ToFloat64(m.Boxes.WithLabelValues("inconclusive")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Solutions))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.QueueDepth))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SearchDuration))

	// Every processed box lands in exactly one of the pipeline classes.
	s := res.Stats
	assert.Equal(t, s.Processed, s.Existent+s.NonExistent+s.Inconclusive+s.GaveUp)
}

func TestFindAll_VerbosityAnnouncesRoots(t *testing.T) {
	p := lookup(t, "circle-line")
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	_, err := solver.FindAll(p.System, p.Box(), solver.WithVerbosity(1), solver.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(buf.String(), `"msg":"root proven"`))
}
