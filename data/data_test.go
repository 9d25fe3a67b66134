package data

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spectro/dsp/interp"
)

func rawSpectra(t *testing.T, axis []float64, rows [][]float64) *Table {
	t.Helper()

	atts := make([]*Variable, len(axis))
	for i, x := range axis {
		atts[i] = NewFeature(x)
	}

	class := MakeDiscrete("class", []string{"a", "b"})
	y := make([][]float64, len(rows))
	metas := make([][]Value, len(rows))

	for i := range rows {
		y[i] = []float64{float64(i % 2)}
		metas[i] = []Value{{Str: "s" + FormatPosition(float64(i))}}
	}

	tbl, err := NewTable(NewDomain(atts, []*Variable{class}, []*Variable{MakeString("id")}), rows, y, metas)
	require.NoError(t, err)

	return tbl
}

func linearRows(axis []float64, n int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, len(axis))
		for j, x := range axis {
			rows[i][j] = float64(i+1) * x / 1000
		}
	}

	return rows
}

func TestGetX(t *testing.T) {
	tbl := rawSpectra(t, []float64{1000, 1001.5, 1003}, linearRows([]float64{1000, 1001.5, 1003}, 2))

	xs, err := GetX(tbl)
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 1001.5, 1003}, xs)

	named := NewDomain([]*Variable{NewContinuous(" 12.5"), NewContinuous("13")}, nil, nil)
	xs, err = named.Axis()
	require.NoError(t, err)
	assert.Equal(t, []float64{12.5, 13}, xs)

	bad := NewDomain([]*Variable{NewContinuous("12"), NewContinuous("intensity")}, nil, nil)
	_, err = bad.Axis()
	require.ErrorIs(t, err, ErrNoAxis)
	assert.Contains(t, err.Error(), "intensity")
}

func TestVariableEquality(t *testing.T) {
	a := NewContinuous("x")
	assert.False(t, a.Equal(NewContinuous("x")), "fresh identities differ")
	assert.True(t, MakeContinuous("map_x").Equal(MakeContinuous("map_x")))
	assert.False(t, MakeContinuous("map_x").Equal(MakeContinuous("map_y")))
	assert.False(t, MakeContinuous("c").Equal(MakeDiscrete("c", nil)))
	assert.False(t, MakeDiscrete("c", []string{"a"}).Equal(MakeDiscrete("c", []string{"b"})))
	assert.False(t, a.Equal(a.Copy()), "copy destroys identity")
	assert.True(t, MakeFeature(1650.5).Equal(MakeFeature(1650.5)))
	assert.False(t, NewFeature(1650.5).Equal(MakeFeature(1650.5)))
	assert.True(t, a.Derive(Compute{Kind: ComputeCopy, Source: a}).Equal(a.Derive(Compute{Kind: ComputeCopy, Source: a})))

	f1 := FeaturesWithInterpolation([]float64{1, 2, 3})
	f2 := FeaturesWithInterpolation([]float64{1, 2, 3})
	f3 := FeaturesWithInterpolation([]float64{1, 2, 3}, WithKind(interp.KindNearest))

	for i := range f1 {
		assert.True(t, f1[i].Equal(f2[i]))
		assert.False(t, f1[i].Equal(f3[i]))
		assert.True(t, f1[i].Interpolates())
	}

	assert.False(t, f1[0].Equal(f2[1]))
	assert.True(t, NewDomain(f1, nil, nil).Equal(NewDomain(f2, nil, nil)))
}

func TestConvertSameDomainIsNoOp(t *testing.T) {
	axis := []float64{1000, 1002, 1004, 1006}
	tbl := rawSpectra(t, axis, linearRows(axis, 3))

	out, err := Convert(tbl.Domain, tbl)
	require.NoError(t, err)
	assert.Equal(t, tbl.X, out.X)
	assert.Equal(t, tbl.Y, out.Y)
	assert.Equal(t, tbl.Metas, out.Metas)

	out.X[0][0] = -1
	assert.NotEqual(t, -1.0, tbl.X[0][0], "conversion must not alias the source")
}

func TestConvertDestroyedAttributesFails(t *testing.T) {
	axis := []float64{1000, 1002, 1004}
	train := rawSpectra(t, axis, linearRows(axis, 2))

	copies := make([]*Variable, len(train.Domain.Attributes))
	for i, v := range train.Domain.Attributes {
		copies[i] = v.Copy()
	}

	test, err := NewTable(NewDomain(copies, train.Domain.ClassVars, train.Domain.Metas), train.X, train.Y, train.Metas)
	require.NoError(t, err)

	_, err = Convert(train.Domain, test)
	require.ErrorIs(t, err, ErrDomainTransformation)
}

func TestConvertDestroyedAttributesWithInterpolation(t *testing.T) {
	axis := []float64{1000, 1002, 1004}
	train := rawSpectra(t, axis, linearRows(axis, 2))

	features := FeaturesWithInterpolation(axis, WithSourceDomain(train.Domain))
	capable := NewDomain(features, train.Domain.ClassVars, train.Domain.Metas)

	copies := make([]*Variable, len(axis))
	for i, v := range train.Domain.Attributes {
		copies[i] = v.Copy()
	}

	test, err := NewTable(NewDomain(copies, train.Domain.ClassVars, train.Domain.Metas), train.X, train.Y, train.Metas)
	require.NoError(t, err)

	out, err := Convert(capable, test)
	require.NoError(t, err)
	assert.Equal(t, train.X, out.X, "interpolation onto the native axis is exact")
	assert.Equal(t, train.Y, out.Y)
	assert.Equal(t, train.Metas, out.Metas)
}

func TestConvertAutoInterpolate(t *testing.T) {
	srcAxis := make([]float64, 0, 50)
	for x := 1000.0; x < 1100; x += 2 {
		srcAxis = append(srcAxis, x)
	}

	src := rawSpectra(t, srcAxis, linearRows(srcAxis, 3))

	target := make([]float64, 0, 80)
	for x := 950.5; x < 1150; x += 2.5 {
		target = append(target, x)
	}

	dom := NewDomain(FeaturesWithInterpolation(target), nil, nil)
	out, err := Convert(dom, src)
	require.NoError(t, err)

	valid := 0
	for _, x := range target {
		if x >= srcAxis[0] && x <= srcAxis[len(srcAxis)-1] {
			valid++
		}
	}

	for r := range out.X {
		defined := 0
		for j, v := range out.X[r] {
			if !math.IsNaN(v) {
				defined++
				assert.InDelta(t, float64(r+1)*target[j]/1000, v, 1e-12)
			}
		}

		assert.Equal(t, valid, defined)
	}

	back, err := Convert(NewDomain(FeaturesWithInterpolation(srcAxis), nil, nil), out)
	require.NoError(t, err)

	for r := range back.X {
		for j := 1; j < len(srcAxis)-1; j++ {
			assert.InDelta(t, src.X[r][j], back.X[r][j], 1e-12)
		}
	}
}

func TestConvertBoundaryIsClosed(t *testing.T) {
	axis := []float64{10, 20, 30}
	src := rawSpectra(t, axis, [][]float64{{1, 2, 3}})

	dom := NewDomain(FeaturesWithInterpolation([]float64{math.Nextafter(10, 0), 10, 25, 30, math.Nextafter(30, 40)}), nil, nil)
	out, err := Convert(dom, src)
	require.NoError(t, err)

	row := out.X[0]
	assert.True(t, math.IsNaN(row[0]))
	assert.Equal(t, 1.0, row[1])
	assert.Equal(t, 2.5, row[2])
	assert.Equal(t, 3.0, row[3])
	assert.True(t, math.IsNaN(row[4]))
}

func TestConvertOutsideRangeIsNaN(t *testing.T) {
	axis := []float64{10, 20, 30}
	src := rawSpectra(t, axis, [][]float64{{1, 2, 3}})

	dom := NewDomain(FeaturesWithInterpolation([]float64{100, 200}), nil, nil)
	out, err := Convert(dom, src)
	require.NoError(t, err)
	require.Len(t, out.X, 1)
	assert.True(t, math.IsNaN(out.X[0][0]))
	assert.True(t, math.IsNaN(out.X[0][1]))
}

func TestConvertKeepsUndefinedRows(t *testing.T) {
	axis := []float64{10, 20}
	src := rawSpectra(t, axis, [][]float64{{math.NaN(), math.NaN()}})

	out, err := Convert(NewDomain(src.Domain.Attributes[:1], nil, nil), src)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.X[0][0]))
}

func TestConvertMissingTargetsAndMetas(t *testing.T) {
	axis := []float64{1, 2}
	src := rawSpectra(t, axis, [][]float64{{1, 2}})

	otherClass := MakeDiscrete("other", []string{"x"})
	otherMeta := MakeContinuous("z")
	dom := NewDomain(src.Domain.Attributes, []*Variable{otherClass}, []*Variable{otherMeta, src.Domain.Metas[0]})

	out, err := Convert(dom, src)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(out.Y[0][0]))
	assert.True(t, math.IsNaN(out.Metas[0][0].Num))
	assert.Equal(t, src.Metas[0][0], out.Metas[0][1])

	dropped := NewDomain(src.Domain.Attributes, nil, nil)
	out, err = Convert(dropped, src)
	require.NoError(t, err)
	assert.Empty(t, out.Y[0])
	assert.Empty(t, out.Metas[0])
}

func TestConvertCopyCompute(t *testing.T) {
	axis := []float64{1, 2}
	src := rawSpectra(t, axis, [][]float64{{5, 6}})

	a := src.Domain.Attributes[1]
	renamed := NewContinuous("second").Derive(Compute{Kind: ComputeCopy, Source: a})
	idCopy := NewString("label").Derive(Compute{Kind: ComputeCopy, Source: src.Domain.Metas[0]})

	out, err := Convert(NewDomain([]*Variable{renamed}, nil, []*Variable{idCopy}), src)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{6}}, out.X)
	assert.Equal(t, "s0", out.Metas[0][0].Str)
}

func TestInterpolationChain(t *testing.T) {
	axis := []float64{0, 1, 2, 3, 4, 5, 6}
	src := rawSpectra(t, axis, linearRows(axis, 2))

	first := NewDomain(FeaturesWithInterpolation([]float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5}, WithSourceDomain(src.Domain)), nil, nil)
	mid, err := Convert(first, src)
	require.NoError(t, err)

	second := NewDomain(FeaturesWithInterpolation([]float64{1, 2, 3}, WithSourceDomain(first)), nil, nil)
	direct, err := Convert(second, mid)
	require.NoError(t, err)

	// src is converted into first before interpolating onto second.
	chained, err := Convert(second, src)
	require.NoError(t, err)

	for r := range direct.X {
		for j := range direct.X[r] {
			assert.InDelta(t, direct.X[r][j], chained.X[r][j], 1e-12)
		}
	}
}

func TestInterpolationNaNHandling(t *testing.T) {
	axis := []float64{0, 1, 2, 3}
	src := rawSpectra(t, axis, [][]float64{{0, math.NaN(), 2, 3}})

	skip, err := NewInterpolation([]float64{0.5, 1, 2.5}).Transform(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 1, 2.5}, skip[0])

	keep, err := NewInterpolation([]float64{0.5, 2.5}, WithNaNs()).Transform(src)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(keep[0][0]))
	assert.Equal(t, 2.5, keep[0][1])
}

func TestInterpolationUnsortedAxis(t *testing.T) {
	axis := []float64{3, 1, 2, 0}
	src := rawSpectra(t, axis, [][]float64{{30, 10, 20, 0}})

	out, err := NewInterpolation([]float64{0.5, 2.5}).Transform(src)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 25}, out[0])
}

func TestInterpolationWithoutAxisFails(t *testing.T) {
	tbl, err := NewTable(NewDomain([]*Variable{NewContinuous("a")}, nil, nil), [][]float64{{1}}, nil, nil)
	require.NoError(t, err)

	_, err = NewInterpolation([]float64{1}).Transform(tbl)
	require.ErrorIs(t, err, ErrDomainTransformation)
	require.ErrorIs(t, err, ErrNoAxis)
}

func TestNewTableShape(t *testing.T) {
	d := NewDomain([]*Variable{NewFeature(1)}, nil, nil)

	_, err := NewTable(d, [][]float64{{1, 2}}, nil, nil)
	require.ErrorIs(t, err, ErrShape)

	_, err = NewTable(d, [][]float64{{1}}, [][]float64{{1}}, nil)
	require.ErrorIs(t, err, ErrShape)

	tbl, err := NewTable(d, [][]float64{{1}, {2}}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestSelectAndColumns(t *testing.T) {
	axis := []float64{1, 2}
	src := rawSpectra(t, axis, [][]float64{{1, 2}, {3, 4}, {5, 6}})

	sub := src.Select([]int{2, 0})
	assert.Equal(t, [][]float64{{5, 6}, {1, 2}}, sub.X)

	col, ok := src.Column(src.Domain.Attributes[1])
	require.True(t, ok)
	assert.Equal(t, []float64{2, 4, 6}, col)

	_, ok = src.Column(src.Domain.Metas[0])
	assert.False(t, ok, "string metas have no numeric column")

	y, ok := src.Target()
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1, 0}, y)
}

func TestBuildSpecTable(t *testing.T) {
	axis := []float64{1, 2, 3}
	spectra := [][]float64{{1, 2, 3}, {4, 5, 6}}
	coords := [][2]float64{{0, 0}, {1.5, 0}}

	a, err := BuildSpecTable(axis, spectra, WithCoordinates(coords))
	require.NoError(t, err)

	b, err := BuildSpecTable(axis, spectra, WithCoordinates(coords))
	require.NoError(t, err)

	assert.True(t, a.Domain.Equal(b.Domain))
	assert.Equal(t, MapX, a.Domain.Metas[0].Name())
	assert.Equal(t, 1.5, a.Metas[1][0].Num)

	label := MakeString("label")
	c, err := BuildSpecTable(axis, spectra,
		WithTargets([]*Variable{MakeDiscrete("class", []string{"p", "q"})}, [][]float64{{0}, {1}}),
		WithMetas([]*Variable{label}, [][]Value{{{Str: "first"}}, {{Str: "second"}}}))
	require.NoError(t, err)
	assert.Equal(t, "second", c.Metas[1][0].Str)
	assert.Equal(t, 1.0, c.Y[1][0])

	_, err = BuildSpecTable(axis, spectra, WithCoordinates(coords[:1]))
	require.True(t, errors.Is(err, ErrShape))
}
