package variant

import (
	"errors"
	"testing"

	esErrors "github.com/diwise/entity-service/pkg/errors"
	"github.com/matryer/is"
)

type shape int

const (
	circle shape = iota
	square
	triangle
)

type figure struct {
	kind   shape
	radius float64
	side   int
}

func testAccessor(builds *int) *Accessor[figure, shape] {
	return New("figure", func() map[shape]func(figure) any {
		*builds++
		return map[shape]func(figure) any{
			circle: func(f figure) any { return f.radius },
			square: func(f figure) any { return f.side },
		}
	})
}

func TestGetReturnsActiveBranch(t *testing.T) {
	is := is.New(t)
	builds := 0
	a := testAccessor(&builds)

	r, err := Get[float64](a, figure{kind: circle, radius: 2.5}, circle)
	is.NoErr(err)
	is.Equal(r, 2.5)

	s, err := Get[int](a, figure{kind: square, side: 4}, square)
	is.NoErr(err)
	is.Equal(s, 4)

	is.Equal(builds, 1) // table should only be built once
}

func TestGetWithUnregisteredTagFails(t *testing.T) {
	is := is.New(t)
	builds := 0
	a := testAccessor(&builds)

	_, err := Get[int](a, figure{kind: triangle}, triangle)
	is.True(errors.Is(err, esErrors.ErrUnsupportedVariant))
	is.True(errors.Is(err, esErrors.ErrConversion))
}

func TestGetWithWrongResultTypeFails(t *testing.T) {
	is := is.New(t)
	builds := 0
	a := testAccessor(&builds)

	_, err := Get[string](a, figure{kind: circle}, circle)
	is.True(errors.Is(err, esErrors.ErrUnsupportedVariant))
}

func TestGetAllowedRejectsTagsOutsideTheAllowSet(t *testing.T) {
	is := is.New(t)
	builds := 0
	a := testAccessor(&builds)

	_, err := GetAllowed[int](a, figure{kind: square, side: 1}, square, circle)
	is.True(errors.Is(err, esErrors.ErrDisallowedVariant))

	side, err := GetAllowed[int](a, figure{kind: square, side: 1}, square, circle, square)
	is.NoErr(err)
	is.Equal(side, 1)
}

func TestGetAllowedReportsUnregisteredBeforeDisallowed(t *testing.T) {
	is := is.New(t)
	builds := 0
	a := testAccessor(&builds)

	_, err := GetAllowed[int](a, figure{}, triangle, circle)
	is.True(errors.Is(err, esErrors.ErrUnsupportedVariant))
}
