// Package variant provides checked access to the active branch of a tagged
// union, where the union type carries an explicit discriminator and each
// branch is pulled out by an extractor registered for its tag.
package variant

import (
	"fmt"
	"slices"
	"sync"

	"github.com/diwise/entity-service/pkg/errors"
)

// Accessor holds the extractor table for a union type U discriminated by T.
// The table is built once, on first use.
type Accessor[U any, T comparable] struct {
	name  string
	table func() map[T]func(U) any
}

// New creates an Accessor that lazily builds its extractor table with build
func New[U any, T comparable](name string, build func() map[T]func(U) any) *Accessor[U, T] {
	return &Accessor[U, T]{
		name:  name,
		table: sync.OnceValue(build),
	}
}

// Registered reports whether an extractor exists for tag
func (a *Accessor[U, T]) Registered(tag T) bool {
	_, ok := a.table()[tag]
	return ok
}

// Tags returns the tags that have a registered extractor, in no particular order
func (a *Accessor[U, T]) Tags() []T {
	tags := make([]T, 0, len(a.table()))
	for tag := range a.table() {
		tags = append(tags, tag)
	}
	return tags
}

// Get returns the branch of u selected by tag, typed as R
func Get[R any, U any, T comparable](a *Accessor[U, T], u U, tag T) (R, error) {
	var zero R

	extract, ok := a.table()[tag]
	if !ok {
		return zero, errors.NewConversionError(errors.ErrUnsupportedVariant, "no %s accessor registered for %v", a.name, tag)
	}

	branch, ok := extract(u).(R)
	if !ok {
		return zero, errors.NewConversionError(errors.ErrUnsupportedVariant, "%s accessor for %v does not yield %T", a.name, tag, zero)
	}

	return branch, nil
}

// GetAllowed works like Get but also rejects tags that are not in allowed
func GetAllowed[R any, U any, T comparable](a *Accessor[U, T], u U, tag T, allowed ...T) (R, error) {
	var zero R

	if !a.Registered(tag) {
		return zero, errors.NewConversionError(errors.ErrUnsupportedVariant, "no %s accessor registered for %v", a.name, tag)
	}

	if !slices.Contains(allowed, tag) {
		return zero, errors.NewConversionError(errors.ErrDisallowedVariant, "%s %v is not one of %s", a.name, tag, fmt.Sprint(allowed))
	}

	return Get[R](a, u, tag)
}
