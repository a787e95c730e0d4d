// Package rotate implements the list right-rotation exercise.
package rotate

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrEmpty is returned when there is nothing to rotate.
var ErrEmpty = errors.New("rotate: list is empty")

// Right returns a copy of xs shifted right by k positions; elements pushed
// off the end wrap to the front. Negative k shifts left.
func Right[T any](xs []T, k int) []T {
	n := len(xs)
	out := make([]T, n)
	if n == 0 {
		return out
	}
	shift := ((k % n) + n) % n
	for i := range xs {
		out[(i+shift)%n] = xs[i]
	}
	return out
}

// Run reads the element count, the elements and the shift from r as
// whitespace separated integers and writes the rotated list to w, each
// element followed by a space.
func Run(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	next := func(what string) (int, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, fmt.Errorf("read %s: %w", what, err)
			}
			return 0, fmt.Errorf("read %s: %w", what, io.ErrUnexpectedEOF)
		}
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			return 0, fmt.Errorf("parse %s: %w", what, err)
		}
		return v, nil
	}

	n, err := next("count")
	if err != nil {
		return err
	}
	if n <= 0 {
		return ErrEmpty
	}
	xs := make([]int, n)
	for i := range xs {
		if xs[i], err = next(fmt.Sprintf("element %d", i+1)); err != nil {
			return err
		}
	}
	k, err := next("shift")
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, v := range Right(xs, k) {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(' ')
	}
	_, err = io.WriteString(w, b.String())
	return err
}
