package util

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func GetKeys[A comparable, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func SortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	slices.Sort(keys)
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

// ParseNotes reads MIDI note numbers separated by commas, dashes or spaces,
// e.g. "60,64,67" or the chord key form "60-64-67".
func ParseNotes(s string) ([]uint8, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '-' || r == ' ' || r == '\t'
	})
	res := make([]uint8, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad note %q: %w", f, err)
		}
		if n < 0 || n > 127 {
			return nil, fmt.Errorf("note %d out of range 0-127", n)
		}
		res = append(res, uint8(n))
	}
	return res, nil
}

func ToInts[A constraints.Integer](nums []A) []int {
	res := make([]int, 0, len(nums))
	for _, v := range nums {
		res = append(res, int(v))
	}
	return res
}
