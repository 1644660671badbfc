package limit

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// ErrInvalidSize is returned when a memory limit does not match <digits><unit>
var ErrInvalidSize = errors.New("invalid memory limit")

// Size is a memory limit as typed by the user, e.g. "256m".
// The raw text is what gets written to the kernel, the byte count is only
// used for display and sanity checks.
type Size struct {
	raw   string
	bytes uint64
}

// ParseSize validates the memory limit string
func ParseSize(str string) (Size, error) {
	var s Size
	if err := s.Set(str); err != nil {
		return Size{}, err
	}
	return s, nil
}

// Set parses the size value from string. Accepted units are k, m, g in either case.
func (s *Size) Set(str string) error {
	if str == "" {
		return errors.Wrap(ErrInvalidSize, "empty value")
	}

	factor := 0
	switch str[len(str)-1] {
	case 'k', 'K':
		factor = 10
	case 'm', 'M':
		factor = 20
	case 'g', 'G':
		factor = 30
	default:
		return errors.Wrapf(ErrInvalidSize, "%q: unit must be one of k, K, m, M, g, G", str)
	}

	num := str[:len(str)-1]
	if num == "" {
		return errors.Wrapf(ErrInvalidSize, "%q: missing value", str)
	}
	for i := 0; i < len(num); i++ {
		if num[i] < '0' || num[i] > '9' {
			return errors.Wrapf(ErrInvalidSize, "%q: value must be digits", str)
		}
	}

	// values beyond uint64 still go to the kernel as typed, only the byte
	// count saturates. num is all digits so ParseUint can only fail on range.
	b := uint64(math.MaxUint64)
	if t, err := strconv.ParseUint(num, 10, 64); err == nil && t <= math.MaxUint64>>factor {
		b = t << factor
	}
	*s = Size{raw: str, bytes: b}
	return nil
}

// String returns the size exactly as it was given
func (s Size) String() string {
	return s.raw
}

// IsZero reports whether no memory limit was requested
func (s Size) IsZero() bool {
	return s.raw == ""
}

// Byte return size in bytes
func (s Size) Byte() uint64 {
	return s.bytes
}

// Human prints the size in binary units
func (s Size) Human() string {
	t := s.bytes
	switch {
	case t < 1<<10:
		return fmt.Sprintf("%d B", t)
	case t < 1<<20:
		return fmt.Sprintf("%.1f KiB", float64(t)/float64(1<<10))
	case t < 1<<30:
		return fmt.Sprintf("%.1f MiB", float64(t)/float64(1<<20))
	default:
		return fmt.Sprintf("%.1f GiB", float64(t)/float64(1<<30))
	}
}
