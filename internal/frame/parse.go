package frame

import (
	"errors"
	"math"
)

// Parse failures. All of them are non-fatal at the session level: the
// offending line is reported and skipped, and the next line is awaited.
var (
	// ErrMalformedFrame is returned for lines too short to be a frame
	// or missing the comma separator.
	ErrMalformedFrame = errors.New("frame: malformed frame")

	// ErrUnknownType is returned when the frame tag is neither 'L' nor 'M'.
	ErrUnknownType = errors.New("frame: unknown frame type")

	// ErrMissingNumber is returned for a rotate frame with no digits
	// after the optional sign ("M," and "M,-").
	ErrMissingNumber = errors.New("frame: rotate frame missing number")
)

// Parse turns one raw line into a Frame.
//
// The grammar is fixed-shape: a one-byte tag, a comma at index 1, then
// the body.
//
//	L,<char>  load frame. Only the byte at index 2 is read; anything
//	          after it is ignored, the load frame is three bytes on the
//	          wire and senders pad freely.
//	M,<int>   rotate frame. An optional leading '-', then decimal
//	          digits consumed greedily; trailing non-digits are ignored.
func Parse(line string) (Frame, error) {
	// Tag plus comma is the shortest shape worth classifying; anything
	// shorter, or without the comma at index 1, is malformed outright.
	// A bare "M," gets as far as the digit scan so the error can name
	// the real problem, the missing number.
	if len(line) < 2 || line[1] != ',' {
		return nil, ErrMalformedFrame
	}

	switch line[0] {
	case 'L':
		if len(line) < 3 {
			return nil, ErrMalformedFrame
		}
		return Load{Symbol: line[2]}, nil
	case 'M':
		n, err := parseAmount(line[2:])
		if err != nil {
			return nil, err
		}
		return Rotate{Amount: n}, nil
	default:
		return nil, ErrUnknownType
	}
}

// parseAmount reads an optional sign and a greedy run of decimal
// digits. The grammar puts no bound on digit count, so oversized
// magnitudes saturate at the int limits instead of erroring: the rotor
// reduces amounts mod 26 anyway, and a glitched sender must not be able
// to kill the session.
func parseAmount(s string) (int, error) {
	i := 0
	neg := false
	if i < len(s) && s[i] == '-' {
		neg = true
		i++
	}

	start := i
	n := 0
	saturated := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int(s[i] - '0')
		if !saturated {
			if n > (math.MaxInt-d)/10 {
				saturated = true
			} else {
				n = n*10 + d
			}
		}
		i++
	}
	if i == start {
		return 0, ErrMissingNumber
	}

	if saturated {
		if neg {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}
	if neg {
		n = -n
	}
	return n, nil
}
