package router

import "errors"

var (
	ErrNoRoute            = errors.New("no route found")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidVenue       = errors.New("invalid venue")
	ErrInvalidStepCount   = errors.New("step count must be at least 1")
	ErrArithmeticOverflow = errors.New("quantization arithmetic overflow")
	// ErrNoViableRoute means every combination of venue allocations was
	// unreachable: the winning DP value is still sentinel-poisoned.
	ErrNoViableRoute = errors.New("no viable route across venues")
	// ErrAllocationMismatch means the reconstructed quanta do not sum to the
	// requested step count. This indicates an indexing bug and must never be
	// silently truncated.
	ErrAllocationMismatch    = errors.New("reconstructed allocation does not cover all steps")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
	ErrUnsupportedCurve      = errors.New("unsupported curve type")
)
