package simulation

import "errors"

var (
	// ErrData marks failures caused by the historical dataset: a missing
	// source, a missing column or a sample that is empty after coercion.
	ErrData = errors.New("data error")

	// ErrParameter marks scenario parameters outside their domain.
	ErrParameter = errors.New("parameter error")
)
