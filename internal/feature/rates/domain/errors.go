// Package domain defines domain-level errors for the rates feature.
package domain

import "errors"

// ErrRateProvider indicates the exchange-rate provider was unreachable or
// answered with a non-success status.
var ErrRateProvider = errors.New("rate provider error")
