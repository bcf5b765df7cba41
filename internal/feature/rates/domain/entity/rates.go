// Package entity defines the domain models for the rates feature.
package entity

// Rates holds the INR exchange rates the price list displays alongside.
type Rates struct {
	USD float64
	EUR float64
	AED float64
}
