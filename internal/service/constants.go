package service

const (
	// Duration projection sampling
	ProjectionPoints = 18  // samples across the duration domain
	MinDurationMin   = 1   // matches the duration field's lower bound
	MaxDurationMin   = 180 // matches the duration field's upper bound
)
