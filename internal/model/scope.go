package model

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the caller for a single request.
type Scope struct {
	UserID   string
	FamilyID string
}
