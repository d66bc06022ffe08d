// Package config holds the configurable business rules the application
// services enforce. Storage-level shapes live in the domain package; the
// numbers here are deployment policy, not data model.
package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Search constraints
	MaxSearchResults      int
	MinSearchPrefixLength int

	// Page constraints
	MaxComponentsPerPage int

	// Post constraints
	MaxPostLength int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		// Search constraints
		MaxSearchResults:      50,
		MinSearchPrefixLength: 1,

		// Page constraints
		MaxComponentsPerPage: 100,

		// Post constraints
		MaxPostLength: 5000,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More restrictive limits for production
	config.MaxSearchResults = 25
	config.MinSearchPrefixLength = 2
	config.MaxComponentsPerPage = 50
	config.MaxPostLength = 2000

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxComponentsPerPage = 500
	config.MaxPostLength = 50000

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}
