package config

type SecurityLevel int

const (
	SecurityPublic  SecurityLevel = iota // No authentication
	SecurityRefresh                      // Refresh token required
	SecurityAccess                       // Access token required
)

// EndpointSecurityConfig maps named HTTP routes to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Auth - Public
	"auth.login":  SecurityPublic,
	"healthz":     SecurityPublic,
	"files.serve": SecurityPublic,

	// Auth - Refresh Protected
	"auth.refresh": SecurityRefresh,

	// Blog - Public reads
	"blogs.list":   SecurityPublic,
	"blogs.bySlug": SecurityPublic,

	// Catalogue - Public reads for the storefront
	"motorTypes.list": SecurityPublic,
	"motorTypes.get":  SecurityPublic,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
