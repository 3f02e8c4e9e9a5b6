package manifest

// pipfileDTO mirrors the TOML structure of a Pipfile.
type pipfileDTO struct {
	Sources     []sourceDTO    `toml:"source"`
	Packages    map[string]any `toml:"packages"`
	DevPackages map[string]any `toml:"dev-packages"`
	Requires    requiresDTO    `toml:"requires"`

	// Pipenv holds installer-specific settings. Tolerated, not interpreted.
	Pipenv map[string]any `toml:"pipenv"`
}

// sourceDTO represents a [[source]] table.
type sourceDTO struct {
	URL       string `toml:"url"`
	VerifySSL *bool  `toml:"verify_ssl"`
	Name      string `toml:"name"`
}

// requiresDTO represents the [requires] table.
type requiresDTO struct {
	PythonVersion     string `toml:"python_version"`
	PythonFullVersion string `toml:"python_full_version"`
}
