package gen

// Config defines the configuration for the generator
type Config struct {
	DryRun bool // Render and plan only, nothing is written
}
