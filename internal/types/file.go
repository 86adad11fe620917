package types

// GeneratedFile is one rendered skeleton.
type GeneratedFile struct {
	Path     string
	Template string
	Content  []byte
}
