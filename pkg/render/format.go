package render

//go:generate go run github.com/dmarkham/enumer -type Format -trimprefix Format -transform lower -yaml -output format.gen.go

// Format selects how a configuration is written out
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
	FormatPython
)
