package pipeline

// Stage identifies how far a recomputation cycle got.
type Stage int

const (
	StageNoPath Stage = iota
	StagePathResolved
	StageLoaded
	StageReshaped
	StageError
)

func (s Stage) String() string {
	switch s {
	case StageNoPath:
		return "no-path"
	case StagePathResolved:
		return "path-resolved"
	case StageLoaded:
		return "loaded"
	case StageReshaped:
		return "reshaped"
	case StageError:
		return "error"
	default:
		return "unknown"
	}
}

// Component names the pipeline step an error originated from.
type Component string

const (
	ComponentResolver Component = "path-resolver"
	ComponentLoader   Component = "table-loader"
	ComponentReshaper Component = "reshaper"
)
