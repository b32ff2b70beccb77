package domain

import (
	"io/fs"
	"strings"
)

// TargetKind is resolved once after the target is opened
type TargetKind int

const (
	KindFile TargetKind = iota
	KindDirectory
	KindOther
)

func (k TargetKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// Target is the path named on the command line plus its kind
type Target struct {
	Path string
	Kind TargetKind
}

// KindFromMode maps a file mode to a TargetKind
func KindFromMode(mode fs.FileMode) TargetKind {
	switch {
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// IsDir reports whether propagation applies to this target
func (t Target) IsDir() bool {
	return t.Kind == KindDirectory
}

// Outcome describes how an operation finished
type Outcome int

const (
	OutcomeDone Outcome = iota
	// OutcomeUnsupported is returned for operations that are accepted but not implemented yet
	OutcomeUnsupported
)

// Result is returned by the executor on success
type Result struct {
	Outcome    Outcome
	Operation  OpKind
	Target     Target
	Removed    []string // namespaced names, in removal order
	Propagated bool

	// PropagationErr is set when the re-inherit walk failed.
	// It does not make the operation fail.
	PropagationErr error
}

// Attribute is one xattr read back from a path
type Attribute struct {
	Name      string // namespaced
	Value     []byte
	Inherited bool // from the bcachefs_effective namespace
}

// BareName strips the namespace prefix: "bcachefs.compression" -> "compression"
func (a Attribute) BareName() string {
	if i := strings.IndexByte(a.Name, '.'); i >= 0 {
		return a.Name[i+1:]
	}
	return a.Name
}
