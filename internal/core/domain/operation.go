package domain

import (
	"fmt"
	"strings"
)

// Namespace is the xattr prefix bcachefs reserves for its inode options
const Namespace = "bcachefs"

// EffectiveNamespace holds the inherited (read-only) view of the same options
const EffectiveNamespace = "bcachefs_effective"

// AttributeName is a bare bcachefs option name, e.g. "compression"
type AttributeName string

// Namespaced returns the full xattr name: "bcachefs.compression"
func (a AttributeName) Namespaced() string {
	return Namespace + "." + string(a)
}

// Validate checks that the name can be passed to the xattr syscalls
func (a AttributeName) Validate() error {
	if a == "" {
		return fmt.Errorf("attribute name cannot be empty")
	}
	if strings.IndexByte(string(a), 0) >= 0 {
		return fmt.Errorf("attribute name %q contains a NUL byte", string(a))
	}
	if strings.HasPrefix(string(a), Namespace+".") {
		return fmt.Errorf("attribute name %q must not include the %q prefix", string(a), Namespace+".")
	}
	return nil
}

// OpKind tags the variant carried by an Operation
type OpKind int

// The zero value is not a valid operation
const (
	OpAdd OpKind = iota + 1
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Operation is a parsed command ready for the executor.
// Add carries no payload; Remove carries the attribute list and one path.
type Operation struct {
	kind       OpKind
	attributes []AttributeName
	path       string
}

// NewAddOperation returns the payload-free add operation
func NewAddOperation() Operation {
	return Operation{kind: OpAdd}
}

// NewRemoveOperation validates and builds a remove operation.
// Duplicate names are kept; they are removed in the given order.
func NewRemoveOperation(attributes []AttributeName, path string) (Operation, error) {
	if len(attributes) == 0 {
		return Operation{}, &UsageError{Msg: "remove requires at least one attribute"}
	}
	for _, a := range attributes {
		if err := a.Validate(); err != nil {
			return Operation{}, &UsageError{Msg: err.Error()}
		}
	}
	if err := ValidatePath(path); err != nil {
		return Operation{}, err
	}

	attrs := make([]AttributeName, len(attributes))
	copy(attrs, attributes)

	return Operation{kind: OpRemove, attributes: attrs, path: path}, nil
}

// Kind returns the operation variant
func (o Operation) Kind() OpKind { return o.kind }

// Path returns the remove target; empty for add
func (o Operation) Path() string { return o.path }

// Attributes returns a copy of the attribute list
func (o Operation) Attributes() []AttributeName {
	out := make([]AttributeName, len(o.attributes))
	copy(out, o.attributes)
	return out
}

// ParseAttributeList splits command-line attribute arguments.
// Each argument may hold several comma-separated names:
// ["foo,bar", "baz"] -> [foo bar baz]. Names are taken verbatim.
func ParseAttributeList(args []string) ([]AttributeName, error) {
	var attrs []AttributeName
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			name := AttributeName(part)
			if err := name.Validate(); err != nil {
				return nil, &UsageError{Msg: fmt.Sprintf("invalid attribute list %q: %v", arg, err)}
			}
			attrs = append(attrs, name)
		}
	}
	if len(attrs) == 0 {
		return nil, &UsageError{Msg: "remove requires at least one attribute"}
	}
	return attrs, nil
}

// ValidatePath is the boundary check before a path reaches the syscalls,
// which need a NUL-terminated string.
func ValidatePath(path string) error {
	if path == "" {
		return &UsageError{Msg: "path cannot be empty"}
	}
	if strings.IndexByte(path, 0) >= 0 {
		return &UsageError{Msg: fmt.Sprintf("path %q contains a NUL byte", path)}
	}
	return nil
}
