package dom

// Op is the type of a logged mutation.
type Op uint8

const (
	OpCreate      Op = 0x01 // New node materialized
	OpSetText     Op = 0x02 // Update text content
	OpSetStyle    Op = 0x03 // Set/update style
	OpRemoveStyle Op = 0x04 // Remove style
	OpSetAttr     Op = 0x05 // Set/update attribute
	OpRemoveAttr  Op = 0x06 // Remove attribute
	OpAppend      Op = 0x07 // Append/move node under a parent
	OpDetach      Op = 0x08 // Remove node from its parent
	OpReplace     Op = 0x09 // Replace node with another
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "Create"
	case OpSetText:
		return "SetText"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpAppend:
		return "Append"
	case OpDetach:
		return "Detach"
	case OpReplace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Patch is one logged mutation of the live tree.
type Patch struct {
	Op       Op     `json:"op"`
	NodeID   string `json:"node"`
	Name     string `json:"name,omitempty"`  // Style/attribute name
	Value    string `json:"value,omitempty"` // New value, tag or text
	ParentID string `json:"parent,omitempty"`
	Index    int    `json:"index,omitempty"` // Position for Append
	WithID   string `json:"with,omitempty"`  // Replacement node for Replace
}

// IsStructural reports whether the patch changes tree shape rather than
// node content.
func (p Patch) IsStructural() bool {
	switch p.Op {
	case OpAppend, OpDetach, OpReplace:
		return true
	}
	return false
}
