package binio

import "fmt"

// Deref resolves the relative pointer stored at loc. The stored value is a
// signed 32-bit offset from loc itself.
func (r *Reader) Deref(loc int) (int, error) {
	rel, err := r.I32(loc)
	if err != nil {
		return 0, fmt.Errorf("deref 0x%x: %w", loc, err)
	}
	return loc + int(rel), nil
}

// PointerKind tells how a word was interpreted when it matched a target.
type PointerKind int

const (
	Relative PointerKind = iota
	Absolute
)

func (k PointerKind) String() string {
	if k == Absolute {
		return "A"
	}
	return "R"
}

// PointerRef is a 4-byte aligned word that points at some target offset.
type PointerRef struct {
	Offset int
	Kind   PointerKind
}

// PointersTo lists every aligned word that refers to target, either as a
// non-zero relative pointer or as an absolute offset.
func (r *Reader) PointersTo(target int) []PointerRef {
	var refs []PointerRef
	for off := 0; off+4 <= len(r.data); off += 4 {
		u := r.order.Uint32(r.data[off:])
		rel := int32(u)
		if rel != 0 && off+int(rel) == target {
			refs = append(refs, PointerRef{Offset: off, Kind: Relative})
		}
		if int64(u) == int64(target) {
			refs = append(refs, PointerRef{Offset: off, Kind: Absolute})
		}
	}
	return refs
}

// PointerNode is one level of a pointer chain ending at Target.
type PointerNode struct {
	PointerRef
	Children []PointerNode
}

// PointerTree walks PointersTo recursively up to maxDepth levels. Offsets
// already on the current chain are not revisited.
func (r *Reader) PointerTree(target, maxDepth int) []PointerNode {
	return r.pointerTree(target, maxDepth, map[int]bool{target: true})
}

func (r *Reader) pointerTree(target, depth int, seen map[int]bool) []PointerNode {
	if depth <= 0 {
		return nil
	}
	var nodes []PointerNode
	for _, ref := range r.PointersTo(target) {
		node := PointerNode{PointerRef: ref}
		if !seen[ref.Offset] {
			seen[ref.Offset] = true
			node.Children = r.pointerTree(ref.Offset, depth-1, seen)
			delete(seen, ref.Offset)
		}
		nodes = append(nodes, node)
	}
	return nodes
}
