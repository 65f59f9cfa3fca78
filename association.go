package framevisx

import "fmt"

// FrameIndex addresses one frame (image, sweep) of the host dataset.
// Valid indices are non-negative; the dataset decides which ones exist.
type FrameIndex int

// AssociationKind enumerates the three visibility rules a record may carry.
type AssociationKind string

const (
	// KindUbiquitous records are visible in every frame of the dataset.
	KindUbiquitous AssociationKind = "ubiquitous"
	// KindAvoiding records are visible in every frame except one.
	KindAvoiding AssociationKind = "avoiding"
	// KindSingle records are visible in exactly one frame.
	KindSingle AssociationKind = "single"
)

// Association is the frame-association rule attached to a record: a tagged
// variant of Ubiquitous | Avoiding(frame) | Single(frame).
//
// Associations are immutable values. Construct them with Ubiquitous,
// Avoiding, or Single; the zero value is KindUbiquitous.
type Association struct {
	kind  AssociationKind
	frame FrameIndex
}

// Ubiquitous returns the association visible in every frame.
func Ubiquitous() Association {
	return Association{kind: KindUbiquitous}
}

// Avoiding returns the association visible in every frame except f.
func Avoiding(f FrameIndex) Association {
	return Association{kind: KindAvoiding, frame: f}
}

// Single returns the association visible only in frame f.
func Single(f FrameIndex) Association {
	return Association{kind: KindSingle, frame: f}
}

// Kind returns the association's visibility rule kind.
func (a Association) Kind() AssociationKind {
	if a.kind == "" {
		return KindUbiquitous
	}
	return a.kind
}

// Frame returns the frame the rule is parameterized on. Meaningful only for
// KindAvoiding and KindSingle; returns 0 for KindUbiquitous.
func (a Association) Frame() FrameIndex {
	return a.frame
}

// Covers reports whether a record carrying this association is visible in
// frame f.
func (a Association) Covers(f FrameIndex) bool {
	switch a.Kind() {
	case KindUbiquitous:
		return true
	case KindAvoiding:
		return f != a.frame
	case KindSingle:
		return f == a.frame
	}
	return false
}

// Validate checks the association is within domain: known kind, and a
// non-negative frame for the frame-parameterized kinds.
func (a Association) Validate() error {
	switch a.Kind() {
	case KindUbiquitous:
		return nil
	case KindAvoiding, KindSingle:
		if a.frame < 0 {
			return fmt.Errorf("%w: %s frame %d", ErrMalformedAssociation, a.Kind(), a.frame)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown kind %q", ErrMalformedAssociation, string(a.kind))
}

func (a Association) String() string {
	switch a.Kind() {
	case KindUbiquitous:
		return "ubiquitous"
	case KindAvoiding:
		return fmt.Sprintf("avoiding(%d)", a.frame)
	case KindSingle:
		return fmt.Sprintf("single(%d)", a.frame)
	}
	return fmt.Sprintf("invalid(%q)", string(a.kind))
}
