package valueobjects

// ReactionKind is one of the named reaction categories a memory carries a
// counter for.
type ReactionKind string

const (
	ReactionHeart ReactionKind = "heart"
	ReactionClap  ReactionKind = "clap"
	ReactionSmile ReactionKind = "smile"
	ReactionStar  ReactionKind = "star"
)

// ReactionKinds lists every reaction category.
var ReactionKinds = []ReactionKind{
	ReactionHeart,
	ReactionClap,
	ReactionSmile,
	ReactionStar,
}

// IsValidReaction reports whether kind names a known reaction category.
func IsValidReaction(kind string) bool {
	for _, k := range ReactionKinds {
		if string(k) == kind {
			return true
		}
	}
	return false
}

// CounterField returns the memory-record field holding this kind's counter.
func (k ReactionKind) CounterField() string {
	return "reaction_" + string(k)
}

func (k ReactionKind) String() string {
	return string(k)
}
