package render

// ResourceRelationship is where one CSS resource renders relative to another.
type ResourceRelationship string

const (
	// ResourceRelationshipAfter means the resource renders after the one
	// it's compared to.
	ResourceRelationshipAfter ResourceRelationship = "after"

	// ResourceRelationshipBefore means the resource renders before the one
	// it's compared to.
	ResourceRelationshipBefore ResourceRelationship = "before"

	// ResourceRelationshipNeutral means the two resources may render in
	// either order.
	ResourceRelationshipNeutral ResourceRelationship = "neutral"
)
