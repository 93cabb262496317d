package entities

import (
	"time"

	"reunion-backend/domain/core/valueobjects"
	"reunion-backend/pkg/utils"
)

// Collection names in the document store.
const (
	CollectionMemories      = "memories"
	CollectionComments      = "comments"
	CollectionReactions     = "reactions"
	CollectionInvites       = "invites"
	CollectionNotifications = "notifications"
	CollectionDecadeCounts  = "decade_counts"
)

// Memory is a persisted memory submission. It is created in two phases:
// an initial insert with an empty attachment list, then a patch once the
// uploads resolve. Reaction and comment counters are mutated by any
// authenticated user; the rest is owned by the author.
type Memory struct {
	ID           string                                `json:"id"`
	Title        string                                `json:"title"`
	Decade       valueobjects.Decade                   `json:"decade"`
	Story        string                                `json:"story"`
	AuthorID     string                                `json:"author_id"`
	AuthorName   string                                `json:"author_name"`
	Kind         string                                `json:"kind"` // photo, video or story
	Attachments  []string                              `json:"attachments"`
	Reactions    map[valueobjects.ReactionKind]int     `json:"reactions"`
	CommentCount int                                   `json:"comment_count"`
	CreatedAt    time.Time                             `json:"created_at"`
}

// NewMemoryFields builds the phase-1 insert document: attachment list empty,
// all counters zero.
func NewMemoryFields(title string, decade valueobjects.Decade, story, kind string, author valueobjects.Session, now time.Time) Document {
	doc := Document{
		"title":         title,
		"decade":        decade.String(),
		"story":         story,
		"kind":          kind,
		"author_id":     author.UserID,
		"author_name":   author.DisplayName,
		"attachments":   []string{},
		"comment_count": 0,
		"created_at":    utils.FormatRFC3339(now),
	}
	for _, k := range valueobjects.ReactionKinds {
		doc[k.CounterField()] = 0
	}
	return doc
}

// MemoryFromDocument rehydrates a memory from a store document.
func MemoryFromDocument(id string, doc Document) *Memory {
	m := &Memory{
		ID:           id,
		Title:        fieldString(doc, "title"),
		Decade:       valueobjects.Decade(fieldString(doc, "decade")),
		Story:        fieldString(doc, "story"),
		AuthorID:     fieldString(doc, "author_id"),
		AuthorName:   fieldString(doc, "author_name"),
		Kind:         fieldString(doc, "kind"),
		Attachments:  fieldStrings(doc, "attachments"),
		CommentCount: fieldInt(doc, "comment_count"),
		CreatedAt:    fieldTime(doc, "created_at"),
		Reactions:    make(map[valueobjects.ReactionKind]int, len(valueobjects.ReactionKinds)),
	}
	for _, k := range valueobjects.ReactionKinds {
		m.Reactions[k] = fieldInt(doc, k.CounterField())
	}
	return m
}

// Comment is an append-only entry under a memory.
type Comment struct {
	ID         string    `json:"id"`
	MemoryID   string    `json:"memory_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCommentFields builds the insert document for a comment.
func NewCommentFields(memoryID, body string, author valueobjects.Session, now time.Time) Document {
	return Document{
		"memory_id":   memoryID,
		"author_id":   author.UserID,
		"author_name": author.DisplayName,
		"body":        body,
		"created_at":  utils.FormatRFC3339(now),
	}
}

// CommentFromDocument rehydrates a comment from a store document.
func CommentFromDocument(id string, doc Document) *Comment {
	return &Comment{
		ID:         id,
		MemoryID:   fieldString(doc, "memory_id"),
		AuthorID:   fieldString(doc, "author_id"),
		AuthorName: fieldString(doc, "author_name"),
		Body:       fieldString(doc, "body"),
		CreatedAt:  fieldTime(doc, "created_at"),
	}
}
