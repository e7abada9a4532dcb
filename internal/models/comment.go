package models

import (
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/id"
)

// MaxCommentLength bounds Comment.Text.
const MaxCommentLength = 500

// Comment is a free-text note on the group's discussion thread.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// AddComment appends a comment by an active member.
func (g *Group) AddComment(userID, text string, now time.Time) (*Comment, error) {
	m := g.ActiveMember(userID)
	if m == nil {
		return nil, ErrNotAMember
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid(ErrValidation, "text", "comment is empty")
	}
	if len(text) > MaxCommentLength {
		return nil, invalid(ErrValidation, "text", "must be at most %d characters", MaxCommentLength)
	}

	g.Comments = append(g.Comments, Comment{
		ID:        id.New(id.PrefixComment),
		UserID:    m.UserID,
		UserName:  m.Name,
		Text:      text,
		CreatedAt: now,
	})
	return &g.Comments[len(g.Comments)-1], nil
}
