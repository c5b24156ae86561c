package tree

import (
	"github.com/fragmede/hnmcp/internal/render"
)

// ThreadView is the caller-facing shape of an assembled thread,
// ready for JSON serialization.
type ThreadView struct {
	ID           int           `json:"id"`
	Type         string        `json:"type,omitempty"`
	Author       string        `json:"author,omitempty"`
	Title        string        `json:"title,omitempty"`
	URL          string        `json:"url,omitempty"`
	Points       int           `json:"points,omitempty"`
	Text         string        `json:"text,omitempty"`
	CommentCount int           `json:"comment_count,omitempty"`
	Comments     []CommentView `json:"comments"`
}

// CommentView is one comment in a ThreadView. Replies is always
// present (possibly empty) so consumers see a uniform shape.
type CommentView struct {
	Author  string        `json:"author"`
	Text    string        `json:"text"`
	Replies []CommentView `json:"replies"`
}

// Assemble maps a built Thread into its serializable view. It performs
// no I/O. plainText converts HN's HTML comment bodies to plain text.
// A deleted or dead item that made it into the tree serializes as an
// empty author/text node rather than failing.
func Assemble(t *Thread, plainText bool) ThreadView {
	view := ThreadView{Comments: assembleComments(t.Comments, plainText)}
	if t.Root == nil {
		return view
	}

	root := t.Root
	view.ID = root.ID
	view.Type = root.Type
	view.Author = root.By
	view.Title = root.Title
	view.URL = root.URL
	view.Points = root.Score
	view.CommentCount = root.Descendants
	view.Text = renderText(root.Text, plainText)
	return view
}

func assembleComments(nodes []*CommentNode, plainText bool) []CommentView {
	views := make([]CommentView, 0, len(nodes))
	for _, n := range nodes {
		views = append(views, CommentView{
			Author:  n.Author,
			Text:    renderText(n.Text, plainText),
			Replies: assembleComments(n.Replies, plainText),
		})
	}
	return views
}

func renderText(text string, plainText bool) string {
	if !plainText {
		return text
	}
	return render.HNToText(text)
}
