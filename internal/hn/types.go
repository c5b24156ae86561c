package hn

// StoryType represents the different HN story categories.
type StoryType string

const (
	StoryTypeTop  StoryType = "top"
	StoryTypeNew  StoryType = "new"
	StoryTypeBest StoryType = "best"
	StoryTypeAsk  StoryType = "ask"
	StoryTypeShow StoryType = "show"
	StoryTypeJobs StoryType = "job"
)

// Item type values as returned by the item endpoint.
const (
	TypeStory   = "story"
	TypeComment = "comment"
	TypeJob     = "job"
	TypePoll    = "poll"
	TypePollOpt = "pollopt"
)

// Item represents an HN item (story, comment, job, poll, pollopt).
// Most fields are optional on the wire; deleted and dead items are
// present in the graph but carry no usable content.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type,omitempty"`
	By          string `json:"by,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Text        string `json:"text,omitempty"`
	Parent      int    `json:"parent,omitempty"`
	Poll        int    `json:"poll,omitempty"`
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	Score       int    `json:"score,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	Parts       []int  `json:"parts,omitempty"`
	Dead        bool   `json:"dead,omitempty"`
	Deleted     bool   `json:"deleted,omitempty"`

	// StoryTitle is only set on items built from Algolia search hits,
	// where a comment hit carries its parent story's title.
	StoryTitle string `json:"story_title,omitempty"`
}

// User represents an HN user profile.
type User struct {
	ID        string `json:"id"`
	Created   int64  `json:"created"`
	Karma     int    `json:"karma"`
	About     string `json:"about,omitempty"`
	Submitted []int  `json:"submitted,omitempty"`
}
