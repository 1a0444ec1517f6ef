package domain

import "time"

// NoticeVariant selects the visual style of a transient notice.
type NoticeVariant string

const (
	NoticeDefault     NoticeVariant = "default"
	NoticeDestructive NoticeVariant = "destructive"
)

const DefaultNoticeDuration = 2 * time.Second

// Notice is a transient, auto-dismissing notification shown on the next
// rendered screen.
type Notice struct {
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Variant     NoticeVariant `json:"variant"`
	Duration    time.Duration `json:"duration"`
}

// WithDescription returns a copy of n carrying desc.
func (n Notice) WithDescription(desc string) Notice {
	n.Description = desc
	return n
}

// Destructive reports whether the notice signals a failure.
func (n Notice) Destructive() bool {
	return n.Variant == NoticeDestructive
}
