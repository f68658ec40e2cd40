package auth

// Action constants name the five capability flags a permission grant can
// carry. Route middleware references categories by link slug plus one of
// these actions.
const (
	// ActionView allows reading unapproved content in a category.
	ActionView = "view"
	// ActionSubmit allows creating new content in a category.
	ActionSubmit = "submit"
	// ActionRevise allows updating existing content in a category.
	ActionRevise = "revise"
	// ActionExclude allows deleting content in a category.
	ActionExclude = "exclude"
	// ActionApprove allows clearing content for public display.
	ActionApprove = "approve"
)

// Link slugs for the built-in content sections. Categories are data, but
// the route tables reference the seeded sections by these slugs.
const (
	// LinkNews is the news section.
	LinkNews = "news"
	// LinkMeet is the meet listing section.
	LinkMeet = "meet"
	// LinkRecord is the record tables section.
	LinkRecord = "record"
	// LinkSeminar is the seminar section.
	LinkSeminar = "seminar"
	// LinkLive is the live-stream section.
	LinkLive = "live"
)
