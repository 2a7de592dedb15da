package domain

import "time"

// Article is a catalog record for a magazine issue. The taxonomy fields
// (Author, Editor, Month, Year) hold display values copied at write time,
// not references; later taxonomy edits never touch existing articles.
type Article struct {
	ID          string
	Title       string
	Author      string
	Layout      string
	PageCount   int
	Description string
	Editor      string
	Month       string
	Year        string
	CreatedAt   time.Time
}
