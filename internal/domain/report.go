package domain

import "time"

// Report is an uploaded medical report
type Report struct {
	ID        string
	Phone     string
	Title     string
	FileID    string
	FileName  string
	CreatedAt time.Time
}
