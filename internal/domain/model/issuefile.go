package model

// IssueFile identifies one issue record on disk. Seq, Severity, and Resolution
// are parsed from the filename; Path is absolute.
type IssueFile struct {
	Path       string
	Seq        int
	Severity   Severity
	Resolution Resolution
}

// CommentFile identifies one comment record on disk.
type CommentFile struct {
	Path string
	Seq  int
}
