package model

// BatchResult tallies the outcome of a resolve batch. Items are independent:
// one failure never aborts the batch, so partial success is an ordinary
// outcome, not an error.
type BatchResult struct {
	Resolved int
	Failed   int
}

// Examined returns how many issue files the batch touched.
func (r BatchResult) Examined() int {
	return r.Resolved + r.Failed
}
