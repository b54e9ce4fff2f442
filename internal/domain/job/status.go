package job

// Status is the lifecycle state of a job
type Status string

const (
	StatusPending    Status = "pending"
	StatusScraping   Status = "scraping"
	StatusGenerating Status = "generating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusScraping},
	StatusScraping:   {StatusGenerating, StatusFailed},
	StatusGenerating: {StatusCompleted, StatusFailed},
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
