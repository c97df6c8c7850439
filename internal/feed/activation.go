package feed

// ActivationThreshold is the intersection ratio a post wrapper must reach
// before it can claim playback.
const ActivationThreshold = 0.6

// VisibilityReport is one (post, visibility) observation from the scroll
// container's observer. A callback batch may carry several reports when the
// user flings through the feed.
type VisibilityReport struct {
	ID    string
	Ratio float64
}

// SelectActive picks the post that should be playing from one observer
// callback batch. Only reports at or above ActivationThreshold qualify.
// Tie-break is deterministic: the highest ratio wins, and on equal ratios
// the later report in the batch wins, so a fast fling settles on the post
// the observer saw last. Returns ok=false when nothing qualifies, in which
// case the caller keeps the current active post.
func SelectActive(reports []VisibilityReport) (string, bool) {
	var winner string
	best := -1.0
	for _, r := range reports {
		if r.Ratio < ActivationThreshold {
			continue
		}
		if r.Ratio >= best {
			best = r.Ratio
			winner = r.ID
		}
	}
	if best < 0 {
		return "", false
	}
	return winner, true
}
