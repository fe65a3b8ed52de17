package review

import "shopfront/internal/model"

// Votes is the set of users who marked a review helpful.
// The helpful count is always the size of the set.
type Votes struct {
	voters []string
}

// NewVotes builds a vote set from stored voter ids, dropping repeats and empty ids.
func NewVotes(voters []string) *Votes {
	v := &Votes{voters: make([]string, 0, len(voters))}
	for _, id := range voters {
		if id != "" && !v.Has(id) {
			v.voters = append(v.voters, id)
		}
	}
	return v
}

// Has reports whether userID has voted.
func (v *Votes) Has(userID string) bool {
	for _, id := range v.voters {
		if id == userID {
			return true
		}
	}
	return false
}

// Toggle adds userID's vote, or removes it if already cast.
// It reports whether the vote is now present.
func (v *Votes) Toggle(userID string) bool {
	for i, id := range v.voters {
		if id == userID {
			v.voters = append(v.voters[:i], v.voters[i+1:]...)
			return false
		}
	}
	v.voters = append(v.voters, userID)
	return true
}

// Count returns the number of votes.
func (v *Votes) Count() int {
	return len(v.voters)
}

// Voters returns the voter ids in the order they voted.
func (v *Votes) Voters() []string {
	out := make([]string, len(v.voters))
	copy(out, v.voters)
	return out
}

// ToggleHelpful flips userID's helpful vote on r and keeps Helpful and
// HelpfulBy in step. It reports whether the vote is now present.
func ToggleHelpful(r *model.Review, userID string) bool {
	votes := NewVotes(r.HelpfulBy)
	voted := votes.Toggle(userID)
	SetVotes(r, votes)
	return voted
}

// SetVotes writes votes onto r.
func SetVotes(r *model.Review, votes *Votes) {
	r.HelpfulBy = votes.Voters()
	r.Helpful = votes.Count()
}
