package app

import "giftroom/internal/domain"

// Shuffle returns a uniformly random permutation of members (Fisher-Yates
// over crypto/rand). The input is copied and never mutated; room state must
// not be observed in a transient permuted order.
//
// A participant may draw themselves. That matches the reference behavior;
// excluding self-assignment would change the output distribution and is a
// deliberate non-change.
func Shuffle(members []domain.Participant) []domain.Participant {
	out := make([]domain.Participant, len(members))
	copy(out, members)
	for i := len(out) - 1; i > 0; i-- {
		j := secureIntn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
