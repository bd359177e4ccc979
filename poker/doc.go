// Package poker holds the card and deck model and the video-poker hand
// evaluator.
//
// Decks are plain slices. Every function returns fresh slices and leaves its
// inputs alone, so a deck can be shared between the parallel hands of a draw:
//
//	deck := poker.FullDeck(mods.DeadCards, mods.RemovedCards, mods.WildCards)
//	shuffled := poker.ShuffleSeeded(deck, int64(handIndex))
//
// Evaluate understands two kinds of special card. A wild card becomes
// whatever rank and suit gives the strongest category. A dead card takes up a
// slot and counts for nothing, so a hand holding one can never make a
// five-card category. Only pairs of jacks or better pay.
package poker
