package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	adjectives = []string{
		"Dog-eared", "Well-thumbed", "Midnight", "Curious", "Quiet",
		"Annotated", "Unabridged", "Bookish", "Wandering", "Candlelit",
		"Marginal", "Paperback", "Hardbound", "Serialized", "Footnoted",
		"Rainy-day", "Dust-jacketed", "First-edition", "Overdue", "Earnest",
	}
	nouns = []string{
		"Reader", "Bookworm", "Bibliophile", "Page Turner", "Librarian",
		"Critic", "Chronicler", "Essayist", "Skimmer", "Re-reader",
		"Annotator", "Story Keeper", "Shelf Browser", "Spine Cracker", "Lit Nerd",
	}
	// Appended to the noun sometimes.
	genres = []string{
		"of Mysteries", "of Sagas", "of Sonnets", "of Thrillers", "of Epics",
		"of Fables", "of Memoirs", "of Verse", "of Classics", "of Zines",
	}
)

// ReaderName generates a book club themed nickname for readers whose
// identity token carries no name.
func ReaderName() string {
	return readerName(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func readerName(r *rand.Rand) string {
	adj := adjectives[r.Intn(len(adjectives))]
	noun := nouns[r.Intn(len(nouns))]

	parts := []string{adj, noun}
	if r.Float64() < 0.3 { // 30% chance
		parts = append(parts, genres[r.Intn(len(genres))])
	}
	return strings.Join(parts, " ")
}

// ClubName suggests a name for a new club when the user leaves it blank.
func ClubName() string {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("The %s %s Society", adjectives[r.Intn(len(adjectives))], strings.TrimPrefix(genres[r.Intn(len(genres))], "of "))
}
