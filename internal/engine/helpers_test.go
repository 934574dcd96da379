package engine

import "strings"

// essay pads lead with filler words until the text holds n words.
func essay(n int, lead string) string {
	words := strings.Fields(lead)
	for CountWords(strings.Join(words, " ")) < n {
		words = append(words, "lorem")
	}
	return strings.Join(words, " ")
}
