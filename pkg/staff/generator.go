// Package staff renders notated music for a song id as ABC notation.
//
// No transcription happens here: the tune is derived from the song id, so the
// same id always yields the same notation.
package staff

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"unicode"

	"key-dance/pkg/models"
)

var (
	keys  = []string{"C", "G", "D", "F", "Am", "Em"}
	pitch = []string{"C", "D", "E", "F", "G", "A", "B", "c", "d", "e"}
)

type Generator struct {
	bars int
}

func NewGenerator() *Generator {
	return &Generator{bars: 8}
}

// Generate returns the notation for songID. An empty title is derived from
// the id.
func (g *Generator) Generate(songID, title string) models.StaffNotation {
	if title == "" {
		title = TitleFromID(songID)
	}

	h := fnv.New64a()
	h.Write([]byte(songID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	var b strings.Builder
	b.WriteString("X:1\n")
	fmt.Fprintf(&b, "T:%s\n", title)
	b.WriteString("M:4/4\n")
	b.WriteString("L:1/4\n")
	fmt.Fprintf(&b, "K:%s\n", keys[rng.Intn(len(keys))])

	for bar := 0; bar < g.bars; bar++ {
		b.WriteString("|")
		for beat := 0; beat < 4; beat++ {
			b.WriteString(pitch[rng.Intn(len(pitch))])
		}
		if bar%4 == 3 {
			b.WriteString("|\n")
		} else {
			b.WriteString(" ")
		}
	}

	notation := strings.TrimSuffix(b.String(), "\n")
	notation = strings.TrimSuffix(notation, "|") + "|]"

	return models.StaffNotation{Title: title, Notation: notation}
}

// TitleFromID turns "imagine-john-lennon" into "Imagine John Lennon".
func TitleFromID(songID string) string {
	words := strings.FieldsFunc(songID, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
