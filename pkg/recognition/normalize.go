package recognition

import (
	"strings"

	"key-dance/pkg/acrcloud"
	"key-dance/pkg/models"
)

const unknownArtist = "Unknown"

// Normalize turns a provider payload into a result. Only the first match is
// used; the provider ranks best first. Scores are divided by 100 without
// clamping.
func Normalize(resp *acrcloud.Response) (*models.RecognitionResult, error) {
	if resp.Status.Code != 0 {
		return nil, ProviderError(resp.Status.Code, resp.Status.Msg)
	}
	if len(resp.Metadata.Music) == 0 {
		return nil, NoMatch()
	}

	music := resp.Metadata.Music[0]

	artist := unknownArtist
	if len(music.Artists) > 0 {
		artist = music.Artists[0].Name
	}

	songID := DeriveFallbackID(music.Title, artist)
	if music.ACRID != nil {
		songID = *music.ACRID
	}

	return &models.RecognitionResult{
		Title:      music.Title,
		Artist:     artist,
		Confidence: music.Score / 100.0,
		SongID:     songID,
	}, nil
}

// DeriveFallbackID builds the song id used when the provider supplies none:
// "{title}-{artist}", lowercased, spaces replaced by hyphens.
func DeriveFallbackID(title, artist string) string {
	return slug(title) + "-" + slug(artist)
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "-")
}
