package recognition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"key-dance/pkg/acrcloud"
	"key-dance/pkg/models"
)

func strPtr(s string) *string { return &s }

func TestNormalize_ProviderError(t *testing.T) {
	resp := &acrcloud.Response{
		Status: acrcloud.Status{Code: 3001, Msg: "Missing/Invalid Access Key"},
		Metadata: acrcloud.Metadata{Music: []acrcloud.Music{
			{Title: "Ignored", Score: 100},
		}},
	}

	result, err := Normalize(resp)
	assert.Nil(t, result)

	var re *Error
	require.ErrorAs(t, err, &re)
	assert.Equal(t, KindProvider, re.Kind)
	assert.Equal(t, 3001, re.Code)
	assert.Equal(t, "ACRCloud error: Missing/Invalid Access Key (code: 3001)", re.Message)
}

func TestNormalize_NoMatch(t *testing.T) {
	resp := &acrcloud.Response{Status: acrcloud.Status{Code: 0, Msg: "Success"}}

	result, err := Normalize(resp)
	assert.Nil(t, result)
	assert.Equal(t, KindNoMatch, KindOf(err))
	assert.EqualError(t, err, "No music matches found")
}

func TestNormalize_Match(t *testing.T) {
	tests := []struct {
		name  string
		music []acrcloud.Music
		want  models.RecognitionResult
	}{
		{
			name: "fallback id",
			music: []acrcloud.Music{
				{Title: "Imagine", Artists: []acrcloud.Artist{{Name: "John Lennon"}}, Score: 82.5},
			},
			want: models.RecognitionResult{Title: "Imagine", Artist: "John Lennon", Confidence: 0.825, SongID: "imagine-john-lennon"},
		},
		{
			name: "provider id wins",
			music: []acrcloud.Music{
				{Title: "Imagine", Artists: []acrcloud.Artist{{Name: "John Lennon"}}, Score: 82.5, ACRID: strPtr("abc123")},
			},
			want: models.RecognitionResult{Title: "Imagine", Artist: "John Lennon", Confidence: 0.825, SongID: "abc123"},
		},
		{
			name: "unknown artist",
			music: []acrcloud.Music{
				{Title: "Moonlight Sonata", Score: 100},
			},
			want: models.RecognitionResult{Title: "Moonlight Sonata", Artist: "Unknown", Confidence: 1, SongID: "moonlight-sonata-unknown"},
		},
		{
			name: "first match only",
			music: []acrcloud.Music{
				{Title: "Yesterday", Artists: []acrcloud.Artist{{Name: "The Beatles"}, {Name: "Paul McCartney"}}, Score: 90},
				{Title: "Let It Be", Artists: []acrcloud.Artist{{Name: "The Beatles"}}, Score: 95},
			},
			want: models.RecognitionResult{Title: "Yesterday", Artist: "The Beatles", Confidence: 0.9, SongID: "yesterday-the-beatles"},
		},
		{
			name: "score above range is not clamped",
			music: []acrcloud.Music{
				{Title: "Loud", Artists: []acrcloud.Artist{{Name: "Band"}}, Score: 150},
			},
			want: models.RecognitionResult{Title: "Loud", Artist: "Band", Confidence: 1.5, SongID: "loud-band"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &acrcloud.Response{Metadata: acrcloud.Metadata{Music: tt.music}}
			result, err := Normalize(resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *result)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	resp := &acrcloud.Response{Metadata: acrcloud.Metadata{Music: []acrcloud.Music{
		{Title: "Imagine", Artists: []acrcloud.Artist{{Name: "John Lennon"}}, Score: 82.5},
	}}}

	first, err := Normalize(resp)
	require.NoError(t, err)
	second, err := Normalize(resp)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDeriveFallbackID(t *testing.T) {
	tests := []struct {
		title, artist, want string
	}{
		{"Imagine", "John Lennon", "imagine-john-lennon"},
		{"Bohemian Rhapsody", "Queen", "bohemian-rhapsody-queen"},
		{"ALL CAPS", "Unknown", "all-caps-unknown"},
		{"Two  Spaces", "A B", "two--spaces-a-b"},
		{"", "", "-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveFallbackID(tt.title, tt.artist))
	}
	assert.Equal(t, DeriveFallbackID("Imagine", "John Lennon"), DeriveFallbackID("Imagine", "John Lennon"))
}
