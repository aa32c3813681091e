package acrcloud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSign_KnownAnswer(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		timestamp string
		want      string
	}{
		{
			name:      "test credentials",
			creds:     Credentials{Host: "identify.example.com", AccessKey: "test-access-key", AccessSecret: "test-access-secret"},
			timestamp: "1700000000",
			want:      "Mg53J3jzxfq7QUv54h6/9j8aZ20=",
		},
		{
			name:      "short credentials",
			creds:     Credentials{Host: "identify.example.com", AccessKey: "key", AccessSecret: "secret"},
			timestamp: "1234567890",
			want:      "SsfyZ65qc+em+8Fgm1MDOARL3h8=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sign(tt.creds, tt.timestamp, DataTypeAudio, SignatureVersion)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	creds := Credentials{Host: "h", AccessKey: "k", AccessSecret: "s"}
	first := Sign(creds, "42", DataTypeAudio, SignatureVersion)
	second := Sign(creds, "42", DataTypeAudio, SignatureVersion)
	assert.Equal(t, first, second)

	assert.NotEqual(t, first, Sign(creds, "43", DataTypeAudio, SignatureVersion))
	assert.NotEqual(t, first, Sign(Credentials{AccessKey: "k", AccessSecret: "other"}, "42", DataTypeAudio, SignatureVersion))
}

func TestNewSignedMaterial(t *testing.T) {
	creds := Credentials{Host: "identify.example.com", AccessKey: "test-access-key", AccessSecret: "test-access-secret"}
	m := NewSignedMaterial(creds, time.Unix(1700000000, 0))

	assert.Equal(t, "1700000000", m.Timestamp)
	assert.Equal(t, "audio", m.DataType)
	assert.Equal(t, "1", m.SignatureVersion)
	assert.Equal(t, "Mg53J3jzxfq7QUv54h6/9j8aZ20=", m.Signature)
}
