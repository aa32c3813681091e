package recognition

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"go.uber.org/zap"

	"key-dance/pkg/acrcloud"
	"key-dance/pkg/models"
)

// sampleFilename only frames the multipart part; the provider ignores it.
const sampleFilename = "recorded_audio.wav"

// Identifier is satisfied by *acrcloud.Client.
type Identifier interface {
	Identify(ctx context.Context, audio []byte, filename string) (*acrcloud.Response, error)
}

// Observer is told about every finished recognition. Exactly one of result
// and err is non-nil.
type Observer func(result *models.RecognitionResult, err error)

// Service decodes base64 audio, sends it to the provider and normalizes the
// answer. It keeps no per-request state, so one Service serves all requests.
type Service struct {
	identifier Identifier
	logger     *zap.Logger
	observers  []Observer
}

type ServiceOption func(*Service)

func WithServiceLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

func WithObserver(obs Observer) ServiceOption {
	return func(s *Service) { s.observers = append(s.observers, obs) }
}

func NewService(identifier Identifier, opts ...ServiceOption) *Service {
	s := &Service{
		identifier: identifier,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecognizeBase64 returns a result or an *Error. Input must be padded
// standard base64 with no line breaks and zero trailing bits; anything else
// never reaches the provider.
func (s *Service) RecognizeBase64(ctx context.Context, data string) (*models.RecognitionResult, error) {
	result, err := s.recognize(ctx, data)
	if err != nil {
		s.logFailure(err)
	} else {
		s.logger.Info("Song identified",
			zap.String("title", result.Title),
			zap.String("artist", result.Artist),
			zap.Float64("confidence_pct", result.Confidence*100),
			zap.String("song_id", result.SongID))
	}

	for _, obs := range s.observers {
		obs(result, err)
	}
	return result, err
}

func (s *Service) recognize(ctx context.Context, data string) (*models.RecognitionResult, error) {
	if strings.ContainsAny(data, "\r\n") {
		return nil, InvalidInput(errors.New("line breaks in base64 data"))
	}
	audio, err := base64.StdEncoding.Strict().DecodeString(data)
	if err != nil {
		return nil, InvalidInput(err)
	}

	resp, err := s.identifier.Identify(ctx, audio, sampleFilename)
	if err != nil {
		summary := "provider request failed"
		var te *acrcloud.TransportError
		if errors.As(err, &te) {
			summary = te.Summary()
		}
		return nil, TransportError(summary, err)
	}

	return Normalize(resp)
}

func (s *Service) logFailure(err error) {
	fields := []zap.Field{zap.String("kind", KindOf(err).String()), zap.Error(err)}

	var re *Error
	if errors.As(err, &re) && re.Err != nil {
		fields = append(fields, zap.NamedError("cause", re.Err))
	}

	switch KindOf(err) {
	case KindNoMatch:
		s.logger.Info("Recognition failed", fields...)
	case KindInvalidInput:
		s.logger.Warn("Recognition failed", fields...)
	default:
		s.logger.Error("Recognition failed", fields...)
	}
}
