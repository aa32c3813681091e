package acrcloud

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
)

const sampleContentType = "audio/wav"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildIdentifyForm encodes the audio sample and authentication fields as a
// multipart body. It returns the body and the matching Content-Type header.
func BuildIdentifyForm(creds Credentials, audio []byte, filename string, m SignedMaterial) (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreatePart(sampleHeader(filename))
	if err != nil {
		// CreatePart only fails once the writer itself has failed, so in
		// practice this untyped part is never written.
		part, err = writer.CreateFormFile("sample", filename)
		if err != nil {
			return nil, "", fmt.Errorf("create sample part: %w", err)
		}
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("write sample: %w", err)
	}

	fields := []struct{ name, value string }{
		{"access_key", creds.AccessKey},
		{"sample_bytes", strconv.Itoa(len(audio))},
		{"timestamp", m.Timestamp},
		{"signature", m.Signature},
		{"data_type", m.DataType},
		{"signature_version", m.SignatureVersion},
	}
	for _, f := range fields {
		if err := writer.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}

func sampleHeader(filename string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="sample"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", sampleContentType)
	return h
}
