package acrcloud

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"strconv"
	"time"
)

const (
	identifyPath = "/v1/identify"

	DataTypeAudio    = "audio"
	SignatureVersion = "1"
)

// SignedMaterial holds the authentication fields sent with one identify
// request. It must be built fresh for every request.
type SignedMaterial struct {
	Timestamp        string
	DataType         string
	SignatureVersion string
	Signature        string
}

// Sign returns the base64 HMAC-SHA1 of the provider's canonical string:
//
//	POST\n/v1/identify\n{accessKey}\n{dataType}\n{signatureVersion}\n{timestamp}
func Sign(creds Credentials, timestamp, dataType, signatureVersion string) string {
	stringToSign := "POST\n" + identifyPath + "\n" +
		creds.AccessKey + "\n" +
		dataType + "\n" +
		signatureVersion + "\n" +
		timestamp

	mac := hmac.New(sha1.New, []byte(creds.AccessSecret))
	mac.Write([]byte(stringToSign))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func NewSignedMaterial(creds Credentials, now time.Time) SignedMaterial {
	timestamp := strconv.FormatInt(now.Unix(), 10)
	return SignedMaterial{
		Timestamp:        timestamp,
		DataType:         DataTypeAudio,
		SignatureVersion: SignatureVersion,
		Signature:        Sign(creds, timestamp, DataTypeAudio, SignatureVersion),
	}
}
