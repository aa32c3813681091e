package acrcloud

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Response mirrors the provider's identify payload. Matches are ranked best
// first.
type Response struct {
	Status   Status   `json:"status"`
	Metadata Metadata `json:"metadata"`
}

type Status struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

type Metadata struct {
	Music []Music `json:"music"`
}

type Music struct {
	Title   string   `json:"title"`
	Artists []Artist `json:"artists"`
	Score   float64  `json:"score"`
	ACRID   *string  `json:"acrid,omitempty"`
}

type Artist struct {
	Name string `json:"name"`
}

// rawPayload mirrors Response with pointers so required fields that are
// absent can be told apart from zero values.
type rawPayload struct {
	Status *struct {
		Code *int    `json:"code"`
		Msg  *string `json:"msg"`
	} `json:"status"`
	Metadata struct {
		Music []struct {
			Title   *string `json:"title"`
			Artists *[]struct {
				Name *string `json:"name"`
			} `json:"artists"`
		} `json:"music"`
	} `json:"metadata"`
}

// checkSchema rejects payloads missing status.code, status.msg, a match
// title, a match artists list or an artist name. score and acrid are optional.
func (p *rawPayload) checkSchema() error {
	if p.Status == nil {
		return errors.New("missing status object")
	}
	if p.Status.Code == nil {
		return errors.New("missing status.code")
	}
	if p.Status.Msg == nil {
		return errors.New("missing status.msg")
	}
	for i, m := range p.Metadata.Music {
		if m.Title == nil {
			return fmt.Errorf("music[%d]: missing title", i)
		}
		if m.Artists == nil {
			return fmt.Errorf("music[%d]: missing artists", i)
		}
		for j, a := range *m.Artists {
			if a.Name == nil {
				return fmt.Errorf("music[%d].artists[%d]: missing name", i, j)
			}
		}
	}
	return nil
}

func decodeResponse(data []byte) (*Response, error) {
	var raw rawPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if err := raw.checkSchema(); err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
