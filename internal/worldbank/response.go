package worldbank

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
)

// flexInt decodes integers the API sends either as numbers or as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}

type apiMessage struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type pageMeta struct {
	Page    flexInt      `json:"page"`
	Pages   flexInt      `json:"pages"`
	PerPage flexInt      `json:"per_page"`
	Total   flexInt      `json:"total"`
	Message []apiMessage `json:"message"`
}

type idValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type record struct {
	Indicator       idValue  `json:"indicator"`
	Country         idValue  `json:"country"`
	CountryISO3Code string   `json:"countryiso3code"`
	Date            string   `json:"date"`
	Value           *float64 `json:"value"`
}

type page struct {
	Meta    pageMeta
	Records []record
}

// decodePage splits the [meta, records] envelope of one response page.
func decodePage(body []byte) (*page, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(body, &parts); err != nil {
		var single pageMeta
		if err2 := json.Unmarshal(body, &single); err2 == nil && len(single.Message) > 0 {
			return nil, messageError(single.Message)
		}
		return nil, err
	}
	if len(parts) == 0 {
		return nil, errMalformed
	}

	p := &page{}
	if err := json.Unmarshal(parts[0], &p.Meta); err != nil {
		return nil, err
	}
	if len(p.Meta.Message) > 0 {
		return nil, messageError(p.Meta.Message)
	}
	if len(parts) < 2 {
		return nil, errMalformed
	}
	if err := json.Unmarshal(parts[1], &p.Records); err != nil {
		return nil, err
	}
	return p, nil
}
