package extract

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The json section is filled in by a language model and metadata values may
// be repeated meta tags, so scalar fields are decoded loosely.

// flexString accepts a string, a number or a bool, or an array whose first
// usable element is one of those. Anything else decodes to "".
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	*f = flexString(coerceString(data))
	return nil
}

func coerceString(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err == nil {
			for _, item := range items {
				if s := coerceString(item); s != "" {
					return s
				}
			}
		}
	case 't', 'f':
		return string(data)
	case '{', 'n':
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			return n.String()
		}
	}
	return ""
}

// flexStrings accepts an array of scalars or a single comma separated string.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var out []string
	switch {
	case len(data) > 0 && data[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err == nil {
			for _, item := range items {
				if s := coerceString(item); s != "" {
					out = append(out, s)
				}
			}
		}
	default:
		for _, part := range strings.Split(coerceString(data), ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	*f = out
	return nil
}

// flexBool accepts true/false or their string spellings. Anything else
// leaves the value unset.
type flexBool struct {
	set   bool
	value bool
}

func (f *flexBool) UnmarshalJSON(data []byte) error {
	if b, err := strconv.ParseBool(strings.ToLower(coerceString(data))); err == nil {
		f.set, f.value = true, b
	}
	return nil
}

func (f flexBool) ptr() *bool {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

type productWire struct {
	Title         flexString  `json:"title"`
	Price         flexString  `json:"price"`
	OriginalPrice flexString  `json:"originalPrice"`
	Image         flexString  `json:"image"`
	Description   flexString  `json:"description"`
	Brand         flexString  `json:"brand"`
	Availability  flexBool    `json:"availability"`
	Tags          flexStrings `json:"tags"`
}

func (w productWire) product() Product {
	return Product{
		Title:         string(w.Title),
		Price:         string(w.Price),
		OriginalPrice: string(w.OriginalPrice),
		Image:         string(w.Image),
		Description:   string(w.Description),
		Brand:         string(w.Brand),
		Availability:  w.Availability.ptr(),
		Tags:          []string(w.Tags),
	}
}

type metadataWire struct {
	Title       flexString `json:"title"`
	Description flexString `json:"description"`
	OGImage     flexString `json:"ogImage"`
}

func (w metadataWire) metadata() PageMetadata {
	return PageMetadata{
		Title:       string(w.Title),
		Description: string(w.Description),
		OGImage:     string(w.OGImage),
	}
}

// decodeSection decodes an optional object. An absent or null section is
// ok and yields the zero value; a non-object section is reported as not ok.
func decodeSection[T any](raw json.RawMessage) (T, bool) {
	var v T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return v, true
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}
