package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// PillKind discriminates the two Pill variants.
type PillKind string

const (
	PillLabel PillKind = "label" // plain text
	PillLink  PillKind = "link"  // text with a URL
)

// Pill is a short tag shown on an exam board card.
//
// Older documents store pills as bare strings. Decoding accepts both shapes
// and maps a bare string to the label variant.
type Pill struct {
	Kind PillKind `bson:"kind" json:"kind"`
	Text string   `bson:"text" json:"text"`
	URL  string   `bson:"url,omitempty" json:"url,omitempty"`
}

// LabelPill returns a plain label pill.
func LabelPill(text string) Pill {
	return Pill{Kind: PillLabel, Text: text}
}

// LinkPill returns a linked pill.
func LinkPill(text, url string) Pill {
	return Pill{Kind: PillLink, Text: text, URL: url}
}

// IsLink reports whether the pill renders as a link.
func (p Pill) IsLink() bool {
	return p.Kind == PillLink && p.URL != ""
}

// UnmarshalBSONValue decodes either a string or an embedded document.
func (p *Pill) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		*p = LabelPill(strings.TrimSpace(raw.StringValue()))
		return nil
	case bsontype.EmbeddedDocument:
		var doc struct {
			Kind PillKind `bson:"kind"`
			Text string   `bson:"text"`
			URL  string   `bson:"url"`
		}
		if err := raw.Unmarshal(&doc); err != nil {
			return fmt.Errorf("decode pill: %w", err)
		}
		p.Text = strings.TrimSpace(doc.Text)
		p.URL = strings.TrimSpace(doc.URL)
		switch {
		case doc.Kind == PillLink && p.URL != "":
			p.Kind = PillLink
		case doc.Kind == "" && p.URL != "":
			p.Kind = PillLink
		default:
			p.Kind = PillLabel
			p.URL = ""
		}
		return nil
	default:
		return fmt.Errorf("decode pill: unsupported bson type %s", t)
	}
}

// MaxRecommendedPills is the number of pills an exam board card shows.
const MaxRecommendedPills = 5
