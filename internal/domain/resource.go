package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ResourceKind discriminates the two resource variants.
type ResourceKind string

const (
	ResourceLink ResourceKind = "link"
	ResourceText ResourceKind = "text"
)

// Resource is a learning resource attached to a subject or project.
// It is either a LinkResource or a TextResource.
type Resource interface {
	Kind() ResourceKind
	Title() string
}

// LinkResource is a labelled URL.
type LinkResource struct {
	Label string
	URL   string
}

func (LinkResource) Kind() ResourceKind { return ResourceLink }
func (r LinkResource) Title() string    { return r.Label }

// TextResource is a free-text note such as a book title.
type TextResource struct {
	Label string
}

func (TextResource) Kind() ResourceKind { return ResourceText }
func (r TextResource) Title() string    { return r.Label }

// NewResource builds a link when url is non-empty and a text note otherwise.
func NewResource(label, url string) (Resource, error) {
	label = strings.TrimSpace(label)
	url = strings.TrimSpace(url)
	if label == "" {
		return nil, fmt.Errorf("%w: resource label is required", ErrValidation)
	}
	if url == "" {
		return TextResource{Label: label}, nil
	}
	return LinkResource{Label: label, URL: url}, nil
}

// Resources is an ordered resource list with a stable JSON form.
type Resources []Resource

// Clone returns a copy of rs that is never nil. Variants are values, so
// copying the slice is enough.
func (rs Resources) Clone() Resources {
	out := make(Resources, len(rs))
	copy(out, rs)
	return out
}

type resourceWire struct {
	Kind  string `json:"kind,omitempty"`
	Label string `json:"label,omitempty"`
	URL   string `json:"url,omitempty"`

	// Older exports used {type, value, url}.
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

func (rs Resources) MarshalJSON() ([]byte, error) {
	wire := make([]resourceWire, 0, len(rs))
	for _, r := range rs {
		w := resourceWire{Kind: string(r.Kind()), Label: r.Title()}
		if link, ok := r.(LinkResource); ok {
			w.URL = link.URL
		}
		wire = append(wire, w)
	}
	return json.Marshal(wire)
}

func (rs *Resources) UnmarshalJSON(data []byte) error {
	var wire []resourceWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding resources: %w", err)
	}
	out := make(Resources, 0, len(wire))
	for i, w := range wire {
		r, err := w.decode()
		if err != nil {
			return fmt.Errorf("resource %d: %w", i, err)
		}
		out = append(out, r)
	}
	*rs = out
	return nil
}

func (w resourceWire) decode() (Resource, error) {
	kind := CoalesceStr(w.Kind, w.Type)
	label := CoalesceStr(w.Label, w.Value)
	switch ResourceKind(kind) {
	case ResourceLink:
		if w.URL == "" {
			return nil, fmt.Errorf("%w: link resource %q has no url", ErrInvalidValue, label)
		}
		return LinkResource{Label: CoalesceStr(label, w.URL), URL: w.URL}, nil
	case ResourceText:
		return TextResource{Label: label}, nil
	case "":
		if w.URL != "" {
			return LinkResource{Label: CoalesceStr(label, w.URL), URL: w.URL}, nil
		}
		return TextResource{Label: label}, nil
	}
	return nil, fmt.Errorf("%w: resource kind %q", ErrInvalidValue, kind)
}
