package syncer

import (
	"fmt"
	"net/url"
)

// Query parameter names of the shareable-link contract.
const (
	paramDoc  = "doc"
	paramView = "view"
	paramItem = "item"
)

// ViewKind names a deep-link target view.
type ViewKind string

const (
	ViewReport ViewKind = "report"
	ViewLog    ViewKind = "log"
	ViewRecipe ViewKind = "recipe"
)

// ShareLink is the addressable part of a session: which document it shows
// and, optionally, which item view it is deep-linked to.
type ShareLink struct {
	DocID  string
	View   ViewKind
	ItemID string
}

// cleanID normalizes a document identifier, treating the literal strings
// "null" and "undefined" as absent. Older clients serialized missing values
// that way into the address.
func cleanID(s string) string {
	if s == "null" || s == "undefined" {
		return ""
	}
	return s
}

// ParseShareLink extracts the share-link parameters from an address.
func ParseShareLink(rawURL string) (ShareLink, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ShareLink{}, fmt.Errorf("failed to parse share link: %w", err)
	}
	q := u.Query()
	return ShareLink{
		DocID:  cleanID(q.Get(paramDoc)),
		View:   ViewKind(q.Get(paramView)),
		ItemID: q.Get(paramItem),
	}, nil
}

// Apply rewrites the share-link parameters onto an existing address,
// preserving everything else about it, so the session is immediately
// shareable once the document identifier is resolved.
func (l ShareLink) Apply(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse address: %w", err)
	}
	q := u.Query()
	if l.DocID != "" {
		q.Set(paramDoc, l.DocID)
	} else {
		q.Del(paramDoc)
	}
	if l.View != "" && l.ItemID != "" {
		q.Set(paramView, string(l.View))
		q.Set(paramItem, l.ItemID)
	} else {
		q.Del(paramView)
		q.Del(paramItem)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
