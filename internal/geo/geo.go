// Package geo converts between the stored geography value and the
// well-known text representation used at the API boundary.
//
// Canonical encoding: points are written to PostgreSQL through
// ST_GeogFromText and read back through ST_AsText, so the database side of
// the round-trip is always textual WKT, never raw binary. This package
// normalizes that text in both directions so callers always see the
// canonical form ("POINT (1 2)") regardless of how the input was spaced
// or capitalized.
package geo

import (
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ErrInvalidGeometry indicates coordinate text that does not parse as a
// single point.
var ErrInvalidGeometry = errors.New("invalid geometry")

// EncodePoint validates coordinate text supplied by a client and returns
// the canonical WKT to store. Nil passes through as nil (no location).
func EncodePoint(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}

	canonical, err := canonicalPoint(*text)
	if err != nil {
		return nil, err
	}
	return &canonical, nil
}

// DecodePoint converts the stored geography point, read as WKT, into its
// canonical textual form. Nil in, nil out. It is applied on every read
// path: list all, list by source, get by id, and the rows returned from
// create, update, and delete.
func DecodePoint(text *string) (*string, error) {
	if text == nil {
		return nil, nil
	}

	canonical, err := canonicalPoint(*text)
	if err != nil {
		return nil, fmt.Errorf("decode stored point: %w", err)
	}
	return &canonical, nil
}

// canonicalPoint parses WKT and re-marshals it, rejecting anything that is
// not a point geometry.
func canonicalPoint(text string) (string, error) {
	g, err := wkt.Unmarshal(text)
	if err != nil {
		return "", ErrInvalidGeometry
	}

	point, ok := g.(*geom.Point)
	if !ok {
		return "", ErrInvalidGeometry
	}

	out, err := wkt.Marshal(point)
	if err != nil {
		return "", ErrInvalidGeometry
	}
	return out, nil
}
