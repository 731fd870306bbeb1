package model

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentID identifies a document whose _id may be an ObjectID or a plain string.
// Seeded collections mix both, and seeds often store 24 character hex strings, so an
// identifier parsed from a hex string keeps both forms and matches either.
type DocumentID struct {
	oid primitive.ObjectID
	str string
}

// ParseDocumentID never fails. Hex input yields an identifier matching the ObjectID or
// the raw string; anything else, including the all-zero ObjectID, is a string identifier.
func ParseDocumentID(s string) DocumentID {
	if oid, err := primitive.ObjectIDFromHex(s); err == nil && !oid.IsZero() {
		return DocumentID{oid: oid, str: s}
	}
	return DocumentID{str: s}
}

// NewDocumentID returns a fresh ObjectID-backed identifier.
func NewDocumentID() DocumentID {
	return DocumentID{oid: primitive.NewObjectID()}
}

// DocumentIDFromObjectID wraps an ObjectID.
func DocumentIDFromObjectID(oid primitive.ObjectID) DocumentID {
	return DocumentID{oid: oid}
}

// IsZero reports an unset identifier. Used by omitempty.
func (id DocumentID) IsZero() bool {
	return id.oid.IsZero() && id.str == ""
}

// IsObjectID reports whether the identifier is ObjectID-backed.
func (id DocumentID) IsObjectID() bool {
	return !id.oid.IsZero()
}

// Value is the form a new document is stored with.
func (id DocumentID) Value() interface{} {
	if id.IsObjectID() {
		return id.oid
	}
	return id.str
}

// Candidates lists every stored _id value this identifier matches.
func (id DocumentID) Candidates() []interface{} {
	switch {
	case id.IsObjectID() && id.str != "":
		return []interface{}{id.oid, id.str}
	case id.IsObjectID():
		return []interface{}{id.oid}
	}
	return []interface{}{id.str}
}

// Matches reports whether both identifiers can name the same stored document.
func (id DocumentID) Matches(other DocumentID) bool {
	if id.IsZero() || other.IsZero() {
		return false
	}
	if id.IsObjectID() && other.IsObjectID() {
		return id.oid == other.oid
	}
	return id.str != "" && id.str == other.str
}

func (id DocumentID) String() string {
	if id.str != "" {
		return id.str
	}
	if id.IsObjectID() {
		return id.oid.Hex()
	}
	return ""
}

// MarshalBSONValue stores the identifier in its native bson type.
func (id DocumentID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(id.Value())
}

// UnmarshalBSONValue accepts ObjectID and string identifiers.
func (id *DocumentID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		*id = DocumentID{oid: raw.ObjectID()}
	case bsontype.String:
		*id = DocumentID{str: raw.StringValue()}
	case bsontype.Null, bsontype.Undefined:
		*id = DocumentID{}
	default:
		return fmt.Errorf("unsupported _id type %s", t)
	}
	return nil
}

func (id DocumentID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *DocumentID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*id = ParseDocumentID(s)
	return nil
}

// ParseDocumentIDs converts a list of raw identifiers, skipping empty ones.
func ParseDocumentIDs(raw []string) []DocumentID {
	ids := make([]DocumentID, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		ids = append(ids, ParseDocumentID(s))
	}
	return ids
}
