package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

type stringListDoc struct {
	ProgramIDs StringList `bson:"programIds"`
}

func TestStringListDecodesArray(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"programIds": []string{"a", "b"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc stringListDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.ProgramIDs) != 2 || doc.ProgramIDs[0] != "a" || doc.ProgramIDs[1] != "b" {
		t.Errorf("unexpected decode result %v", doc.ProgramIDs)
	}
}

func TestStringListDecodesLegacyString(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"programIds": " legacy-program "})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc stringListDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.ProgramIDs) != 1 || doc.ProgramIDs[0] != "legacy-program" {
		t.Errorf("expected trimmed single-element list, got %v", doc.ProgramIDs)
	}
}

func TestStringListDecodesNull(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"programIds": nil})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var doc stringListDoc
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.ProgramIDs != nil {
		t.Errorf("expected nil list, got %v", doc.ProgramIDs)
	}
}

func TestStringListContains(t *testing.T) {
	list := StringList{"x", "y"}
	if !list.Contains("x") {
		t.Error("expected Contains to find x")
	}
	if list.Contains("z") {
		t.Error("did not expect Contains to find z")
	}
}
