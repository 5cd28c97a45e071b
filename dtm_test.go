package pundit

import (
	"reflect"
	"testing"
)

func testMeta() []Document {
	return []Document{
		{ID: "d1", Rating: "Liberal", Day: 1},
		{ID: "d2", Rating: "Liberal", Day: 2},
		{ID: "d3", Rating: "Conservative", Day: 3},
	}
}

func TestBuildDocTermMatrixPruning(t *testing.T) {
	rows := []TokenRow{
		{DocID: "d1", Term: "war"},
		{DocID: "d1", Term: "tax"},
		{DocID: "d2", Term: "war"},
		{DocID: "d2", Term: "war"},
		{DocID: "d3", Term: "rare"}, // appears in one document only
	}

	dtm, err := BuildDocTermMatrix(rows, testMeta(), DTMOpts{MinDocFreq: 2})
	if err != nil {
		t.Fatalf("BuildDocTermMatrix: %v", err)
	}

	if !reflect.DeepEqual(dtm.Terms, []string{"war"}) {
		t.Errorf("vocabulary = %v, want [war]", dtm.Terms)
	}
	// d3 was emptied by pruning and must be dropped with its metadata row.
	if !reflect.DeepEqual(dtm.DocIDs, []string{"d1", "d2"}) {
		t.Errorf("documents = %v, want [d1 d2]", dtm.DocIDs)
	}
	if len(dtm.Meta) != 2 || dtm.Meta[0].ID != "d1" || dtm.Meta[1].ID != "d2" {
		t.Errorf("metadata misaligned: %v", dtm.Meta)
	}
	if got := dtm.Count("d2", "war"); got != 2 {
		t.Errorf("Count(d2, war) = %d, want 2", got)
	}
	if got := dtm.Count("d3", "rare"); got != 0 {
		t.Errorf("Count(d3, rare) = %d, want 0", got)
	}
}

func TestBuildDocTermMatrixMaxVocab(t *testing.T) {
	rows := []TokenRow{
		{DocID: "d1", Term: "war"}, {DocID: "d2", Term: "war"}, {DocID: "d3", Term: "war"},
		{DocID: "d1", Term: "tax"}, {DocID: "d2", Term: "tax"},
		{DocID: "d1", Term: "vote"}, {DocID: "d3", Term: "vote"},
	}

	dtm, err := BuildDocTermMatrix(rows, testMeta(), DTMOpts{MinDocFreq: 2, MaxVocab: 2})
	if err != nil {
		t.Fatalf("BuildDocTermMatrix: %v", err)
	}
	if dtm.VocabSize() != 2 {
		t.Errorf("vocabulary size = %d, want 2", dtm.VocabSize())
	}
	// "war" has the highest corpus frequency and must survive the cap.
	if _, ok := dtm.index["war"]; !ok {
		t.Errorf(`vocabulary %v lost the most frequent term "war"`, dtm.Terms)
	}
}

func TestBuildDocTermMatrixEmpty(t *testing.T) {
	if _, err := BuildDocTermMatrix(nil, testMeta(), DefaultDTMOpts()); err == nil {
		t.Error("expected an error for an empty token table")
	}
}

func TestJoinDocs(t *testing.T) {
	rows := []TokenRow{
		{DocID: "d1", Term: "war"},
		{DocID: "d1", Term: "tax"},
		{DocID: "d1", Term: "war"},
		{DocID: "d2", Term: "tax"},
	}

	dtm, err := BuildDocTermMatrix(rows, testMeta(), DTMOpts{MinDocFreq: 1})
	if err != nil {
		t.Fatalf("BuildDocTermMatrix: %v", err)
	}

	joined := dtm.JoinDocs()
	if len(joined) != 2 {
		t.Fatalf("expected 2 joined documents, got %d", len(joined))
	}
	if joined[0] != "tax war war" {
		t.Errorf("joined d1 = %q, want %q", joined[0], "tax war war")
	}
	if joined[1] != "tax" {
		t.Errorf("joined d2 = %q, want %q", joined[1], "tax")
	}
}
