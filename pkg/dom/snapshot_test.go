package dom

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func buildSubtree(d *Document) *Node {
	div := d.CreateElement("div").(*Node)
	div.SetStyle("color", "red")
	div.SetAttr("id", "card")

	span := d.CreateElement("span").(*Node)
	span.AppendChild(d.CreateText("hello"))
	div.AppendChild(span)
	return div
}

func TestSnapshotRestore(t *testing.T) {
	src := NewDocument()
	orig := buildSubtree(src)
	snap := TakeSnapshot(orig)

	// Round-trip through JSON, the way the session store persists it.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dst := NewDocument()
	restored := dst.Restore(&decoded)
	if restored == nil {
		t.Fatal("Restore returned nil")
	}
	if restored.Parent() != nil {
		t.Error("restored subtree should be detached")
	}
	if diff := cmp.Diff(snap, TakeSnapshot(restored)); diff != "" {
		t.Errorf("restored tree differs (-want +got):\n%s", diff)
	}
	if dst.ByID(restored.ID()) != restored {
		t.Error("restored nodes should be registered")
	}
	if got := dst.TakePatches(); len(got) != 0 {
		t.Errorf("restore must not log patches, got %v", got)
	}
}

func TestSnapshotNil(t *testing.T) {
	if TakeSnapshot(nil) != nil {
		t.Error("TakeSnapshot(nil) should be nil")
	}
	d := NewDocument()
	if d.Restore(nil) != nil {
		t.Error("Restore(nil) should be nil")
	}
}
