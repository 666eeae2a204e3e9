package blackboard

import "testing"

func TestBlackboard_Add(t *testing.T) {
	b := New()

	if !b.Add("report") {
		t.Error("Add() = false for new object, want true")
	}
	if b.Add("report") {
		t.Error("Add() = true for duplicate object, want false")
	}
	if got := b.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestBlackboard_Bind(t *testing.T) {
	b := New()
	b.Bind("story", "breaking news")

	got, ok := b.Get("story")
	if !ok {
		t.Fatal("Get(story) not found after Bind")
	}
	if got != "breaking news" {
		t.Errorf("Get(story) = %v, want %q", got, "breaking news")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d after Bind, want 1 (bind implies add)", b.Len())
	}
}

func TestBlackboard_RebindKeepsOldObject(t *testing.T) {
	b := New()
	b.Bind("draft", "v1")
	b.Bind("draft", "v2")

	got, _ := b.Get("draft")
	if got != "v2" {
		t.Errorf("Get(draft) = %v, want v2", got)
	}
	// Append-only: the old object must still be in the store.
	if b.Len() != 2 {
		t.Errorf("Len() = %d after rebind, want 2", b.Len())
	}
}

func TestBlackboard_NonComparableObjects(t *testing.T) {
	b := New()
	s := []string{"a", "b"}

	if !b.Add(s) {
		t.Error("Add(slice) = false, want true")
	}
	if b.Add(s) {
		t.Error("Add(same slice) = true, want false (identity dedup)")
	}
	if !b.Add([]string{"a", "b"}) {
		t.Error("Add(distinct slice) = false, want true")
	}
}

func TestBlackboard_Copy(t *testing.T) {
	b := New()
	b.Bind("lead", "source A")

	c := b.Copy()
	c.Bind("quote", "said the mayor")

	if b.Len() != 1 {
		t.Errorf("parent Len() = %d after child mutation, want 1", b.Len())
	}
	if _, ok := b.Get("quote"); ok {
		t.Error("parent sees binding added to copy")
	}
	if got, _ := c.Get("lead"); got != "source A" {
		t.Errorf("copy Get(lead) = %v, want %q", got, "source A")
	}
}

func TestBlackboard_Monotonicity(t *testing.T) {
	b := New()
	objs := []string{"one", "two", "three", "four"}
	for _, o := range objs {
		b.Add(o)
	}
	b.Bind("last", "five")

	got := b.Objects()
	if len(got) != 5 {
		t.Fatalf("Objects() length = %d, want 5", len(got))
	}
	for i, o := range objs {
		if got[i] != o {
			t.Errorf("Objects()[%d] = %v, want %v (insertion order)", i, got[i], o)
		}
	}
}
