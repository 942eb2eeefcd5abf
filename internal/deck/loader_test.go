package deck

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleDeck = `
title: Spanish History
description: From the Reconquista onward
author: mr-t
questions:
  - tag: medieval
    text: In which year did the Reconquista end?
    options: ["1492", "1515", "1479"]
    answer: 0
    explanation: Granada fell in January 1492.
  - tag: modern
    text: Who was the first Bourbon king of Spain?
    options: ["Philip V", "Charles III"]
    answer: 0
`

func writeDeck(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDeck(t, dir, "spanish-history.yaml", sampleDeck)

	d, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if d.ID != "spanish-history" {
		t.Errorf("ID = %q, want file base name", d.ID)
	}
	if d.Title != "Spanish History" || d.Author != "mr-t" {
		t.Errorf("metadata = %q by %q", d.Title, d.Author)
	}
	if len(d.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(d.Questions))
	}
	if d.Questions[0].ID != 1 || d.Questions[1].ID != 2 {
		t.Errorf("implicit ids = %d, %d, want 1, 2", d.Questions[0].ID, d.Questions[1].ID)
	}
	if got := d.Tags(); len(got) != 2 || got[0] != "medieval" || got[1] != "modern" {
		t.Errorf("tags = %v", got)
	}
}

func TestLoadFile_AnswerOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := writeDeck(t, dir, "bad.yaml", `
title: Broken
questions:
  - tag: a
    text: q
    options: ["x", "y"]
    answer: 5
`)

	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for out-of-range answer")
	}
}

func TestLoadFile_TooFewOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeDeck(t, dir, "bad.yaml", `
title: Broken
questions:
  - tag: a
    text: q
    options: ["only"]
    answer: 0
`)

	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for a single option")
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeDeck(t, dir, "b.yaml", sampleDeck)
	writeDeck(t, dir, "a.yml", `
id: algebra
title: Algebra Basics
questions:
  - tag: linear
    text: Solve x+1=2
    options: ["0", "1"]
    answer: 1
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("decks = %d, want 2", c.Len())
	}

	decks := c.Decks()
	if decks[0].Title != "Algebra Basics" || decks[1].Title != "Spanish History" {
		t.Errorf("decks not sorted by title: %q, %q", decks[0].Title, decks[1].Title)
	}

	if _, ok := c.Get("algebra"); !ok {
		t.Error("deck with explicit id not found")
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("empty dir: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("decks = %d, want 0", c.Len())
	}
}

func TestCatalog_QuestionRepo(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeDeck(t, dir, "spanish-history.yaml", sampleDeck)
	c, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	qs, err := c.QuestionsForTest(ctx, "spanish-history")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 {
		t.Errorf("questions = %d, want 2", len(qs))
	}

	if _, err := c.QuestionsForTest(ctx, "nope"); !errors.Is(err, ErrDeckNotFound) {
		t.Errorf("err = %v, want ErrDeckNotFound", err)
	}

	byID, err := c.QuestionsByIDs(ctx, "spanish-history", []int{2, 99})
	if err != nil {
		t.Fatal(err)
	}
	if len(byID) != 1 || byID[0].ID != 2 {
		t.Errorf("byID = %+v, want just question 2", byID)
	}

	// Unknown deck: stale refs resolve to nothing, not an error.
	byID, err = c.QuestionsByIDs(ctx, "nope", []int{1})
	if err != nil || byID != nil {
		t.Errorf("stale deck: got %v, %v", byID, err)
	}

	tags, err := c.TagsForTest(ctx, "spanish-history")
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 2 {
		t.Errorf("tags = %v", tags)
	}
}
