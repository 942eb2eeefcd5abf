package deck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dsoni/quizdrill/internal/quiz"
)

// ErrDeckNotFound is returned when a referenced deck is not in the catalog.
var ErrDeckNotFound = errors.New("deck not found")

// deckFile mirrors the YAML layout of a deck file.
type deckFile struct {
	ID          string         `yaml:"id"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Author      string         `yaml:"author"`
	Questions   []questionFile `yaml:"questions"`
}

type questionFile struct {
	ID          int      `yaml:"id"`
	Tag         string   `yaml:"tag"`
	Text        string   `yaml:"text"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Explanation string   `yaml:"explanation"`
}

// Catalog holds the loaded decks. It is read-only after Load and implements
// the drill core's QuestionRepo.
type Catalog struct {
	decks map[string]*Deck
}

var _ quiz.QuestionRepo = (*Catalog)(nil)

// Load reads every *.yaml / *.yml file in dir, one deck per file. A file
// that fails to parse or validate aborts the load with an error naming it;
// a deck directory with no deck files yields an empty catalog, not an error.
func Load(dir string) (*Catalog, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	c := &Catalog{decks: make(map[string]*Deck)}
	for _, file := range files {
		d, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		if _, dup := c.decks[d.ID]; dup {
			return nil, fmt.Errorf("load %s: duplicate deck id %q", file, d.ID)
		}
		c.decks[d.ID] = d
	}
	return c, nil
}

// LoadFile reads and validates a single deck file. Questions without an
// explicit id get their 1-based position.
func LoadFile(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}

	var df deckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", path, err)
	}

	id := df.ID
	if id == "" {
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	d := &Deck{
		ID:          id,
		Title:       df.Title,
		Description: df.Description,
		Author:      df.Author,
	}
	for i, qf := range df.Questions {
		qid := qf.ID
		if qid == 0 {
			qid = i + 1
		}
		tag := qf.Tag
		if tag == "" {
			tag = "general"
		}
		d.Questions = append(d.Questions, quiz.Question{
			ID:          qid,
			Tag:         tag,
			Text:        qf.Text,
			Options:     qf.Options,
			AnswerIndex: qf.Answer,
			Explanation: qf.Explanation,
		})
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// Decks returns every deck sorted by title.
func (c *Catalog) Decks() []*Deck {
	out := make([]*Deck, 0, len(c.decks))
	for _, d := range c.decks {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Get returns a deck by ID.
func (c *Catalog) Get(id string) (*Deck, bool) {
	d, ok := c.decks[id]
	return d, ok
}

// Len returns the number of loaded decks.
func (c *Catalog) Len() int { return len(c.decks) }

// QuestionsForTest implements quiz.QuestionRepo.
func (c *Catalog) QuestionsForTest(_ context.Context, testID string) ([]quiz.Question, error) {
	d, ok := c.decks[testID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", testID, ErrDeckNotFound)
	}
	out := make([]quiz.Question, len(d.Questions))
	copy(out, d.Questions)
	return out, nil
}

// QuestionsByIDs implements quiz.QuestionRepo. Unknown ids are skipped; an
// unknown deck resolves to an empty list so stale history cannot fail a
// practice session.
func (c *Catalog) QuestionsByIDs(_ context.Context, testID string, ids []int) ([]quiz.Question, error) {
	d, ok := c.decks[testID]
	if !ok {
		return nil, nil
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []quiz.Question
	for _, q := range d.Questions {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

// TagsForTest implements quiz.QuestionRepo.
func (c *Catalog) TagsForTest(_ context.Context, testID string) ([]string, error) {
	d, ok := c.decks[testID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", testID, ErrDeckNotFound)
	}
	return d.Tags(), nil
}

// DefaultDir resolves the decks directory in priority order:
// 1. QUIZDRILL_DECKS environment variable
// 2. $XDG_DATA_HOME/quizdrill/decks
// 3. ~/.local/share/quizdrill/decks
func DefaultDir() (string, error) {
	if p := os.Getenv("QUIZDRILL_DECKS"); p != "" {
		return p, nil
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	dir := filepath.Join(dataHome, "quizdrill", "decks")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create decks dir: %w", err)
	}
	return dir, nil
}
