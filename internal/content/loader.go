package content

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skillrun/quizrunner/internal/quiz"
)

//go:embed decks/arithmetic.yaml
var defaultDeckYAML []byte

// Deck is a validated, ready-to-play question set.
type Deck struct {
	Questions []quiz.Question
	Meta      quiz.Metadata
	FilePath  string // empty for the embedded default deck
}

// ID returns a stable identifier for the deck: the file base name without
// extension, or "default" for the embedded deck.
func (d Deck) ID() string {
	if d.FilePath == "" {
		return "default"
	}
	base := filepath.Base(d.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultDeck returns the embedded arithmetic deck. The embedded file is
// validated at startup like any other deck; it failing is a programming
// error, so this panics rather than returning an error.
func DefaultDeck() Deck {
	deck, err := ParseYAML(defaultDeckYAML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded default deck invalid: %v", err))
	}
	return deck
}

// LoadFile loads and validates a single deck file. The format is chosen by
// file extension (.yaml/.yml/.json).
func LoadFile(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("content: reading %s: %w", path, err)
	}

	deck, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return Deck{}, fmt.Errorf("content: parsing %s: %w", path, err)
	}

	deck.FilePath = path
	return deck, nil
}

// Loader discovers deck files under a root directory.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at the given directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans the root and loads every deck file. Files that
// fail to parse are skipped. Decks are sorted by ID for deterministic
// ordering. A missing root yields no decks rather than an error.
func (l *Loader) LoadAll() ([]Deck, error) {
	if _, err := os.Stat(l.Root); os.IsNotExist(err) {
		return nil, nil
	}

	var decks []Deck
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !supportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		deck, loadErr := LoadFile(path)
		if loadErr != nil {
			// Skip invalid files; the validate command reports details.
			return nil
		}
		decks = append(decks, deck)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("content: walking %s: %w", l.Root, err)
	}

	sort.Slice(decks, func(i, j int) bool { return decks[i].ID() < decks[j].ID() })
	return decks, nil
}

// LoadByID loads a specific deck by its ID.
func (l *Loader) LoadByID(id string) (Deck, error) {
	decks, err := l.LoadAll()
	if err != nil {
		return Deck{}, err
	}
	for _, d := range decks {
		if d.ID() == id {
			return d, nil
		}
	}
	return Deck{}, fmt.Errorf("content: deck not found: %s", id)
}

// supportedExtension reports whether ext names a parsable deck format.
func supportedExtension(ext string) bool {
	switch ext {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (Deck, error) {
	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Deck{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
