package exam

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML shape for authored paper banks. Kept separate from the wire model so
// authoring files stay stable even if JSON tags move.
type paperYAML struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	DurationSec int           `yaml:"duration_sec"`
	Premium     bool          `yaml:"premium"`
	Sections    []sectionYAML `yaml:"sections"`
}

type sectionYAML struct {
	Name      string         `yaml:"name"`
	Questions []questionYAML `yaml:"questions"`
}

type questionYAML struct {
	ID            string       `yaml:"id"`
	Type          string       `yaml:"type"`
	PromptHTML    string       `yaml:"prompt_html"`
	Options       []optionYAML `yaml:"options"`
	AnswerKey     []string     `yaml:"answer_key"`
	Marks         float64      `yaml:"marks"`
	NegativeMarks float64      `yaml:"negative_marks"`
	Category      string       `yaml:"category"`
}

type optionYAML struct {
	ID       string `yaml:"id"`
	TextHTML string `yaml:"text_html"`
	ImageURL string `yaml:"image_url"`
	Correct  bool   `yaml:"correct"`
}

// IngestDir loads every *.yaml paper under dir into the store. A malformed
// file is logged and skipped so one bad paper cannot block seeding the rest.
// Returns the number of papers loaded.
func IngestDir(ctx context.Context, store Store, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read paper dir %s: %w", dir, err)
	}
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := LoadPaperFile(path)
		if err != nil {
			log.Printf("ingest: skip %s: %v", path, err)
			continue
		}
		if err := store.PutPaper(ctx, p); err != nil {
			log.Printf("ingest: skip %s: %v", path, err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

func LoadPaperFile(path string) (Paper, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Paper{}, err
	}
	return ParsePaperYAML(buf)
}

func ParsePaperYAML(buf []byte) (Paper, error) {
	var py paperYAML
	if err := yaml.Unmarshal(buf, &py); err != nil {
		return Paper{}, fmt.Errorf("parse paper yaml: %w", err)
	}
	p := Paper{
		ID:          py.ID,
		Title:       py.Title,
		DurationSec: py.DurationSec,
		Premium:     py.Premium,
	}
	for _, sy := range py.Sections {
		sec := Section{Name: sy.Name}
		for _, qy := range sy.Questions {
			q := Question{
				ID:            qy.ID,
				Type:          qy.Type,
				PromptHTML:    qy.PromptHTML,
				AnswerKey:     append([]string(nil), qy.AnswerKey...),
				Marks:         qy.Marks,
				NegativeMarks: qy.NegativeMarks,
				Category:      qy.Category,
			}
			for _, oy := range qy.Options {
				q.Options = append(q.Options, Option{
					ID:        oy.ID,
					TextHTML:  oy.TextHTML,
					ImageURL:  oy.ImageURL,
					IsCorrect: oy.Correct,
				})
			}
			sec.Questions = append(sec.Questions, q)
		}
		p.Sections = append(p.Sections, sec)
	}
	Normalize(&p)
	if err := Validate(p); err != nil {
		return Paper{}, err
	}
	return p, nil
}
