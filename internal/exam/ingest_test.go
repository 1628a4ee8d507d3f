package exam

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const samplePaperYAML = `
id: mock-01
title: Design Aptitude Mock 1
duration_sec: 7200
premium: true
sections:
  - name: Numerical
    questions:
      - id: q1
        type: nat
        prompt_html: "<p>Side of the square?</p>"
        answer_key: ["10-12"]
        marks: 4
        category: Geometry
  - name: Aptitude
    questions:
      - id: q2
        type: mcq
        options:
          - text_html: "red"
            correct: true
          - text_html: "blue"
          - text_html: "green"
            correct: true
        answer_key: ["A or C"]
        marks: 4
        negative_marks: 1
`

func TestParsePaperYAML(t *testing.T) {
	p, err := ParsePaperYAML([]byte(samplePaperYAML))
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != "mock-01" || !p.Premium || p.DurationSec != 7200 {
		t.Fatalf("metadata: %+v", p)
	}
	if len(p.Sections) != 2 {
		t.Fatalf("sections: %d", len(p.Sections))
	}
	q2, ok := p.QuestionByID("q2")
	if !ok {
		t.Fatal("q2 missing")
	}
	if q2.Options[2].Label != "C" || !q2.Options[2].IsCorrect {
		t.Fatalf("options not normalized: %+v", q2.Options)
	}
}

func TestParsePaperYAMLRejectsInvalid(t *testing.T) {
	bad := `
id: broken
sections:
  - name: S1
    questions:
      - id: q1
        type: essay
        marks: 4
`
	if _, err := ParsePaperYAML([]byte(bad)); err == nil {
		t.Fatal("unsupported type must be rejected")
	}
}

func TestIngestDirSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "good.yaml"), []byte(samplePaperYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(":::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewInMemoryStore()
	n, err := IngestDir(context.Background(), store, dir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 paper loaded, got %d", n)
	}
	if _, err := store.GetPaperFull(context.Background(), "mock-01"); err != nil {
		t.Fatalf("ingested paper not retrievable: %v", err)
	}
}

func TestMemoryStoreStudentViewStripped(t *testing.T) {
	store := NewInMemoryStore()
	p, err := ParsePaperYAML([]byte(samplePaperYAML))
	if err != nil {
		t.Fatal(err)
	}
	if err := store.PutPaper(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	safe, err := store.GetPaper(context.Background(), "mock-01")
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range safe.Questions() {
		if q.AnswerKey != nil {
			t.Fatal("student view leaked answer key")
		}
	}
	full, err := store.GetPaperFull(context.Background(), "mock-01")
	if err != nil {
		t.Fatal(err)
	}
	if full.Sections[0].Questions[0].AnswerKey == nil {
		t.Fatal("full view must keep keys after a stripped read")
	}
}
