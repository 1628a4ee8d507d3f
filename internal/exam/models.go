package exam

// Question types supported by the grading engine.
const (
	TypeNAT = "nat" // numeric answer, tolerance/range matched
	TypeMCQ = "mcq" // single choice
	TypeMSQ = "msq" // multiple select, exact set for full credit
)

type Option struct {
	ID        string `json:"id,omitempty"`
	Label     string `json:"label,omitempty"` // canonical A/B/C..., filled by Normalize
	TextHTML  string `json:"text_html,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	IsCorrect bool   `json:"is_correct,omitempty"`
}

type Question struct {
	ID         string   `json:"id"`
	Type       string   `json:"type"` // nat, mcq, msq
	PromptHTML string   `json:"prompt_html,omitempty"`
	Options    []Option `json:"options,omitempty"` // empty for NAT

	// AnswerKey holds the authored correct answer. NAT: one element that may
	// encode values, inclusive "min-max" ranges and "or" alternatives.
	// MCQ: one element, possibly "A or C". MSQ: one element per correct label.
	AnswerKey []string `json:"answer_key,omitempty"`

	Marks         float64 `json:"marks"`
	NegativeMarks float64 `json:"negative_marks,omitempty"` // magnitude, subtracted on wrong attempts
	Category      string  `json:"category,omitempty"`       // analytics only
}

type Section struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

type Paper struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DurationSec int       `json:"duration_sec"`
	Premium     bool      `json:"premium,omitempty"`
	Sections    []Section `json:"sections"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

// Questions flattens the section tree in authored order.
func (p Paper) Questions() []Question {
	var out []Question
	for _, s := range p.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// QuestionByID looks a question up across all sections.
func (p Paper) QuestionByID(id string) (Question, bool) {
	for _, s := range p.Sections {
		for _, q := range s.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}
