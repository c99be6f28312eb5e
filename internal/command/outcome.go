package command

// Severity определяет тип сообщения о результате команды
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Outcome — одно сообщение о результате, адресованное вызывающему.
// Интерпретатор не занимается отображением: поверхность доставки сама
// решает, как показать каждый уровень серьезности.
type Outcome struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}

// Result — упорядоченный список сообщений одной команды.
// ForceReauth выставляется только командой disself: поверхность доставки
// обязана сбросить сессию вызывающего.
type Result struct {
	Outcomes    []Outcome `json:"outcomes"`
	ForceReauth bool      `json:"force_reauth,omitempty"`
}

func (r *Result) success(text string) {
	r.Outcomes = append(r.Outcomes, Outcome{Severity: SeveritySuccess, Text: text})
}

func (r *Result) info(text string) {
	r.Outcomes = append(r.Outcomes, Outcome{Severity: SeverityInfo, Text: text})
}

func (r *Result) warning(text string) {
	r.Outcomes = append(r.Outcomes, Outcome{Severity: SeverityWarning, Text: text})
}

func (r *Result) error(text string) {
	r.Outcomes = append(r.Outcomes, Outcome{Severity: SeverityError, Text: text})
}
