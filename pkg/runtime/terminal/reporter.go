package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

// Reporter outputs a short statement summary in plain text
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(st *domain.Statement) error {
	tmpl := `
{{.Organization.Name}}: {{.Period.Start.Format "January 2006"}}
Total: £{{printf "%.2f" .Totals.IncVAT}} inc VAT (£{{printf "%.2f" .Totals.ExVAT}} ex VAT)
{{range .Items}}
- {{.ResourceName}} [{{.PlanName}}]{{if .Space}} in {{.Space.Name}}{{end}}: £{{printf "%.2f" .Price.IncVAT}}
{{- end}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, st)
}
