package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/paas-statements/pkg/models/domain"
)

type TableConfig struct {
	SpaceWidth    int
	PlanWidth     int
	ResourceWidth int
	TypeWidth     int
	AmountWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		SpaceWidth:    20,
		PlanWidth:     20,
		ResourceWidth: 32,
		TypeWidth:     10,
		AmountWidth:   12,
	}
}

// Reporter prints a statement as a fixed-width table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(st *domain.Statement) error {
	funcMap := template.FuncMap{
		"formatRow": func(space, plan, resource, kind, exVAT, incVAT string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s | %*s | %*s |",
				c.config.SpaceWidth, truncate(space, c.config.SpaceWidth),
				c.config.PlanWidth, truncate(plan, c.config.PlanWidth),
				c.config.ResourceWidth, truncate(resource, c.config.ResourceWidth),
				c.config.TypeWidth, truncate(kind, c.config.TypeWidth),
				c.config.AmountWidth, exVAT,
				c.config.AmountWidth, incVAT)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.SpaceWidth+2),
				strings.Repeat("-", c.config.PlanWidth+2),
				strings.Repeat("-", c.config.ResourceWidth+2),
				strings.Repeat("-", c.config.TypeWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2))
		},
		"currency": Currency,
		"spaceName": func(item domain.ResourceUsageRecord) string {
			if item.Space != nil {
				return item.Space.Name
			}
			return item.SpaceGUID
		},
	}

	tmpl := `
Statement for {{.Organization.Name}} ({{.Organization.GUID}})
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.Stop.Format "2006-01-02"}}{{if .IsCurrentMonth}} (month to date){{end}}
Space: {{.SelectedSpace.Name}}   Service: {{.SelectedPlan.Name}}

{{separator}}
{{formatRow "Space" "Plan" "Resource" "Type" "ex VAT" "inc VAT"}}
{{separator}}
{{range .Items}}{{formatRow (spaceName .) .PlanName .ResourceName .ResourceType (currency .Price.ExVAT 2) (currency .Price.IncVAT 2)}}
{{end}}{{separator}}

Total ex VAT:  £{{currency .Totals.ExVAT 2}}
Total inc VAT: £{{currency .Totals.IncVAT 2}}
USD exchange rate: {{currency .USDExchangeRate 4}}
`

	t, err := template.New("statement").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, st)
}

// Currency formats n with a fixed number of decimals.
func Currency(n float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, n)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
