package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
	"github.com/newthinker/treasury/internal/format"
)

// HeaderView is the company banner.
type HeaderView struct {
	Name        string
	Info        string
	Price       string
	Change      string
	ChangeClass string
}

// BuildHeader builds the banner. The name falls back to the symbol.
func BuildHeader(s *core.FinancialSnapshot) HeaderView {
	if s == nil {
		return HeaderView{Name: "No data", Price: format.Currency(0), ChangeClass: "positive"}
	}

	name := s.CompanyName
	if name == "" {
		name = s.Symbol
	}

	class := "positive"
	if s.ChangePercent < 0 {
		class = "negative"
	}

	return HeaderView{
		Name:        name,
		Info:        orNA(s.Sector) + " | " + orNA(s.Industry),
		Price:       format.Currency(s.Price.Float()),
		Change:      format.Signed(s.Change.Float(), 2) + " (" + format.Signed(s.ChangePercent.Float(), 2) + "%)",
		ChangeClass: class,
	}
}

// Header renders the company banner.
func (r *Renderer) Header(s *core.FinancialSnapshot) (template.HTML, error) {
	return r.execute(SectionHeader, BuildHeader(s))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
