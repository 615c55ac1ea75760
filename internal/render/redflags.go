package render

import (
	"html/template"

	"github.com/newthinker/treasury/internal/core"
)

// RedFlags renders the flag list, or a "no flags" panel when empty.
func (r *Renderer) RedFlags(s *core.FinancialSnapshot) (template.HTML, error) {
	var flags []core.RedFlag
	if s != nil {
		flags = s.RedFlags
	}
	return r.execute(SectionRedFlags, flags)
}
