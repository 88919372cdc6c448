package parser

import (
	"fmt"
	"strings"
)

// tracef reports a parse event through the structured logger and, when
// the Trace option is set, mirrors it to the trace writer indented by
// rule nesting depth.
func (p *Parser) tracef(st state, format string, args ...interface{}) {
	p.log.Debugf(format, args...)
	if p.trace == nil {
		return
	}
	fmt.Fprintf(p.trace, "%s%s\n", strings.Repeat("  ", st.depth), fmt.Sprintf(format, args...))
}
