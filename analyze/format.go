package analyze

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apimap/apimap"
)

var analysisMethodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// FormatAnalyses renders endpoint analyses as a plain-text report grouped
// by method, each group sorted by path.
func FormatAnalyses(analyses []*apimap.EndpointAnalysis) string {
	var b strings.Builder

	rule := strings.Repeat("=", 80)
	b.WriteString(rule + "\n")
	b.WriteString("API ENDPOINTS ANALYSIS\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Total Endpoints Analyzed: %d\n\n", len(analyses))

	byMethod := make(map[string][]*apimap.EndpointAnalysis)
	for _, a := range analyses {
		byMethod[a.Method] = append(byMethod[a.Method], a)
	}

	for _, method := range analysisMethodOrder {
		group := byMethod[method]
		if len(group) == 0 {
			continue
		}
		sort.Slice(group, func(i, j int) bool { return group[i].Path < group[j].Path })

		fmt.Fprintf(&b, "%s Endpoints (%d):\n", method, len(group))
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, a := range group {
			fmt.Fprintf(&b, "%-6s %s\n", a.Method, a.Path)
			fmt.Fprintf(&b, "  URL: %s\n", a.FullURL)
			fmt.Fprintf(&b, "  What it does: %s\n", a.Description)
			if len(a.Params) > 0 {
				fmt.Fprintf(&b, "  Path params: %s\n", strings.Join(a.Params, ", "))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(rule + "\n")
	return b.String()
}
