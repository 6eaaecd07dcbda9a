package insights

import (
	"fmt"
	"strings"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
)

// Known domain families. First matching rule wins; everything else is
// general with no special handling.
var (
	productivityDomains = []string{
		"gmail.com", "mail.google.com", "calendar.google.com",
		"outlook.com", "outlook.live.com", "notion.so", "todoist.com",
		"trello.com", "asana.com", "linear.app", "slack.com", "monday.com",
	}

	contentDomains = []string{
		"medium.com", "substack.com", "nytimes.com", "theguardian.com",
		"newyorker.com", "theatlantic.com", "longreads.com",
		"arstechnica.com", "wired.com", "bbc.com",
	}

	codeDomains = []string{
		"github.com", "gitlab.com", "bitbucket.org", "codeberg.org",
	}

	documentationDomains = []string{
		"stackoverflow.com", "stackexchange.com", "developer.mozilla.org",
		"docs.python.org", "pkg.go.dev", "go.dev", "readthedocs.io",
		"wikipedia.org", "learn.microsoft.com",
	}

	// URL path segments that indicate active work on a code platform.
	activeWorkMarkers = []string{"/pull/", "/pulls", "/issues/", "/merge_requests/", "/compare/"}
)

type DomainContextClassifier struct{}

func NewDomainContextClassifier() *DomainContextClassifier {
	return &DomainContextClassifier{}
}

// Analyze decides which family of heuristics governs a resource and whether
// strict or lenient scoring applies. The two flags are never both true.
func (c *DomainContextClassifier) Analyze(domain, url string, meta *entity.TabMetadata) entity.DomainContext {
	switch {
	case matchesAny(domain, productivityDomains):
		return c.productivityContext(meta)
	case matchesAny(domain, contentDomains):
		return c.contentContext(meta)
	case matchesAny(domain, codeDomains):
		return c.codeContext(url, meta)
	case matchesAny(domain, documentationDomains):
		return c.documentationContext(meta)
	default:
		return entity.DomainContext{
			DomainType:   entity.DomainTypeGeneral,
			ContextNotes: []string{"no domain-specific heuristics apply"},
		}
	}
}

func (c *DomainContextClassifier) productivityContext(meta *entity.TabMetadata) entity.DomainContext {
	ctx := entity.DomainContext{DomainType: entity.DomainTypeProductivityTool}

	if meta.DaysSinceLastActivity < 1 {
		ctx.ShouldApplyLenientRules = true
		ctx.ContextNotes = append(ctx.ContextNotes, "productivity tool with activity in the last day")
	} else {
		ctx.ContextNotes = append(ctx.ContextNotes,
			fmt.Sprintf("productivity tool, idle for %.0f days", meta.DaysSinceLastActivity))
	}

	return ctx
}

func (c *DomainContextClassifier) contentContext(meta *entity.TabMetadata) entity.DomainContext {
	ctx := entity.DomainContext{DomainType: entity.DomainTypeContentSite}

	if meta.IsSingleVisit {
		// A single unfinished read is the canonical hoarding signature.
		ctx.ShouldApplyStrictRules = true
		ctx.ContextNotes = append(ctx.ContextNotes, "classic read-later pattern: opened once, never finished")
	} else {
		ctx.ContextNotes = append(ctx.ContextNotes,
			fmt.Sprintf("long-form content revisited %d times", meta.VisitCount))
	}

	return ctx
}

func (c *DomainContextClassifier) codeContext(url string, meta *entity.TabMetadata) entity.DomainContext {
	ctx := entity.DomainContext{DomainType: entity.DomainTypeCodePlatform}

	for _, marker := range activeWorkMarkers {
		if strings.Contains(url, marker) {
			ctx.ShouldApplyLenientRules = true
			ctx.ContextNotes = append(ctx.ContextNotes, "active work in progress")
			return ctx
		}
	}

	if meta.VisitCount <= 2 {
		ctx.ShouldApplyStrictRules = true
		ctx.ContextNotes = append(ctx.ContextNotes, "repository opened in passing")
	} else {
		ctx.ContextNotes = append(ctx.ContextNotes, "code platform visited regularly")
	}

	return ctx
}

func (c *DomainContextClassifier) documentationContext(meta *entity.TabMetadata) entity.DomainContext {
	ctx := entity.DomainContext{DomainType: entity.DomainTypeDocumentation}

	if meta.VisitCount > 1 {
		ctx.ShouldApplyLenientRules = true
		ctx.ContextNotes = append(ctx.ContextNotes, "frequently revisited reference")
	} else {
		ctx.ShouldApplyStrictRules = true
		ctx.ContextNotes = append(ctx.ContextNotes, "reference opened once and left behind")
	}

	return ctx
}

func matchesAny(domain string, known []string) bool {
	domain = strings.ToLower(strings.TrimPrefix(domain, "www."))
	for _, d := range known {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return true
		}
	}
	return false
}
