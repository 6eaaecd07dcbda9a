package insights

import (
	"testing"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeProductivityDomains(t *testing.T) {
	c := NewDomainContextClassifier()

	active := &entity.TabMetadata{VisitCount: 5, DaysSinceLastActivity: 0.2}
	ctx := c.Analyze("notion.so", "https://notion.so/workspace", active)
	assert.Equal(t, entity.DomainTypeProductivityTool, ctx.DomainType)
	assert.True(t, ctx.ShouldApplyLenientRules)
	assert.False(t, ctx.ShouldApplyStrictRules)

	idle := &entity.TabMetadata{VisitCount: 5, DaysSinceLastActivity: 4}
	ctx = c.Analyze("gmail.com", "https://gmail.com", idle)
	assert.Equal(t, entity.DomainTypeProductivityTool, ctx.DomainType)
	assert.False(t, ctx.ShouldApplyLenientRules)
	assert.False(t, ctx.ShouldApplyStrictRules)
}

func TestAnalyzeContentSites(t *testing.T) {
	c := NewDomainContextClassifier()

	single := &entity.TabMetadata{VisitCount: 1, IsSingleVisit: true}
	ctx := c.Analyze("medium.com", "https://medium.com/@a/post", single)
	assert.Equal(t, entity.DomainTypeContentSite, ctx.DomainType)
	assert.True(t, ctx.ShouldApplyStrictRules)
	assert.Contains(t, ctx.ContextNotes[0], "read-later")

	revisited := &entity.TabMetadata{VisitCount: 4}
	ctx = c.Analyze("medium.com", "https://medium.com/@a/post", revisited)
	assert.False(t, ctx.ShouldApplyStrictRules)
}

func TestAnalyzeCodePlatforms(t *testing.T) {
	c := NewDomainContextClassifier()
	meta := &entity.TabMetadata{VisitCount: 1}

	ctx := c.Analyze("github.com", "https://github.com/org/repo/pull/42", meta)
	assert.Equal(t, entity.DomainTypeCodePlatform, ctx.DomainType)
	assert.True(t, ctx.ShouldApplyLenientRules)

	ctx = c.Analyze("github.com", "https://github.com/org/repo", meta)
	assert.True(t, ctx.ShouldApplyStrictRules)

	regular := &entity.TabMetadata{VisitCount: 8}
	ctx = c.Analyze("github.com", "https://github.com/org/repo", regular)
	assert.False(t, ctx.ShouldApplyStrictRules)
	assert.False(t, ctx.ShouldApplyLenientRules)
}

func TestAnalyzeDocumentation(t *testing.T) {
	c := NewDomainContextClassifier()

	once := &entity.TabMetadata{VisitCount: 1}
	ctx := c.Analyze("stackoverflow.com", "https://stackoverflow.com/questions/1", once)
	assert.Equal(t, entity.DomainTypeDocumentation, ctx.DomainType)
	assert.True(t, ctx.ShouldApplyStrictRules)

	often := &entity.TabMetadata{VisitCount: 6}
	ctx = c.Analyze("pkg.go.dev", "https://pkg.go.dev/net/url", often)
	assert.True(t, ctx.ShouldApplyLenientRules)
}

func TestAnalyzeGeneralDomain(t *testing.T) {
	c := NewDomainContextClassifier()
	meta := &entity.TabMetadata{VisitCount: 1}

	ctx := c.Analyze("randomshop.example", "https://randomshop.example/cart", meta)
	assert.Equal(t, entity.DomainTypeGeneral, ctx.DomainType)
	assert.False(t, ctx.ShouldApplyStrictRules)
	assert.False(t, ctx.ShouldApplyLenientRules)
}

func TestAnalyzeMatchesSubdomainsAndWWW(t *testing.T) {
	c := NewDomainContextClassifier()
	meta := &entity.TabMetadata{VisitCount: 3}

	ctx := c.Analyze("www.github.com", "https://www.github.com/org/repo", meta)
	assert.Equal(t, entity.DomainTypeCodePlatform, ctx.DomainType)

	ctx = c.Analyze("gist.github.com", "https://gist.github.com/a/1", meta)
	assert.Equal(t, entity.DomainTypeCodePlatform, ctx.DomainType)

	ctx = c.Analyze("en.wikipedia.org", "https://en.wikipedia.org/wiki/Go", meta)
	assert.Equal(t, entity.DomainTypeDocumentation, ctx.DomainType)
}

// Strict and lenient are mutually exclusive for every rule family.
func TestAnalyzeNeverSetsBothFlags(t *testing.T) {
	c := NewDomainContextClassifier()

	metas := []*entity.TabMetadata{
		{VisitCount: 1, IsSingleVisit: true, DaysSinceLastActivity: 0.1},
		{VisitCount: 1, IsSingleVisit: true, DaysSinceLastActivity: 10},
		{VisitCount: 12, DaysSinceLastActivity: 0.5},
		{VisitCount: 12, DaysSinceLastActivity: 30},
	}
	domains := []string{
		"gmail.com", "medium.com", "github.com", "stackoverflow.com", "unknown.example",
	}

	for _, domain := range domains {
		for _, meta := range metas {
			ctx := c.Analyze(domain, "https://"+domain+"/page", meta)
			assert.False(t, ctx.ShouldApplyStrictRules && ctx.ShouldApplyLenientRules,
				"both flags set for %s with %+v", domain, meta)
		}
	}
}
