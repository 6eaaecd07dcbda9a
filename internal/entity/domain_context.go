package entity

type DomainType string

const (
	DomainTypeProductivityTool DomainType = "productivity_tool"
	DomainTypeContentSite      DomainType = "content_site"
	DomainTypeCodePlatform     DomainType = "code_platform"
	DomainTypeDocumentation    DomainType = "documentation"
	DomainTypeGeneral          DomainType = "general"
)

// DomainContext decides which family of heuristics governs a resource.
// Strict and lenient are never both true.
type DomainContext struct {
	DomainType              DomainType `json:"domain_type"`
	ShouldApplyStrictRules  bool       `json:"should_apply_strict_rules"`
	ShouldApplyLenientRules bool       `json:"should_apply_lenient_rules"`
	ContextNotes            []string   `json:"context_notes"`
}
