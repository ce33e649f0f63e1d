package output

import (
	"path/filepath"

	"github.com/google/uuid"

	"github.com/leapstack-labs/nblint/internal/engine"
	"github.com/leapstack-labs/nblint/pkg/lint"
)

// SARIF 2.1.0 identifiers.
const (
	SARIFSchema  = "https://docs.oasis-open.org/sarif/sarif/v2.1.0/sarif-schema-2.1.0.json"
	SARIFVersion = "2.1.0"
)

// ToolVersion is the nblint version reported in SARIF output.
var ToolVersion = "dev"

// ToolInformationURI is reported as the SARIF driver's informationUri.
var ToolInformationURI = "https://github.com/leapstack-labs/nblint"

// SARIFLog is the top-level SARIF document.
type SARIFLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is a single tool invocation.
type SARIFRun struct {
	Tool              SARIFTool              `json:"tool"`
	AutomationDetails SARIFAutomationDetails `json:"automationDetails"`
	Results           []SARIFResult          `json:"results"`
	Properties        map[string]any         `json:"properties,omitempty"`
}

// SARIFAutomationDetails identifies the run.
type SARIFAutomationDetails struct {
	GUID string `json:"guid"`
}

// SARIFTool wraps the driver.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver describes nblint and its rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one message.
type SARIFRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription SARIFMessage       `json:"shortDescription"`
	FullDescription  *SARIFMessage      `json:"fullDescription,omitempty"`
	HelpURI          string             `json:"helpUri,omitempty"`
	DefaultConfig    SARIFDefaultConfig `json:"defaultConfiguration"`
}

// SARIFDefaultConfig holds the default level of a rule.
type SARIFDefaultConfig struct {
	Level string `json:"level"`
}

// SARIFMessage is a plain-text message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFResult is one diagnostic.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFMessage    `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFLocation points at a file region.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation is a file and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation is a file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is a line range.
type SARIFRegion struct {
	StartLine int `json:"startLine"`
}

// NewSARIFLog builds a SARIF log from a lint result. Every known rule is
// listed in the driver; results reference rules by index.
func NewSARIFLog(res *engine.Result, rules []lint.RuleInfo) SARIFLog {
	ruleIndex := make(map[string]int, len(rules))
	sarifRules := make([]SARIFRule, 0, len(rules))
	for _, ri := range rules {
		ruleIndex[ri.ID] = len(sarifRules)
		rule := SARIFRule{
			ID:               ri.ID,
			Name:             ri.Symbol,
			ShortDescription: SARIFMessage{Text: ri.Description},
			HelpURI:          ri.DocURL,
			DefaultConfig:    SARIFDefaultConfig{Level: SARIFLevel(ri.Severity)},
		}
		if ri.Rationale != "" {
			rule.FullDescription = &SARIFMessage{Text: ri.Rationale}
		}
		sarifRules = append(sarifRules, rule)
	}

	results := []SARIFResult{}
	for _, fr := range res.Files {
		for _, d := range fr.Diagnostics {
			idx, ok := ruleIndex[d.RuleID]
			if !ok {
				idx = len(sarifRules)
				ruleIndex[d.RuleID] = idx
				sarifRules = append(sarifRules, SARIFRule{
					ID:               d.RuleID,
					Name:             d.Symbol,
					ShortDescription: SARIFMessage{Text: d.Message},
					DefaultConfig:    SARIFDefaultConfig{Level: SARIFLevel(d.Severity)},
				})
			}
			results = append(results, SARIFResult{
				RuleID:    d.RuleID,
				RuleIndex: idx,
				Level:     SARIFLevel(d.Severity),
				Message:   SARIFMessage{Text: d.Message},
				Locations: []SARIFLocation{{
					PhysicalLocation: SARIFPhysicalLocation{
						ArtifactLocation: SARIFArtifactLocation{URI: filepath.ToSlash(fr.Path)},
						Region:           SARIFRegion{StartLine: max(d.Line, 1)},
					},
				}},
			})
		}
	}

	return SARIFLog{
		Schema:  SARIFSchema,
		Version: SARIFVersion,
		Runs: []SARIFRun{{
			Tool: SARIFTool{Driver: SARIFDriver{
				Name:           "nblint",
				Version:        ToolVersion,
				InformationURI: ToolInformationURI,
				Rules:          sarifRules,
			}},
			AutomationDetails: SARIFAutomationDetails{GUID: uuid.NewString()},
			Results:           results,
			Properties: map[string]any{
				"files_scanned": res.Summary.FilesScanned,
				"notebooks":     res.Summary.Notebooks,
				"duration_ms":   res.Duration.Milliseconds(),
			},
		}},
	}
}

// SARIFLevel maps a severity to a SARIF level.
func SARIFLevel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
