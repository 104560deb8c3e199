package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"phpdrift/internal/diag"
	"phpdrift/internal/source"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "note"
	}
}

func sarifLocationFor(fs *source.FileSet, sp source.Span, msg string) (sarifLocation, bool) {
	loc, ok := resolveLoc(fs, sp, PathModeRelative)
	if !ok {
		return sarifLocation{}, false
	}
	out := sarifLocation{
		PhysicalLocation: sarifPhysical{
			// SARIF требует URI с прямыми слэшами даже на Windows
			ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(loc.path)},
			Region: &sarifRegion{
				StartLine:   loc.start.Line,
				StartColumn: loc.start.Col,
				EndLine:     loc.end.Line,
				EndColumn:   loc.end.Col,
			},
		},
	}
	if msg != "" {
		out.Message = &sarifMessage{Text: msg}
	}
	return out, true
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0). Коды диагностик
// становятся правилами в tool.driver.rules, каждая диагностика — result
// со ссылкой по ruleIndex.
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	ruleIndex := make(map[diag.Code]int)
	rules := make([]sarifRule, 0, 4)
	results := make([]sarifResult, 0, bag.Len())

	for _, d := range bag.Items() {
		idx, seen := ruleIndex[d.Code]
		if !seen {
			idx = len(rules)
			ruleIndex[d.Code] = idx
			rules = append(rules, sarifRule{
				ID:               d.Code.ID(),
				ShortDescription: sarifMessage{Text: d.Code.Title()},
			})
		}

		res := sarifResult{
			RuleID:    d.Code.ID(),
			RuleIndex: idx,
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
		}
		if loc, ok := sarifLocationFor(fs, d.Primary, ""); ok {
			res.Locations = append(res.Locations, loc)
		}
		for _, n := range d.Notes {
			if loc, ok := sarifLocationFor(fs, n.Span, n.Msg); ok {
				res.RelatedLocations = append(res.RelatedLocations, loc)
			}
		}
		results = append(results, res)
	}

	log := sarifLog{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: meta.InfoURI,
				Rules:          rules,
			}},
			Invocations: []sarifInvocation{{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: true,
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
