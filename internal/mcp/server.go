// Package mcp exposes the result checker as Model Context Protocol tools.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"rstcheck/internal/compare"
	"rstcheck/internal/format"
	"rstcheck/internal/logging"
	"rstcheck/internal/suite"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP SDK server. Relative paths in tool calls resolve
// against Root.
type Server struct {
	MCPServer *sdkmcp.Server
	Root      string
}

// NewServer creates an MCP server with the comparison tools registered.
// Root defaults to the current working directory.
func NewServer(version string) *Server {
	cwd, _ := os.Getwd()
	s := &Server{Root: cwd}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "rstcheck", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "compare_files",
		Description: "Compare a reference result file against a candidate line by line. Returns the verdict, the differing lines and the text report. Empty paths fall back to the default reference and candidate.",
	}, s.handleCompareFiles)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_suite",
		Description: "Run every comparison listed in a YAML or JSON suite file and return per-case verdicts.",
	}, s.handleRunSuite)
}

// --- Tool input/output types ---

type compareFilesInput struct {
	Reference string `json:"reference,omitempty" jsonschema:"path of the known-correct file"`
	Candidate string `json:"candidate,omitempty" jsonschema:"path of the freshly produced file"`
}

type lineEntry struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type compareFilesOutput struct {
	Reference string      `json:"reference"`
	Candidate string      `json:"candidate"`
	Verdict   string      `json:"verdict"`
	Added     int         `json:"added"`
	Removed   int         `json:"removed"`
	Entries   []lineEntry `json:"entries"`
	Report    string      `json:"report"`
}

type runSuiteInput struct {
	Path string `json:"path" jsonschema:"path of the suite file (.yaml, .yml or .json)"`
}

type caseOutcome struct {
	Name    string `json:"name"`
	Verdict string `json:"verdict"`
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
	Error   string `json:"error,omitempty"`
}

type runSuiteOutput struct {
	Name    string        `json:"name"`
	Passed  bool          `json:"passed"`
	Cases   []caseOutcome `json:"cases"`
	Summary string        `json:"summary"`
}

// --- Tool handlers ---

func (s *Server) handleCompareFiles(_ context.Context, _ *sdkmcp.CallToolRequest, input compareFilesInput) (*sdkmcp.CallToolResult, compareFilesOutput, error) {
	ref, cand := input.Reference, input.Candidate
	if ref == "" {
		ref = suite.DefaultReference
	}
	if cand == "" {
		cand = suite.DefaultCandidate
	}
	ref, cand = s.resolve(ref), s.resolve(cand)

	var buf bytes.Buffer
	res, err := compare.Check(&buf, ref, cand)
	if err != nil {
		return nil, compareFilesOutput{}, fmt.Errorf("compare_files: %w", err)
	}
	logging.New("mcp").Info("compare_files", "reference", ref, "candidate", cand, "verdict", res.Verdict())

	entries := make([]lineEntry, 0, len(res.Entries))
	for _, e := range res.Entries {
		entries = append(entries, lineEntry{Kind: e.Kind.String(), Text: e.Text})
	}
	return nil, compareFilesOutput{
		Reference: ref,
		Candidate: cand,
		Verdict:   string(res.Verdict()),
		Added:     res.Added(),
		Removed:   res.Removed(),
		Entries:   entries,
		Report:    buf.String(),
	}, nil
}

func (s *Server) handleRunSuite(ctx context.Context, _ *sdkmcp.CallToolRequest, input runSuiteInput) (*sdkmcp.CallToolResult, runSuiteOutput, error) {
	if input.Path == "" {
		return nil, runSuiteOutput{}, fmt.Errorf("run_suite: path is required")
	}
	st, err := suite.LoadFromPath(s.resolve(input.Path))
	if err != nil {
		return nil, runSuiteOutput{}, fmt.Errorf("run_suite: %w", err)
	}
	outcomes, err := suite.Run(ctx, st, compare.PlainPrinter{})
	if err != nil {
		return nil, runSuiteOutput{}, fmt.Errorf("run_suite: %w", err)
	}

	out := runSuiteOutput{
		Name:    st.Name,
		Passed:  suite.Passed(outcomes),
		Cases:   make([]caseOutcome, 0, len(outcomes)),
		Summary: suite.Summary(outcomes, format.Markdown),
	}
	for _, o := range outcomes {
		co := caseOutcome{Name: o.Case.Name, Verdict: "error"}
		if o.Err != nil {
			co.Error = o.Err.Error()
		} else {
			co.Verdict = string(o.Result.Verdict())
			co.Added, co.Removed = o.Result.Added(), o.Result.Removed()
		}
		out.Cases = append(out.Cases, co)
	}
	return nil, out, nil
}

func (s *Server) resolve(p string) string {
	if filepath.IsAbs(p) || s.Root == "" {
		return p
	}
	return filepath.Join(s.Root, p)
}
