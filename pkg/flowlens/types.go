package flowlens

// NodeData carries the user-visible label of a diagram node.
type NodeData struct {
	Label string `json:"label"`
}

// Position is the canvas coordinate of a node.
// The orchestration core never interprets it; it is part of the
// payload only so that fingerprints reflect the full diagram.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DiagramNode is a single step in a business-process diagram.
type DiagramNode struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Data     NodeData `json:"data"`
	Position Position `json:"position"`
}

// Rule is a single branching condition attached to an edge.
type Rule struct {
	ID       string `json:"id"`
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// EdgeData holds the optional branching conditions of an edge.
// Logic is "AND" or "OR" and describes how Rules combine.
type EdgeData struct {
	Rules []Rule `json:"rules,omitempty"`
	Logic string `json:"logic,omitempty"`
}

// DiagramEdge connects two diagram nodes.
type DiagramEdge struct {
	ID     string    `json:"id"`
	Source string    `json:"source"`
	Target string    `json:"target"`
	Type   string    `json:"type,omitempty"`
	Data   *EdgeData `json:"data,omitempty"`
}

// Diagram is a business process as a directed graph.
type Diagram struct {
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}

// AnalysisRequest describes one analysis of a process diagram against a
// set of knowledge documents. It is immutable once constructed and
// fully determines its cache fingerprint.
type AnalysisRequest struct {
	SessionID           string   `json:"sessionId"`
	Diagram             Diagram  `json:"diagram"`
	SelectedDocumentIDs []string `json:"selectedDocumentIds"`
	Question            string   `json:"question,omitempty"`
}

// Overview is the first section of a structured analysis.
type Overview struct {
	ProcessName     string `json:"process_name"`
	Purpose         string `json:"purpose"`
	ProcessType     string `json:"process_type"`
	ComplexityLevel string `json:"complexity_level"`
	Scope           string `json:"scope"`
}

// Components decomposes the process into events, actors and steps.
type Components struct {
	StartEvent string   `json:"start_event"`
	EndEvent   string   `json:"end_event"`
	Actors     []string `json:"actors"`
	Steps      []string `json:"steps"`
	Sequence   string   `json:"sequence"`
}

// Execution covers operational characteristics of the process.
type Execution struct {
	SLA               string   `json:"sla"`
	InputRequirements []string `json:"input_requirements"`
	Output            string   `json:"output"`
	SystemIntegration []string `json:"system_integration"`
}

// Evaluation assesses the coherence and risks of the process.
type Evaluation struct {
	LogicCoherence string   `json:"logic_coherence"`
	Completeness   string   `json:"completeness"`
	Risks          []string `json:"risks"`
	Controls       []string `json:"controls"`
	Compliance     string   `json:"compliance"`
}

// Improvement lists optimization opportunities.
type Improvement struct {
	Bottlenecks               []string `json:"bottlenecks"`
	OptimizationOpportunities []string `json:"optimization_opportunities"`
	AutomationPossibility     string   `json:"automation_possibility"`
	KPIs                      []string `json:"kpis"`
}

// Summary concludes the analysis.
type Summary struct {
	Conclusion      string   `json:"conclusion"`
	Recommendations []string `json:"recommendations"`
}

// StructuredAnalysis is the six-section analysis report produced by the
// backend. The section shapes are fixed; free-text fields may contain
// inline citation markers resolvable via the citation package.
type StructuredAnalysis struct {
	Overview    Overview    `json:"overview"`
	Components  Components  `json:"components"`
	Execution   Execution   `json:"execution"`
	Evaluation  Evaluation  `json:"evaluation"`
	Improvement Improvement `json:"improvement"`
	Summary     Summary     `json:"summary"`
}

// CitationSource is a knowledge-base passage the analysis cites.
// CitationID is 1-based and unique within one result; free-text fields
// reference it through inline markers such as "(Nguồn [2])".
type CitationSource struct {
	CitationID        int     `json:"citationId"`
	DocumentID        string  `json:"documentId"`
	Title             string  `json:"title"`
	S3URI             string  `json:"s3_uri,omitempty"`
	Score             float64 `json:"score"`
	ContentPreview    string  `json:"content_preview"`
	FullRetrievedText string  `json:"full_retrieved_text"`
}

// AnalysisMetadata describes how a result was produced.
type AnalysisMetadata struct {
	ContextSources    int    `json:"context_sources"`
	DiagramComplexity string `json:"diagram_complexity"`
	Question          string `json:"question,omitempty"`
}

// AnalysisResult is the terminal output of one analysis job.
type AnalysisResult struct {
	Analysis StructuredAnalysis `json:"analysis"`
	Sources  []CitationSource   `json:"sources"`
	Metadata AnalysisMetadata   `json:"metadata"`
}

// JobStatus is the backend-reported state of an analysis job.
type JobStatus string

// Job states. COMPLETED and FAILED are terminal.
const (
	StatusSubmitted  JobStatus = "SUBMITTED"
	StatusProcessing JobStatus = "PROCESSING"
	StatusCompleted  JobStatus = "COMPLETED"
	StatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether no further transitions can occur.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// SubmitAck is the backend's response to a job submission.
type SubmitAck struct {
	JobID  string    `json:"jobId"`
	Status JobStatus `json:"status"`
}

// JobStatusResponse is one observation of a job's state.
// Result is populated only when Status is COMPLETED, Error only when
// Status is FAILED.
type JobStatusResponse struct {
	JobID  string          `json:"jobId"`
	Status JobStatus       `json:"status"`
	Result *AnalysisResult `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// DiagramRequest asks the backend to convert a description (free text
// and/or a base64-encoded image) into a diagram.
type DiagramRequest struct {
	Text     string `json:"text,omitempty"`
	Image    string `json:"image,omitempty"`
	Language string `json:"language,omitempty"`
}

// DiagramMetadata describes a generated diagram.
type DiagramMetadata struct {
	NodesCount int    `json:"nodes_count"`
	EdgesCount int    `json:"edges_count"`
	InputText  string `json:"input_text"`
	HasImage   bool   `json:"has_image"`
	Language   string `json:"language"`
}

// DiagramResponse is the backend's diagram-generation output.
type DiagramResponse struct {
	Success  bool            `json:"success"`
	Diagram  Diagram         `json:"diagram"`
	Metadata DiagramMetadata `json:"metadata"`
}

// Document is a knowledge-base record owned by the external document
// store. TextContent is the highlight target for citation links.
type Document struct {
	DocumentID   string `json:"documentId"`
	DocumentName string `json:"documentName"`
	DocumentType string `json:"documentType"`
	SourceURL    string `json:"sourceUrl,omitempty"`
	CreatedAt    string `json:"createdAt"`
	TextContent  string `json:"textContent,omitempty"`
}
