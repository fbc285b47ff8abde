package oracle

// Request is one element of the batch handed to the checker. Field names are
// fixed by the checker's stdin protocol.
type Request struct {
	Regex       string   `json:"regex"`
	FilePath    string   `json:"filePath"`
	Line        int      `json:"line"`
	Col         int      `json:"col"`
	SourceLines []string `json:"sourceLines"`
}

// Verdict statuses reported by the checker.
const (
	StatusSafe       = "safe"
	StatusVulnerable = "vulnerable"
)

// Verdict is the checker's judgement for one request. The checker echoes the
// request fields back, and verdicts arrive in the same order as the batch;
// position is the only correlation key.
type Verdict struct {
	Status      string   `json:"status"`
	Regex       string   `json:"regex"`
	FilePath    string   `json:"filePath"`
	Line        int      `json:"line"`
	Col         int      `json:"col"`
	SourceLines []string `json:"sourceLines"`
	Attack      *Attack  `json:"attack"`
}

// Attack is the witness for a vulnerable verdict. Its fields are opaque
// checker output; they are rendered, never interpreted.
type Attack struct {
	String string `json:"string"`
	Base   int    `json:"base"`
	Pumps  []Pump `json:"pumps"`
}

// Pump describes one repeated substring driving the backtracking blowup.
type Pump struct {
	Pump   string `json:"pump"`
	Prefix string `json:"prefix"`
	Bias   int    `json:"bias"`
}
