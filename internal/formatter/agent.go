package formatter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// Metadata is the optional hint block attached to agent envelopes.
type Metadata struct {
	Count      *int   `json:"count,omitempty"`
	Truncated  bool   `json:"truncated,omitempty"`
	Command    string `json:"command,omitempty"`
	NextAction string `json:"next_action,omitempty"`
}

type agentEnvelope struct {
	Status   string    `json:"status"`
	Data     any       `json:"data"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// AgentFormatter wraps every response in a {status, data, metadata}
// envelope so automated callers can branch on status without guessing
// at the payload shape.
type AgentFormatter struct {
	w    io.Writer
	meta *Metadata
}

func NewAgentFormatter(w io.Writer) *AgentFormatter {
	return &AgentFormatter{w: w}
}

// WithMetadata attaches metadata to subsequent envelopes.
func (f *AgentFormatter) WithMetadata(meta *Metadata) *AgentFormatter {
	f.meta = meta
	return f
}

func (f *AgentFormatter) Format(body []byte) error {
	var data any
	if err := sonic.Unmarshal(body, &data); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	encoder := json.NewEncoder(f.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(agentEnvelope{
		Status:   "success",
		Data:     data,
		Metadata: f.meta,
	})
}
