package engine

import "time"

// EventType defines the type of workflow event.
type EventType string

const (
	// EventAgentStart is the documented start-notification emitted when a
	// streaming strategy launches a unit of work.
	EventAgentStart EventType = "agent_start"
	// EventAgentMessage carries one worker's output.
	EventAgentMessage EventType = "agent_message"
	// EventWorkflowOutput carries the terminal aggregated result. It is
	// always the last event of a successful stream.
	EventWorkflowOutput EventType = "workflow_output"
	// EventError carries a terminal failure of a streaming execution.
	EventError EventType = "error"
)

// Event is one observable unit of progress. Events are created by the
// engine during execution and never mutated after creation.
type Event struct {
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
	Worker    string    `json:"worker,omitempty"`
	Text      string    `json:"text,omitempty"`
	Err       error     `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}

func newAgentStart(runID, worker string) Event {
	return Event{Type: EventAgentStart, RunID: runID, Worker: worker, Timestamp: time.Now()}
}

func newAgentMessage(runID, worker, text string) Event {
	return Event{Type: EventAgentMessage, RunID: runID, Worker: worker, Text: text, Timestamp: time.Now()}
}

func newWorkflowOutput(runID, text string) Event {
	return Event{Type: EventWorkflowOutput, RunID: runID, Text: text, Timestamp: time.Now()}
}

func newErrorEvent(runID string, err error) Event {
	return Event{Type: EventError, RunID: runID, Text: err.Error(), Err: err, Timestamp: time.Now()}
}
