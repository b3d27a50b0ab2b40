package ws

import "encoding/json"

// MessageType constants for the assistant WebSocket protocol.
const (
	// Client -> Server
	TypeInput   = "input"
	TypeAnswer  = "answer"
	TypeStart   = "start"
	TypeFinish  = "finish"
	TypeRestart = "restart"
	TypePing    = "ping"

	// Server -> Client
	TypeReady         = "ready"
	TypeSay           = "say"
	TypeQuestion      = "question"
	TypeProgress      = "progress"
	TypeProgressClear = "progress_clear"
	TypeCelebrate     = "celebrate"
	TypeFinishPrompt  = "finish_prompt"
	TypeResults       = "results"
	TypeError         = "error"
	TypePong          = "pong"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage marshals payload into a typed message. A nil payload is omitted.
func NewMessage(msgType string, payload any) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return ErrEmptyPayload
	}
	return json.Unmarshal(m.Payload, v)
}

// Client Messages (incoming)

type InputPayload struct {
	Text string `json:"text"`
}

type AnswerPayload struct {
	Yes bool `json:"yes"`
}

// Server Messages (outgoing)

type ReadyPayload struct {
	ConnectionID string `json:"connection_id"`
}

type SayPayload struct {
	Text string `json:"text"`
}

type QuestionPayload struct {
	Number     int    `json:"number"`
	Total      int    `json:"total"`
	Text       string `json:"text"`
	SymptomKey string `json:"symptom_key"`
}

type ProgressPayload struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

type ResultsPayload struct {
	Source  string        `json:"source"`
	Heading string        `json:"heading,omitempty"`
	Results []ResultEntry `json:"results"`
}

type ResultEntry struct {
	Condition       string   `json:"disease"`
	Score           float64  `json:"score"`
	MatchedSymptoms []string `json:"matched_symptoms"`
	Precautions     string   `json:"precautions"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
