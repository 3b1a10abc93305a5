package twilio

// Media Streams wire messages. Twilio sends every frame as a JSON object
// with an "event" discriminator; the payload sub-object carrying the
// variant's fields is named after the event.

const (
	EventConnected = "connected"
	EventStart     = "start"
	EventMedia     = "media"
	EventStop      = "stop"
	EventDtmf      = "dtmf"
	EventMark      = "mark"
)

// Track values on media events.
const (
	TrackInbound  = "inbound"
	TrackOutbound = "outbound"
)

type envelope struct {
	Event          string        `json:"event"`
	SequenceNumber string        `json:"sequenceNumber,omitempty"`
	StreamSid      string        `json:"streamSid,omitempty"`
	Protocol       string        `json:"protocol,omitempty"`
	Version        string        `json:"version,omitempty"`
	Start          *StartPayload `json:"start,omitempty"`
	Media          *MediaPayload `json:"media,omitempty"`
	Stop           *StopPayload  `json:"stop,omitempty"`
	Dtmf           *DtmfPayload  `json:"dtmf,omitempty"`
	Mark           *MarkPayload  `json:"mark,omitempty"`
}

// ConnectedEvent is the first frame Twilio sends on a new stream.
type ConnectedEvent struct {
	Protocol string
	Version  string
}

// StartEvent carries the stream metadata and negotiated media format.
type StartEvent struct {
	SequenceNumber string
	StreamSid      string
	Start          StartPayload
}

type StartPayload struct {
	StreamSid        string            `json:"streamSid"`
	AccountSid       string            `json:"accountSid"`
	CallSid          string            `json:"callSid"`
	Tracks           []string          `json:"tracks"`
	CustomParameters map[string]string `json:"customParameters"`
	MediaFormat      MediaFormat       `json:"mediaFormat"`
}

type MediaFormat struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

// MediaEvent carries one frame of base64 mu-law audio.
type MediaEvent struct {
	SequenceNumber string
	StreamSid      string
	Media          MediaPayload
}

type MediaPayload struct {
	Track     string `json:"track"`
	Chunk     string `json:"chunk"`
	Timestamp string `json:"timestamp"`
	Payload   string `json:"payload"`
}

type StopEvent struct {
	SequenceNumber string
	StreamSid      string
	Stop           StopPayload
}

type StopPayload struct {
	AccountSid string `json:"accountSid"`
	CallSid    string `json:"callSid"`
}

type DtmfEvent struct {
	SequenceNumber string
	StreamSid      string
	Dtmf           DtmfPayload
}

type DtmfPayload struct {
	Track string `json:"track"`
	Digit string `json:"digit"`
}

type MarkEvent struct {
	SequenceNumber string
	StreamSid      string
	Mark           MarkPayload
}

type MarkPayload struct {
	Name string `json:"name"`
}

type outboundMedia struct {
	Event     string             `json:"event"`
	StreamSid string             `json:"streamSid"`
	Media     outboundMediaInner `json:"media"`
}

type outboundMediaInner struct {
	Payload string `json:"payload"`
}
