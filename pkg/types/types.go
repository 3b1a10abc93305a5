package types

// CallInfo is one active call as reported by the calls endpoint.
type CallInfo struct {
	CallID     string `json:"call_id"`
	StreamSid  string `json:"stream_sid"`
	CallSid    string `json:"call_sid"`
	AccountSid string `json:"account_sid"`
	StartedAt  int64  `json:"started_at"`
	MediaIn    int64  `json:"media_in"`
	MediaOut   int64  `json:"media_out"`
}

type CallsResp struct {
	Calls []CallInfo `json:"calls"`
}

type HealthResp struct {
	Status string `json:"status"`
	Calls  int    `json:"calls"`
}
