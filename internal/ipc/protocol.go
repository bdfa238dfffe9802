package ipc

import (
	"encoding/json"
	"fmt"
)

// Commands understood by the daemon.
const (
	CmdHistoryList   = "history.list"
	CmdHistorySearch = "history.search"
	CmdHistoryShow   = "history.show"
	CmdHistoryDelete = "history.delete"
	CmdHistoryClear  = "history.clear"
	CmdHistoryStats  = "history.stats"
	CmdClipAdd       = "clip.add"
	CmdClipCopy      = "clip.copy"
	CmdClipActivate  = "clip.activate"
	CmdPing          = "daemon.ping"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Request represents a command sent from the CLI to the daemon.
type Request struct {
	Command string                 `json:"command"`
	Args    map[string]interface{} `json:"args,omitempty"`
}

// Response represents a reply from the daemon to the CLI.
type Response struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// NewRequest builds a request, dropping nil args.
func NewRequest(command string, args map[string]interface{}) *Request {
	req := &Request{Command: command}
	for k, v := range args {
		if v == nil {
			continue
		}
		if req.Args == nil {
			req.Args = make(map[string]interface{}, len(args))
		}
		req.Args[k] = v
	}
	return req
}

// OK builds a successful response carrying data.
func OK(message string, data interface{}) *Response {
	resp := &Response{Status: StatusOK, Message: message}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return Errorf("failed to encode response: %v", err)
		}
		resp.Data = raw
	}
	return resp
}

// Errorf builds an error response.
func Errorf(format string, args ...interface{}) *Response {
	return &Response{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Err returns the response as an error when the daemon reported a failure.
func (r *Response) Err() error {
	if r.Status == StatusOK {
		return nil
	}
	if r.Message == "" {
		return fmt.Errorf("daemon returned status %q", r.Status)
	}
	return fmt.Errorf("daemon: %s", r.Message)
}

// Decode unmarshals the response data into v.
func (r *Response) Decode(v interface{}) error {
	if len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// String returns a string argument.
func (r *Request) String(key string) string {
	s, _ := r.Args[key].(string)
	return s
}

// Int returns an integer argument. JSON numbers arrive as float64.
func (r *Request) Int(key string, def int) int {
	switch v := r.Args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return def
	}
}

// Strings returns a string list argument.
func (r *Request) Strings(key string) []string {
	switch v := r.Args[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
