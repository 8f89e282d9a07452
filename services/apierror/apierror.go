// Package apierror turns errors from the upstream library API into a single
// user-facing message.
//
// Upstream error bodies come in several shapes: a plain "detail" string, a
// list of validation records ({"msg", "loc"}), a single such record, or a
// "message" field. Decode classifies a body into one Detail variant at the
// boundary so callers never inspect raw JSON.
package apierror

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// CodeNetwork marks a request that never received an HTTP response.
const CodeNetwork = "ERR_NETWORK"

// Response is the HTTP part of a failed upstream call.
type Response struct {
	Status int
	Data   json.RawMessage
}

// RemoteError is returned by the upstream client for every failed call.
type RemoteError struct {
	// Response is nil when no HTTP response was received.
	Response *Response
	// Data is an error payload attached outside of an HTTP response.
	Data    json.RawMessage
	Message string
	Code    string
	Cause   error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Cause != nil:
		return e.Cause.Error()
	case e.Response != nil:
		return "request failed with status code " + strconv.Itoa(e.Response.Status)
	default:
		return "remote error"
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Status returns the HTTP status, or 0 without a response.
func (e *RemoteError) Status() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.Status
}

// Kind tags a decoded Detail.
type Kind int

const (
	// KindNone: no detail or message field present.
	KindNone Kind = iota
	// KindText: a string detail or message.
	KindText
	// KindList: a sequence of strings and validation records.
	KindList
	// KindSingle: one validation record.
	KindSingle
	// KindOther: a field is present but has an unusable shape.
	KindOther
)

// Detail is the decoded error detail of an upstream response.
type Detail struct {
	Kind Kind
	// Text holds the string for KindText and the formatted record for KindSingle.
	Text string
	// Parts holds the formatted, non-empty entries for KindList.
	Parts []string
}

// String returns the user-facing text and whether the detail yielded any.
func (d Detail) String() (string, bool) {
	switch d.Kind {
	case KindText:
		return d.Text, true
	case KindList:
		if len(d.Parts) == 0 {
			return "", false
		}
		return strings.Join(d.Parts, " "), true
	case KindSingle:
		return d.Text, d.Text != ""
	default:
		return "", false
	}
}

// Decode classifies a single error body. It looks at "detail" first, then "message".
func Decode(body []byte) Detail {
	return decodeFirst(body, nil)
}

// DecodeError classifies the detail carried by e. Response data takes
// precedence over the standalone payload for each field.
func DecodeError(e *RemoteError) Detail {
	if e == nil {
		return Detail{}
	}
	var respData json.RawMessage
	if e.Response != nil {
		respData = e.Response.Data
	}
	return decodeFirst(respData, e.Data)
}

func decodeFirst(respData, data json.RawMessage) Detail {
	resp, other := objectFields(respData), objectFields(data)
	candidates := []json.RawMessage{
		resp["detail"],
		other["detail"],
		resp["message"],
		other["message"],
	}
	for _, raw := range candidates {
		if present(raw) {
			return classify(raw)
		}
	}
	return Detail{}
}

func classify(raw json.RawMessage) Detail {
	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Detail{Kind: KindOther}
		}
		return Detail{Kind: KindText, Text: s}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return Detail{Kind: KindOther}
		}
		d := Detail{Kind: KindList}
		for _, item := range items {
			if part := formatListItem(item); part != "" {
				d.Parts = append(d.Parts, part)
			}
		}
		return d
	case '{':
		rec, ok := decodeRecord(raw)
		var msg string
		if !ok || !isJSONString(rec.msg) || json.Unmarshal(rec.msg, &msg) != nil {
			return Detail{Kind: KindOther}
		}
		return Detail{Kind: KindSingle, Text: rec.format(msg)}
	default:
		return Detail{Kind: KindOther}
	}
}

// formatListItem keeps strings as they are and records with a truthy "msg".
// Anything else yields "".
func formatListItem(item json.RawMessage) string {
	item = bytes.TrimSpace(item)
	if isJSONString(item) {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return ""
		}
		return s
	}
	rec, ok := decodeRecord(item)
	if !ok || !truthy(rec.msg) {
		return ""
	}
	return rec.format(jsText(rec.msg))
}

// record is a validation entry such as {"msg": "field required", "loc": ["body", "email"]}.
type record struct {
	msg json.RawMessage
	loc json.RawMessage
}

// format prefixes msg with the location unless the location is empty or falsy
// (0, false, "").
func (r record) format(msg string) string {
	if loc := formatLoc(r.loc); loc != "" {
		return loc + ": " + msg
	}
	return msg
}

func decodeRecord(raw json.RawMessage) (record, bool) {
	fields := objectFields(raw)
	if fields == nil {
		return record{}, false
	}
	return record{msg: fields["msg"], loc: fields["loc"]}, true
}

// formatLoc joins a location path with dots. A scalar location is used as is
// when truthy.
func formatLoc(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var path []json.RawMessage
		if err := json.Unmarshal(raw, &path); err == nil {
			return joinText(path, ".")
		}
	}
	if !truthy(raw) {
		return ""
	}
	return jsText(raw)
}

// truthy reports whether a JSON value is truthy in the browser client's sense:
// null, false, 0 and "" are not.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if !present(raw) {
		return false
	}
	switch raw[0] {
	case '"':
		var s string
		return json.Unmarshal(raw, &s) == nil && s != ""
	case 'f':
		return false
	case '[', '{', 't':
		return true
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		return err == nil && f != 0
	}
}

// jsText renders a JSON value the way string interpolation in the browser
// client does: arrays join with commas and objects collapse to a placeholder.
func jsText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return ""
		}
		return joinText(items, ",")
	case '{':
		return "[object Object]"
	case 't', 'f', 'n':
		return string(raw)
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil {
			return string(raw)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// joinText joins array elements; null elements become empty segments.
func joinText(items []json.RawMessage, sep string) string {
	segs := make([]string, 0, len(items))
	for _, item := range items {
		if !present(item) {
			segs = append(segs, "")
			continue
		}
		segs = append(segs, jsText(item))
	}
	return strings.Join(segs, sep)
}

func isJSONString(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '"'
}

func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	if !present(raw) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}
	return fields
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// Message resolves err into one user-facing string. The order is: detail or
// message from the response body, the error's own message, a standalone
// "message" payload, and finally fallback. It never panics.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var re *RemoteError
	if !errors.As(err, &re) {
		if msg := err.Error(); msg != "" {
			return msg
		}
		return fallback
	}

	if text, ok := DecodeError(re).String(); ok {
		return text
	}
	if re.Message != "" {
		return re.Message
	}
	var msg string
	if fields := objectFields(re.Data); fields != nil && json.Unmarshal(fields["message"], &msg) == nil && msg != "" {
		return msg
	}
	return fallback
}

// IsNetworkError reports whether err never reached an HTTP response, or was
// explicitly marked as a network failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var re *RemoteError
	if !errors.As(err, &re) {
		return true
	}
	return re.Response == nil || re.Code == CodeNetwork
}
