package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"eventflow/internal/domain"
)

// MalformedBodyMessage is returned to clients whose body is not valid JSON.
const MalformedBodyMessage = "잘못된 JSON 형식"

// ErrMalformedBody reports a request body that could not be decoded.
var ErrMalformedBody = errors.New(MalformedBodyMessage)

const maxBodyBytes = 1 << 20

// ActionRequest is the union of every action's inputs. Unused fields stay empty.
// swagger:model ActionRequest
type ActionRequest struct {
	Action          string                `json:"action"`
	IDToken         string                `json:"idToken"`
	Name            string                `json:"name"`
	Email           string                `json:"email"`
	UserID          string                `json:"user_id"`
	Title           string                `json:"title"`
	Location        string                `json:"location"`
	Dates           StringList            `json:"dates" swaggertype:"array,string"`
	InitialSpeakers []domain.SpeakerInput `json:"initial_speakers"`
	EventID         string                `json:"event_id"`
	Datetime        string                `json:"datetime"`
	Confirm         Flag                  `json:"confirm" swaggertype:"boolean"`
	Topic           string                `json:"topic"`
	RSVP            string                `json:"rsvp"`
	Task            string                `json:"task"`
	Owner           string                `json:"owner"`
	Deadline        string                `json:"deadline"`
	Notes           string                `json:"notes"`
	Status          string                `json:"status"`
	Key             string                `json:"key"`
	Value           string                `json:"value"`
	Limit           Number                `json:"limit" swaggertype:"integer"`
}

// StringList decodes from a JSON array, a JSON-encoded array inside a string, or a
// single string.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	list, err := parseStringList(s)
	if err != nil {
		return err
	}
	*l = list
	return nil
}

func parseStringList(s string) (StringList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if strings.HasPrefix(s, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(s), &arr); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return StringList{s}, nil
}

// Flag decodes from a JSON boolean or a string such as "true" or "1".
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = Flag(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*f = parseFlag(s)
	return nil
}

func parseFlag(s string) Flag {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return Flag(v)
}

// Number decodes from a JSON number or a numeric string. Anything else is zero.
type Number int

func (n *Number) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err == nil {
		*n = Number(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = parseNumber(s)
	return nil
}

func parseNumber(s string) Number {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return Number(v)
}

// DecodeActionRequest reads the action from a JSON body, a form body, or the query
// string. Query fields are used when the body is empty. A body that is present but
// cannot be decoded yields ErrMalformedBody.
func DecodeActionRequest(r *http.Request) (*ActionRequest, error) {
	if r.Method == http.MethodGet || r.Body == nil {
		return fromValues(r.URL.Query())
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		return fromValues(r.Form)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fromValues(r.URL.Query())
	}
	var req ActionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return &req, nil
}

func fromValues(v url.Values) (*ActionRequest, error) {
	req := &ActionRequest{
		Action:   v.Get("action"),
		IDToken:  v.Get("idToken"),
		Name:     v.Get("name"),
		Email:    v.Get("email"),
		UserID:   v.Get("user_id"),
		Title:    v.Get("title"),
		Location: v.Get("location"),
		EventID:  v.Get("event_id"),
		Datetime: v.Get("datetime"),
		Confirm:  parseFlag(v.Get("confirm")),
		Topic:    v.Get("topic"),
		RSVP:     v.Get("rsvp"),
		Task:     v.Get("task"),
		Owner:    v.Get("owner"),
		Deadline: v.Get("deadline"),
		Notes:    v.Get("notes"),
		Status:   v.Get("status"),
		Key:      v.Get("key"),
		Value:    v.Get("value"),
		Limit:    parseNumber(v.Get("limit")),
	}
	switch dates := v["dates"]; len(dates) {
	case 0:
	case 1:
		list, err := parseStringList(dates[0])
		if err != nil {
			return nil, fmt.Errorf("%w: dates: %v", ErrMalformedBody, err)
		}
		req.Dates = list
	default:
		req.Dates = dates
	}
	if s := strings.TrimSpace(v.Get("initial_speakers")); s != "" {
		if err := json.Unmarshal([]byte(s), &req.InitialSpeakers); err != nil {
			return nil, fmt.Errorf("%w: initial_speakers: %v", ErrMalformedBody, err)
		}
	}
	return req, nil
}
