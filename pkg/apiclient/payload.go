package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Payload is a request body.
type Payload interface {
	Encode() (io.Reader, string, error)
}

type jsonPayload struct {
	value interface{}
}

// JSONPayload encodes v as the JSON request body.
func JSONPayload(v interface{}) Payload {
	return jsonPayload{value: v}
}

func (p jsonPayload) Encode() (io.Reader, string, error) {
	data, err := json.Marshal(p.value)
	if err != nil {
		return nil, "", fmt.Errorf("encode json payload: %w", err)
	}
	return bytes.NewReader(data), "application/json", nil
}

// File is one file part of a multipart body.
type File struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartPayload is a form with optional file parts. Repeated values of a
// field are sent as repeated parts.
type MultipartPayload struct {
	Fields url.Values
	Files  []File
}

// HasFiles reports whether any file part is attached.
func (p *MultipartPayload) HasFiles() bool {
	return p != nil && len(p.Files) > 0
}

func (p *MultipartPayload) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range p.Fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}

	for _, f := range p.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Filename)))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
