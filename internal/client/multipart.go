package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"sort"
	"strconv"
)

// FilePart is one file of a multipart upload.
type FilePart struct {
	Field    string
	FileName string
	Content  io.Reader
}

// NewMultipartBody encodes fields and files as multipart/form-data and
// returns the body with its Content-Type (boundary included). Files with a
// nil Content are skipped.
func NewMultipartBody(fields url.Values, files ...FilePart) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	for _, f := range files {
		if f.Content == nil {
			continue
		}
		part, err := w.CreateFormFile(f.Field, f.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create form file %s: %w", f.Field, err)
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return nil, "", fmt.Errorf("copy %s: %w", f.FileName, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// formFields flattens a JSON-tagged struct into form values. Arrays become
// repeated keys, the way Django reads many-to-many ids from a form.
func formFields(v any) (url.Values, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("encode form: %w", err)
	}

	fields := make(url.Values, len(raw))
	for k, val := range raw {
		switch val := val.(type) {
		case []any:
			for _, item := range val {
				fields.Add(k, formValue(item))
			}
		case nil:
		default:
			fields.Set(k, formValue(val))
		}
	}
	return fields, nil
}

func formValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
