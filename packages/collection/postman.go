package collection

import (
	"encoding/json"
	"strings"
)

// Postman Collection v2.1 export shapes. Only the fields the converter
// needs are declared; everything else in an export is ignored.

type postmanExport struct {
	Info postmanInfo   `json:"info"`
	Item []postmanItem `json:"item"`
}

type postmanInfo struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
}

// postmanItem is either a folder (Item set) or a request (Request set).
type postmanItem struct {
	Name    string          `json:"name"`
	Item    []postmanItem   `json:"item,omitempty"`
	Request *postmanRequest `json:"request,omitempty"`
	Event   []postmanEvent  `json:"event,omitempty"`
}

type postmanRequest struct {
	Method string          `json:"method"`
	Header []postmanHeader `json:"header,omitempty"`
	Body   *postmanBody    `json:"body,omitempty"`
	URL    json.RawMessage `json:"url"`
}

type postmanHeader struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled,omitempty"`
}

type postmanBody struct {
	Mode string `json:"mode,omitempty"`
	Raw  string `json:"raw,omitempty"`
}

type postmanEvent struct {
	Listen string        `json:"listen"`
	Script postmanScript `json:"script"`
}

type postmanScript struct {
	Exec []string `json:"exec"`
	Type string   `json:"type,omitempty"`
}

func convertPostman(data []byte) (*Collection, error) {
	var export postmanExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, err
	}

	col := &Collection{Name: export.Info.Name}
	requests, folders := convertPostmanItems(export.Item)
	col.Requests = requests
	col.Folders = folders
	return col, nil
}

func convertPostmanItems(items []postmanItem) ([]Request, []Folder) {
	var requests []Request
	var folders []Folder

	for _, item := range items {
		if item.Request != nil {
			requests = append(requests, convertPostmanRequest(item))
			continue
		}
		subRequests, subFolders := convertPostmanItems(item.Item)
		folders = append(folders, Folder{
			Name:     item.Name,
			Requests: subRequests,
			Folders:  subFolders,
		})
	}

	return requests, folders
}

func convertPostmanRequest(item postmanItem) Request {
	req := Request{
		Name:   item.Name,
		Method: item.Request.Method,
		URL:    postmanURL(item.Request.URL),
	}

	for _, h := range item.Request.Header {
		if h.Disabled {
			continue
		}
		if req.Headers == nil {
			req.Headers = make(map[string]string)
		}
		req.Headers[h.Key] = h.Value
	}

	if body := item.Request.Body; body != nil && (body.Mode == "" || body.Mode == "raw") {
		req.Body = body.Raw
	}

	for _, ev := range item.Event {
		if ev.Listen == "test" && len(ev.Script.Exec) > 0 {
			req.Script = strings.Join(ev.Script.Exec, "\n")
			break
		}
	}

	return req
}

// postmanURL accepts both URL encodings Postman emits: a plain string or
// an object with a raw field.
func postmanURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj struct {
		Raw string `json:"raw"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Raw
	}
	return ""
}
