package collection

// Collection is the full tree of folders and requests for one run.
type Collection struct {
	Name     string    `json:"name"`
	Requests []Request `json:"requests,omitempty"`
	Folders  []Folder  `json:"folders,omitempty"`
}

// Folder is a named grouping of requests and sub-folders.
type Folder struct {
	Name     string    `json:"name"`
	Requests []Request `json:"requests,omitempty"`
	Folders  []Folder  `json:"folders,omitempty"`
}

// Request is one HTTP request definition. URL, header values and body may
// contain {{variable}} placeholders; the method may not.
type Request struct {
	Name           string            `json:"name"`
	Method         string            `json:"method"`
	URL            string            `json:"url"`
	Headers        map[string]string `json:"headers,omitempty"`
	Body           string            `json:"body,omitempty"`
	Script         string            `json:"script,omitempty"`
	ExpectedStatus int               `json:"expectedStatus,omitempty"` // informational only
}

// Walk visits every request in document order: a folder's own requests
// first, then its sub-folders recursively. The callback returns false to
// stop the walk early.
func (c *Collection) Walk(fn func(req *Request) bool) {
	walkLevel(c.Requests, c.Folders, fn)
}

func walkLevel(requests []Request, folders []Folder, fn func(req *Request) bool) bool {
	for i := range requests {
		if !fn(&requests[i]) {
			return false
		}
	}
	for i := range folders {
		if !walkLevel(folders[i].Requests, folders[i].Folders, fn) {
			return false
		}
	}
	return true
}

// RequestCount returns the total number of requests in the tree.
func (c *Collection) RequestCount() int {
	count := 0
	c.Walk(func(*Request) bool {
		count++
		return true
	})
	return count
}
