package http

// Request is a fully interpolated request ready for dispatch. All
// placeholders have been resolved by the caller; nothing here touches the
// environment.
type Request struct {
	Name    string
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

func NewRequest(method, url string) *Request {
	return &Request{
		Method:  method,
		URL:     url,
		Headers: make(map[string]string),
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

func (r *Request) SetBody(body string) *Request {
	r.Body = body
	return r
}

// HasBody reports whether the dispatcher will transmit the configured
// body. GET and HEAD requests never carry one.
func (r *Request) HasBody() bool {
	if r.Body == "" {
		return false
	}
	return r.Method != "GET" && r.Method != "HEAD"
}
