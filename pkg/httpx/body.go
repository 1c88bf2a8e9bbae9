package httpx

import "net/url"

// Body is a tagged payload variant, resolved once by the builder instead of
// sniffing runtime types throughout the pipeline.
type Body interface {
	isBody()
}

// JSON wraps a value to be serialized as a JSON body. If the caller has
// declared a form-encoded content type, the value is form-encoded instead
// (maps and url.Values only).
func JSON(v any) Body {
	return jsonBody{value: v}
}

// Text wraps a pre-serialized string body, passed through unchanged.
func Text(s string) Body {
	return textBody{value: s}
}

// Binary wraps raw bytes. contentType may be empty when the caller sets the
// header explicitly.
func Binary(data []byte, contentType string) Body {
	return binaryBody{data: data, contentType: contentType}
}

// Form wraps key/value pairs encoded as application/x-www-form-urlencoded,
// with the same array-repeats-key and empty-value-drop rules as query
// encoding.
func Form(values url.Values) Body {
	return formBody{values: values}
}

// Multipart wraps multipart form parts. The builder always supplies the
// content type with the generated boundary, discarding any manually set
// content-type header.
func Multipart(parts ...Part) Body {
	return multipartBody{parts: parts}
}

// Part is one part of a multipart form body. FileName and ContentType are
// optional; a part without FileName is written as a plain form field.
type Part struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

type jsonBody struct{ value any }

type textBody struct{ value string }

type binaryBody struct {
	data        []byte
	contentType string
}

type formBody struct{ values url.Values }

type multipartBody struct{ parts []Part }

func (jsonBody) isBody()      {}
func (textBody) isBody()      {}
func (binaryBody) isBody()    {}
func (formBody) isBody()      {}
func (multipartBody) isBody() {}
