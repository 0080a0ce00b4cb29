// Package response defines the {code,msg,data} envelope every API reply uses.
// The HTTP status is always 200; the outcome lives in code.
package response

import "errors"

type Resp struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data"`
}

// New never leaves data null.
func New(code int, msg string, data any) Resp {
	if data == nil {
		data = struct{}{}
	}
	return Resp{Code: code, Msg: msg, Data: data}
}

func OK(data any) Resp {
	return New(CodeOK, CodeMsgMap[CodeOK], data)
}

// Error builds a failure reply; an empty msg falls back to the code's text.
func Error(code int, msg string) Resp {
	if msg == "" {
		msg = CodeMsgMap[code]
	}
	return New(code, msg, nil)
}

// AErr is an error that knows which envelope code it maps to.
type AErr struct {
	Code int
	Msg  string
	Err  error
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return CodeMsgMap[e.Code]
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: CodeBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: CodeUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AErr{Code: CodeForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: CodeNotFound, Msg: msg} }
func Internal(msg string, err error) error {
	return &AErr{Code: CodeServerError, Msg: msg, Err: err}
}

// FromError maps any error onto the envelope; plain errors become 500s.
func FromError(err error) Resp {
	var ae *AErr
	if errors.As(err, &ae) {
		return Error(ae.Code, ae.Error())
	}
	return Error(CodeServerError, err.Error())
}
