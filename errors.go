package dingalert

import "fmt"

// APIError is the failure reported by the robot service itself: the HTTP
// round trip succeeded but the service rejected the message with a
// non-zero errcode. Transport-level failures are returned as wrapped
// errors instead and never carry this type.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("robot request rejected: errcode=%d errmsg=%q", e.Code, e.Message)
}
