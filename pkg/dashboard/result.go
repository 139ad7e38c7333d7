package dashboard

import "encoding/json"

// Status distinguishes a legitimately empty answer from a failed fetch.
type Status string

const (
	StatusOK     Status = "ok"
	StatusEmpty  Status = "empty"
	StatusFailed Status = "failed"
)

// Result is the outcome of one entity fetch. A failed result always has an
// empty Data; renderers that do not care about the difference can check
// HasData alone.
type Result[T any] struct {
	Data []T
	Err  error
}

func Succeeded[T any](data []T) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Data: data}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{Data: []T{}, Err: err}
}

func (r Result[T]) Failed() bool {
	return r.Err != nil
}

// Empty reports a successful fetch that returned no rows.
func (r Result[T]) Empty() bool {
	return r.Err == nil && len(r.Data) == 0
}

func (r Result[T]) HasData() bool {
	return len(r.Data) > 0
}

func (r Result[T]) Status() Status {
	switch {
	case r.Err != nil:
		return StatusFailed
	case len(r.Data) == 0:
		return StatusEmpty
	default:
		return StatusOK
	}
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := struct {
		Status Status `json:"status"`
		Data   []T    `json:"data"`
		Error  string `json:"error,omitempty"`
	}{
		Status: r.Status(),
		Data:   r.Data,
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}
