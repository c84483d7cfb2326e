package api

import "fmt"

// paramsError reports parameters that could not be decoded.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string {
	return fmt.Sprintf("invalid params: %v", e.err)
}

func (e *paramsError) Unwrap() error {
	return e.err
}

// done is the result of operations that return nothing.
func done(err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return struct{}{}, nil
}
